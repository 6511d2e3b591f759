package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCommand      = errors.New("no command given")
	ErrAlreadyStarted = errors.New("supervisor already started")
)

// StartError reports that the child could not be spawned.
type StartError struct {
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("Failed to start process: %v", e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// ExitError reports a non-zero exit. Stderr holds everything the child wrote
// to its error stream.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("Process failed with exit code %d:\n%s", e.Code, strings.TrimSpace(e.Stderr))
}
