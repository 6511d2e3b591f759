package pipeline

import "fmt"

type LineKind int

const (
	LinePlain LineKind = iota
	LineProgress
	LineRecordStart
	LineRecordDetail
)

func (k LineKind) String() string {
	switch k {
	case LineProgress:
		return "progress"
	case LineRecordStart:
		return "record-start"
	case LineRecordDetail:
		return "record-detail"
	default:
		return "plain"
	}
}

type Field int

const (
	FieldNone Field = iota
	FieldDimensions
	FieldFormat
)

// OutputLine is one classified stdout line.
type OutputLine struct {
	Kind     LineKind
	Raw      string
	Percent  int
	Message  string
	Filename string
	Field    Field
	Value    string
}

// LogText is the audit-trail form of the line.
func (l OutputLine) LogText() string {
	return "[DATA] " + l.Raw
}

type Progress struct {
	Percent int
	Message string
}

type EventKind int

const (
	EventProgress EventKind = iota
	EventLines
	EventFinished
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventLines:
		return "lines"
	case EventFinished:
		return "finished"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is delivered on the channel returned by Supervisor.Start. Exactly one
// EventFinished or EventError is sent, and it is always the last event.
type Event struct {
	Kind     EventKind
	JobID    string
	Progress Progress
	Lines    []OutputLine
	ExitCode int
	Stderr   string
	Err      error
}

type State int32

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateDraining
	StateFinalizing
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateFinalizing:
		return "finalizing"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) Terminal() bool {
	return s == StateFinished || s == StateFailed
}
