//go:build !windows

package pipeline

import "os/exec"

func configureSysProc(cmd *exec.Cmd, showConsole bool) {}
