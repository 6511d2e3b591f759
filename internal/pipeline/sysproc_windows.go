//go:build windows

package pipeline

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func configureSysProc(cmd *exec.Cmd, showConsole bool) {
	if showConsole {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
