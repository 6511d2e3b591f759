package cmd

import (
	"os/exec"
	"runtime"
)

// openPath hands path to the desktop's default handler.
func openPath(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("explorer", path)
	case "darwin":
		c = exec.Command("open", path)
	default:
		c = exec.Command("xdg-open", path)
	}
	return c.Start()
}

func (a *app) openIfEnabled(enabled bool, path string) {
	if !enabled {
		return
	}
	if err := openPath(path); err != nil {
		a.renderer.Logf("[ERROR] Could not open folder %s: %v", path, err)
		return
	}
	a.renderer.Logf("[INFO] Opened output folder: %s", path)
}
