package session

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ToolCheck is the library check result for one tool directory.
type ToolCheck struct {
	Tool    Tool
	Missing []string
}

func (c ToolCheck) Passed() bool {
	return len(c.Missing) == 0
}

type Diagnostics struct {
	Tools        []ToolCheck
	MissingFiles []string
}

func (d Diagnostics) Passed() bool {
	for _, t := range d.Tools {
		if !t.Passed() {
			return false
		}
	}
	return len(d.MissingFiles) == 0
}

// Startup logs the program banner.
func (s *Session) Startup(version string) {
	s.renderer.Log("[INFO] ----- Program Start -----")
	s.renderer.Logf("[INFO] Current Time: %s", s.opts.Now().Format("2006.01.02-15:04:05"))
	s.renderer.Logf("[INFO] Running Version: %s", version)
	s.renderer.Logf("[INFO] Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
}

// Diagnose checks the bundled tool libraries and reports metadata for the
// executables and assets shipped with the application.
func (s *Session) Diagnose() Diagnostics {
	var diag Diagnostics
	s.renderer.Log("[INFO] Getting file metadata & information.")

	for _, t := range []Tool{Compiler, Extractor} {
		label := "Compile"
		if t == Extractor {
			label = "Decompile"
		}
		s.renderer.Logf("[INFO] System DLL integrity check (%s).", label)

		check := ToolCheck{Tool: t}
		for _, lib := range t.Libraries() {
			path := filepath.Join(s.opts.AppDir, t.Dir(), lib)
			status := "Installed"
			if _, err := os.Stat(path); err != nil {
				status = "Not Installed"
				check.Missing = append(check.Missing, lib)
			}
			s.renderer.Logf("[DATA] %s: %s", filepath.Clean(path), status)
		}

		result := "[Passed]"
		if !check.Passed() {
			result = "[Failed]"
		}
		s.renderer.Logf("[INFO] System DLL integrity check (%s): %s", label, result)
		diag.Tools = append(diag.Tools, check)
	}

	files := []string{
		filepath.Join(Compiler.Dir(), Compiler.Executable()),
		filepath.Join(Extractor.Dir(), Extractor.Executable()),
		filepath.Join("assets", "kodi_logo_512.png"),
		filepath.Join("assets", "fav.ico"),
	}
	for _, name := range files {
		path := filepath.Join(s.opts.AppDir, name)
		info, err := os.Stat(path)
		if err != nil {
			s.renderer.Logf("[ERROR] %s not found.", filepath.Clean(path))
			diag.MissingFiles = append(diag.MissingFiles, name)
			continue
		}
		base := filepath.Base(name)
		s.renderer.Logf("[DATA] %s version: [No Data]", base)
		s.renderer.Logf("[DATA] %s modified date: %s", base, info.ModTime().Format("02-01-2006"))
		s.renderer.Logf("[DATA] %s status: Stable", base)
		s.renderer.Logf("[DATA] %s file size: %s", base, fmt.Sprintf("%.0fKB", float64(info.Size())/1024))
	}
	s.renderer.Log("[INFO] Getting file versions. [Complete]")
	return diag
}
