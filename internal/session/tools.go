package session

import (
	"path/filepath"
	"strings"
)

// Tool is one of the bundled native executables.
type Tool int

const (
	Compiler Tool = iota
	Extractor
)

func (t Tool) String() string {
	if t == Extractor {
		return "TextureExtractor"
	}
	return "TextureCompiler"
}

// Dir is the tool directory relative to the application or workspace root.
func (t Tool) Dir() string {
	if t == Extractor {
		return filepath.Join("utils", "TexturePacker_Decompile")
	}
	return filepath.Join("utils", "TexturePacker_Compile")
}

func (t Tool) Executable() string {
	return t.String() + ".exe"
}

// Libraries lists the DLLs each tool needs next to its executable.
func (t Tool) Libraries() []string {
	if t == Extractor {
		return []string{"getopt.dll", "gif.dll", "jpeg62.dll", "libpng16.dll", "lzo2.dll", "squish.dll", "zlib1.dll"}
	}
	return []string{"gif.dll", "jpeg62.dll", "libpng16.dll", "lzo2.dll", "zlib1.dll"}
}

// RequiredFiles is every file copied into the workspace, relative to the
// application directory.
func RequiredFiles() []string {
	var files []string
	for _, t := range []Tool{Compiler, Extractor} {
		for _, lib := range t.Libraries() {
			files = append(files, filepath.Join(t.Dir(), lib))
		}
		files = append(files, filepath.Join(t.Dir(), t.Executable()))
	}
	return files
}

// commandLine renders args the way they are written to the log, quoting
// arguments that contain spaces.
func commandLine(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.Contains(arg, " ") {
			arg = `"` + arg + `"`
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
