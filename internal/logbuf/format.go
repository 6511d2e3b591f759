package logbuf

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"texturetool/internal/tui"
)

// Entry is one formatted message: Display for the terminal, Persisted for the
// log file.
type Entry struct {
	Display   string
	Persisted string
}

type Formatter struct {
	CapitalizeDrives bool
}

func NewFormatter() Formatter {
	return Formatter{CapitalizeDrives: runtime.GOOS == "windows"}
}

var (
	driveLetter = regexp.MustCompile(`\b([a-z]):\\`)
	infoVersion = regexp.MustCompile(`v\d+\.\d+\.\d+`)
	clockTime   = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
	dataVersion = regexp.MustCompile(`v\d+(?:\.\d+)*`)
	dataSize    = regexp.MustCompile(`\d+KB`)
	dataDate    = regexp.MustCompile(`\d{2}-\d{2}-\d{4}`)

	infoNormalizer = strings.NewReplacer(
		"... [Complete]", " [Complete]",
		"... Complete", " [Complete]",
		"...[Passed]", ": [Passed]",
		"...Passed]", ": [Passed]",
		"[Started].", "[Started]",
	)
	dataNormalizer = strings.NewReplacer(
		": Installed", ": [Installed]",
		" Stable", " [Stable]",
	)
)

func (f Formatter) Format(msg string) Entry {
	if f.CapitalizeDrives {
		msg = driveLetter.ReplaceAllStringFunc(msg, strings.ToUpper)
	}

	switch {
	case hasAnyPrefix(msg, "[INFO]", ">>>", "******************", "-----"):
		return formatInfo(msg)
	case hasAnyPrefix(msg, "[ERROR]", "ERROR:"):
		content := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, "[ERROR]"), "ERROR:"))
		return tagged("[ERROR]", errorTagStyle, content, content)
	case strings.HasPrefix(msg, "[WARN]"):
		content := afterTag(msg)
		return tagged("[WARN]", warnTagStyle, content, content)
	case strings.HasPrefix(msg, "[DATA]"):
		content := dataNormalizer.Replace(afterTag(msg))
		return tagged("[DATA]", dataTagStyle, content, highlightData(content))
	case strings.HasPrefix(msg, "[LOAD]"):
		content := afterTag(msg)
		return tagged("[LOAD]", loadTagStyle, content, content)
	default:
		return tagged("[INFO]", infoTagStyle, msg, msg)
	}
}

func formatInfo(msg string) Entry {
	content := strings.Trim(msg, "*- ")
	if hasAnyPrefix(msg, "[INFO]", ">>>") {
		content = strings.TrimSpace(msg[strings.Index(msg, " ")+1:])
	}

	if strings.Contains(content, "-----") {
		persisted := "[INFO] " + content
		return Entry{Display: headerStyle.Render(persisted), Persisted: persisted}
	}

	content = infoNormalizer.Replace(content)
	return tagged("[INFO]", infoTagStyle, content, highlightInfo(content))
}

func tagged(tag string, style lipgloss.Style, plain, display string) Entry {
	return Entry{
		Display:   style.Render(tag) + " " + display,
		Persisted: tag + " " + plain,
	}
}

func highlightInfo(content string) string {
	for _, word := range []string{"[Complete]", "[Started]", "[Passed]"} {
		content = strings.ReplaceAll(content, word, okStyle.Render(word))
	}
	content = strings.ReplaceAll(content, "...Failed", "... "+failStyle.Render("[Failed]"))
	content = infoVersion.ReplaceAllStringFunc(content, numeric)
	return clockTime.ReplaceAllStringFunc(content, numeric)
}

func highlightData(content string) string {
	content = strings.ReplaceAll(content, "[No Data]", numericStyle.Render("[No Data]"))
	content = strings.ReplaceAll(content, "[ERROR] Not Installed", failStyle.Render("[ERROR] Not Installed"))
	content = strings.ReplaceAll(content, "[Installed]", okStyle.Render("[Installed]"))
	content = strings.ReplaceAll(content, "[Stable]", okStyle.Render("[Stable]"))
	content = dataVersion.ReplaceAllStringFunc(content, numeric)
	content = dataSize.ReplaceAllStringFunc(content, numeric)
	return dataDate.ReplaceAllStringFunc(content, numeric)
}

func afterTag(msg string) string {
	return strings.TrimSpace(msg[strings.Index(msg, "]")+1:])
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

var (
	infoTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccentAlt)
	errorTagStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorError)
	warnTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
	dataTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorData)
	loadTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorLoad)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorSuccess)
	okStyle       = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	failStyle     = lipgloss.NewStyle().Foreground(tui.ColorError)
	numericStyle  = lipgloss.NewStyle().Foreground(tui.ColorAccent)
)

func numeric(s string) string {
	return numericStyle.Render(s)
}
