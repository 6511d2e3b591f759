package pipeline

import (
	"strconv"
	"strings"
)

const (
	progressPrefix   = "PROGRESS:"
	texturePrefix    = "Texture:"
	dimensionsMarker = "Dimensions:"
	formatMarker     = "Format:"
	textureExt       = ".png"
)

// Parser classifies stdout lines for one job. It carries the progress
// throttle, so a parser must not be shared between jobs.
type Parser struct {
	last int
}

func NewParser() *Parser {
	return &Parser{last: -1}
}

// Parse classifies raw. surfaced reports whether the line is a progress update
// whose percentage is strictly greater than anything surfaced before.
func (p *Parser) Parse(raw string) (line OutputLine, surfaced bool) {
	line = OutputLine{Kind: LinePlain, Raw: raw}

	switch {
	case strings.HasPrefix(raw, progressPrefix):
		parts := strings.SplitN(raw, ":", 3)
		percent, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return line, false
		}
		line.Kind = LineProgress
		line.Percent = percent
		if len(parts) > 2 {
			line.Message = strings.TrimSpace(parts[2])
		}
		if percent > p.last {
			p.last = percent
			return line, true
		}
		return line, false

	case strings.HasPrefix(raw, texturePrefix):
		rest := strings.TrimSpace(raw[len(texturePrefix):])
		idx := strings.LastIndex(rest, textureExt)
		if idx < 0 {
			return line, false
		}
		line.Kind = LineRecordStart
		line.Filename = rest[:idx+len(textureExt)]
		return line, false
	}

	if idx := strings.Index(raw, dimensionsMarker); idx >= 0 {
		line.Kind = LineRecordDetail
		line.Field = FieldDimensions
		line.Value = strings.TrimSpace(raw[idx+len(dimensionsMarker):])
	} else if idx := strings.Index(raw, formatMarker); idx >= 0 {
		line.Kind = LineRecordDetail
		line.Field = FieldFormat
		line.Value = strings.TrimSpace(raw[idx+len(formatMarker):])
	}
	return line, false
}

// LastProgress is the highest percentage surfaced so far, or -1.
func (p *Parser) LastProgress() int {
	return p.last
}
