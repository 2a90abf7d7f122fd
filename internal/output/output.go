// Package output renders resolutions for the CLI.
package output

import (
	"fmt"
	"strings"

	"github.com/boardlens/boardlens/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders a resolution.
type Formatter interface {
	FormatResolution(res *core.Resolution) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func playerRange(rec *core.GameRecord) string {
	if rec.MinPlayers == rec.MaxPlayers {
		return rec.MinPlayers
	}
	return rec.MinPlayers + "-" + rec.MaxPlayers
}

func timeRange(rec *core.GameRecord) string {
	if rec.MinTime == rec.MaxTime {
		return rec.MinTime + " min"
	}
	return rec.MinTime + "-" + rec.MaxTime + " min"
}
