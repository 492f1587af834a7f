// Package output renders validated results for the CLI.
package output

import (
	"fmt"
	"strings"

	"github.com/orglens/orglens/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders validated results.
type Formatter interface {
	FormatResult(result *core.ValidatedResult) (string, error)
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

func statusLabel(status core.ValidationStatus) string {
	switch status {
	case core.StatusPassed:
		return "PASSED"
	case core.StatusWarning:
		return "WARNING"
	case core.StatusFailed:
		return "FAILED"
	default:
		return strings.ToUpper(string(status))
	}
}

func verdict(result *core.ValidatedResult) string {
	if result.IsValid {
		return "valid"
	}
	return "invalid"
}

func liveness(active bool) string {
	if active {
		return "live"
	}
	return "inactive"
}
