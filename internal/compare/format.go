package compare

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResult is returned when a report carries no comparison, which
// happens when a vehicle lacks the capability its pipeline needs
var ErrNoResult = errors.New("no comparison result")

// Formatter renders a comparison report
type Formatter interface {
	Format(r *Report) (string, error)
}

// Formats lists the supported output formats
var Formats = []string{"table", "json", "csv", "markdown", "html"}

// NewFormatter returns the formatter for a format name
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "table", "console":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}
