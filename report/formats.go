// Package report renders validation reports for human and machine
// consumption. Rendering never changes the report, only its presentation.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format specifies a report output format.
type Format string

const (
	// FormatText produces plain terminal output.
	FormatText Format = "text"

	// FormatJSON produces machine-readable JSON.
	FormatJSON Format = "json"

	// FormatMarkdown produces a Markdown document.
	FormatMarkdown Format = "markdown"

	// FormatHTML produces a standalone HTML page.
	FormatHTML Format = "html"
)

// FormatInfo provides metadata about a report format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatText: {
		Name:        FormatText,
		MIMEType:    "text/plain",
		Extension:   ".txt",
		Description: "Plain text report",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "Machine-readable JSON report",
	},
	FormatMarkdown: {
		Name:        FormatMarkdown,
		MIMEType:    "text/markdown",
		Extension:   ".md",
		Description: "Markdown report",
	},
	FormatHTML: {
		Name:        FormatHTML,
		MIMEType:    "text/html",
		Extension:   ".html",
		Description: "Standalone HTML report",
	},
}

// ParseFormat resolves a format name, accepting the "md" alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", name)
	}
}

// DetectFormat picks a format from a file extension, defaulting to JSON for
// unknown extensions.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatJSON
	}
}
