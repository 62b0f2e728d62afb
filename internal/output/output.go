// Package output renders CLI command results in table, JSON, or markdown
// form. Tables are the default for terminals; JSON suits scripting.
package output

import (
	"fmt"
	"strings"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders gateway resources.
type Formatter interface {
	FormatBoards(boards []trello.Board) (string, error)
	FormatTemplates(tpls []*templates.Template) (string, error)
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
