package output

import (
	"fmt"
	"strings"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatBoards renders boards as Markdown.
func (f *MarkdownFormatter) FormatBoards(boards []trello.Board) (string, error) {
	var sb strings.Builder
	sb.WriteString("## Boards\n\n")
	sb.WriteString("| ID | Name | Status | URL |\n")
	sb.WriteString("|----|------|--------|-----|\n")

	for _, b := range boards {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeMarkdownCell(b.ID),
			escapeMarkdownCell(b.Name),
			boardStatus(b),
			escapeMarkdownCell(b.ShortURL),
		))
	}

	return sb.String(), nil
}

// FormatTemplates renders board templates as Markdown.
func (f *MarkdownFormatter) FormatTemplates(tpls []*templates.Template) (string, error) {
	var sb strings.Builder
	sb.WriteString("## Board templates\n\n")
	sb.WriteString("| Name | Description | Lists | Labels | Source |\n")
	sb.WriteString("|------|-------------|-------|--------|--------|\n")

	for _, tpl := range tpls {
		if tpl == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s |\n",
			escapeMarkdownCell(tpl.Name),
			escapeMarkdownCell(tpl.Description),
			len(tpl.Lists),
			len(tpl.Labels),
			escapeMarkdownCell(tpl.Source),
		))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
