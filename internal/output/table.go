package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatBoards renders boards as a table.
func (f *TableFormatter) FormatBoards(boards []trello.Board) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Status", "URL"})

	for _, b := range boards {
		t.AppendRow(table.Row{b.ID, b.Name, boardStatus(b), b.ShortURL})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d boards", len(boards)), ""})
	return t.Render(), nil
}

// FormatTemplates renders board templates as a table.
func (f *TableFormatter) FormatTemplates(tpls []*templates.Template) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Description", "Lists", "Labels", "Source"})

	for _, tpl := range tpls {
		if tpl == nil {
			continue
		}
		t.AppendRow(table.Row{
			tpl.Name,
			tpl.Description,
			len(tpl.Lists),
			len(tpl.Labels),
			tpl.Source,
		})
	}

	return t.Render(), nil
}

func boardStatus(b trello.Board) string {
	if b.Closed {
		return "closed"
	}
	return "open"
}
