package output

import (
	"encoding/json"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatBoards renders boards as JSON.
func (f *JSONFormatter) FormatBoards(boards []trello.Board) (string, error) {
	return f.marshal(boards)
}

// FormatTemplates renders board templates as JSON.
func (f *JSONFormatter) FormatTemplates(tpls []*templates.Template) (string, error) {
	return f.marshal(tpls)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
