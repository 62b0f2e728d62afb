package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// templateSummary is returned by list_board_templates.
type templateSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
	Lists       int    `json:"lists"`
	Labels      int    `json:"labels"`
}

// boardFromTemplateResult summarizes a template application.
type boardFromTemplateResult struct {
	Board  *trello.Board `json:"board"`
	Lists  []trello.List `json:"lists"`
	Cards  int           `json:"cards_created"`
	Labels int           `json:"labels_created"`
}

func (r *Registry) registerTemplateTools() {
	r.register(Tool{
		Name:        "list_board_templates",
		Description: "List the available board templates",
		InputSchema: objectSchema(map[string]any{}),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			summaries := make([]templateSummary, 0, len(r.templates))
			for _, name := range r.templates.Names() {
				tpl := r.templates[name]
				summaries = append(summaries, templateSummary{
					Name:        tpl.Name,
					DisplayName: tpl.DisplayName,
					Description: tpl.Description,
					Lists:       len(tpl.Lists),
					Labels:      len(tpl.Labels),
				})
			}
			return summaries, nil
		},
	})

	r.register(Tool{
		Name:        "create_board_from_template",
		Description: "Create a new board with the lists, labels, and seed cards of a named template",
		InputSchema: objectSchema(map[string]any{
			"template":    stringProp("Template name (see list_board_templates)"),
			"name":        stringProp("Name for the new board"),
			"description": stringProp("Board description (defaults to the template's)"),
		}, "template", "name"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Template    string `json:"template"`
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			if params.Name == "" {
				return nil, fmt.Errorf("name is required")
			}
			return r.createBoardFromTemplate(ctx, params.Template, params.Name, params.Description)
		},
	})
}

// createBoardFromTemplate drives the full sequence of Trello calls behind
// one template application. Every call here goes through the shared
// executor, so seeding a large template simply queues behind the rate
// ceilings rather than tripping them.
func (r *Registry) createBoardFromTemplate(ctx context.Context, templateName, boardName, desc string) (any, error) {
	tpl, err := r.templates.Get(templateName)
	if err != nil {
		return nil, err
	}

	if desc == "" {
		desc = tpl.Description
	}
	board, err := r.client.CreateBoard(ctx, trello.CreateBoardRequest{Name: boardName, Desc: desc})
	if err != nil {
		return nil, err
	}

	labelIDs := make(map[string]string, len(tpl.Labels))
	for _, spec := range tpl.Labels {
		label, err := r.client.CreateLabel(ctx, board.ID, spec.Name, spec.Color)
		if err != nil {
			return nil, fmt.Errorf("create label %q: %w", spec.Name, err)
		}
		labelIDs[spec.Name] = label.ID
	}

	result := boardFromTemplateResult{Board: board, Labels: len(labelIDs)}
	for _, listSpec := range tpl.Lists {
		list, err := r.client.CreateList(ctx, board.ID, listSpec.Name)
		if err != nil {
			return nil, fmt.Errorf("create list %q: %w", listSpec.Name, err)
		}
		result.Lists = append(result.Lists, *list)

		for _, cardSpec := range listSpec.Cards {
			ids := make([]string, 0, len(cardSpec.Labels))
			for _, ref := range cardSpec.Labels {
				ids = append(ids, labelIDs[ref])
			}
			if _, err := r.client.CreateCard(ctx, trello.CreateCardRequest{
				IDList:   list.ID,
				Name:     cardSpec.Name,
				Desc:     cardSpec.Desc,
				IDLabels: ids,
			}); err != nil {
				return nil, fmt.Errorf("create card %q: %w", cardSpec.Name, err)
			}
			result.Cards++
		}
	}

	return result, nil
}
