package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

func (r *Registry) registerListTools() {
	r.register(Tool{
		Name:        "get_lists",
		Description: "List the open lists on a board",
		InputSchema: objectSchema(map[string]any{
			"board_id": stringProp("Board to inspect (defaults to the configured board)"),
		}),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				BoardID string `json:"board_id"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			boardID, err := r.boardID(params.BoardID)
			if err != nil {
				return nil, err
			}
			return r.client.GetLists(ctx, boardID)
		},
	})

	r.register(Tool{
		Name:        "add_list_to_board",
		Description: "Add a new list to a board",
		InputSchema: objectSchema(map[string]any{
			"board_id": stringProp("Board to add the list to (defaults to the configured board)"),
			"name":     stringProp("Name of the new list"),
		}, "name"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				BoardID string `json:"board_id"`
				Name    string `json:"name"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			if params.Name == "" {
				return nil, fmt.Errorf("name is required")
			}
			boardID, err := r.boardID(params.BoardID)
			if err != nil {
				return nil, err
			}
			return r.client.CreateList(ctx, boardID, params.Name)
		},
	})

	r.register(Tool{
		Name:        "archive_list",
		Description: "Archive (close) a list",
		InputSchema: objectSchema(map[string]any{
			"list_id": stringProp("ID of the list to archive"),
		}, "list_id"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				ListID string `json:"list_id"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			if params.ListID == "" {
				return nil, fmt.Errorf("list_id is required")
			}
			return r.client.ArchiveList(ctx, params.ListID)
		},
	})
}
