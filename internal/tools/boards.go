package tools

import (
	"context"
	"encoding/json"
)

func (r *Registry) registerBoardTools() {
	r.register(Tool{
		Name:        "get_boards",
		Description: "List the open Trello boards visible to the configured credentials",
		InputSchema: objectSchema(map[string]any{}),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			return r.client.GetMyBoards(ctx)
		},
	})

	r.register(Tool{
		Name:        "get_recent_activity",
		Description: "Fetch recent activity on a board, newest first",
		InputSchema: objectSchema(map[string]any{
			"board_id": stringProp("Board to inspect (defaults to the configured board)"),
			"limit":    numberProp("Maximum number of activity entries to return (default 10)"),
		}),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				BoardID string `json:"board_id"`
				Limit   int    `json:"limit"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			boardID, err := r.boardID(params.BoardID)
			if err != nil {
				return nil, err
			}
			limit := params.Limit
			if limit <= 0 {
				limit = 10
			}
			return r.client.GetBoardActions(ctx, boardID, limit)
		},
	})
}
