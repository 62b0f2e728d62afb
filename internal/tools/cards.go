package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

func (r *Registry) registerCardTools() {
	r.register(Tool{
		Name:        "get_cards_by_list_id",
		Description: "List the open cards in a list",
		InputSchema: objectSchema(map[string]any{
			"list_id": stringProp("ID of the list to read"),
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
			return r.client.GetCardsInList(ctx, params.ListID)
		},
	})

	r.register(Tool{
		Name:        "get_my_cards",
		Description: "List the cards assigned to the configured member",
		InputSchema: objectSchema(map[string]any{}),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			return r.client.GetMyCards(ctx)
		},
	})

	r.register(Tool{
		Name:        "add_card_to_list",
		Description: "Add a new card to the bottom of a list",
		InputSchema: objectSchema(map[string]any{
			"list_id":     stringProp("ID of the list to add the card to"),
			"name":        stringProp("Card title"),
			"description": stringProp("Card description (markdown)"),
			"due_date":    stringProp("Due date, ISO 8601"),
			"labels":      stringArrayProp("Label IDs to attach"),
		}, "list_id", "name"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				ListID      string   `json:"list_id"`
				Name        string   `json:"name"`
				Description string   `json:"description"`
				DueDate     string   `json:"due_date"`
				Labels      []string `json:"labels"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			return r.client.CreateCard(ctx, trello.CreateCardRequest{
				IDList:   params.ListID,
				Name:     params.Name,
				Desc:     params.Description,
				Due:      params.DueDate,
				IDLabels: params.Labels,
			})
		},
	})

	r.register(Tool{
		Name:        "update_card_details",
		Description: "Update a card's title, description, due date, or labels",
		InputSchema: objectSchema(map[string]any{
			"card_id":     stringProp("ID of the card to update"),
			"name":        stringProp("New card title"),
			"description": stringProp("New card description"),
			"due_date":    stringProp("New due date, ISO 8601 (empty string clears it)"),
			"labels":      stringArrayProp("Replacement label IDs"),
		}, "card_id"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				CardID      string   `json:"card_id"`
				Name        *string  `json:"name"`
				Description *string  `json:"description"`
				DueDate     *string  `json:"due_date"`
				Labels      []string `json:"labels"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			if params.CardID == "" {
				return nil, fmt.Errorf("card_id is required")
			}
			return r.client.UpdateCard(ctx, params.CardID, trello.UpdateCardRequest{
				Name:     params.Name,
				Desc:     params.Description,
				Due:      params.DueDate,
				IDLabels: params.Labels,
			})
		},
	})

	r.register(Tool{
		Name:        "move_card_to_list",
		Description: "Move a card to another list",
		InputSchema: objectSchema(map[string]any{
			"card_id": stringProp("ID of the card to move"),
			"list_id": stringProp("Destination list ID"),
		}, "card_id", "list_id"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				CardID string `json:"card_id"`
				ListID string `json:"list_id"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			return r.client.MoveCard(ctx, params.CardID, params.ListID)
		},
	})

	r.register(Tool{
		Name:        "archive_card",
		Description: "Archive (close) a card",
		InputSchema: objectSchema(map[string]any{
			"card_id": stringProp("ID of the card to archive"),
		}, "card_id"),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				CardID string `json:"card_id"`
			}
			if err := decodeArgs(args, &params); err != nil {
				return nil, err
			}
			if params.CardID == "" {
				return nil, fmt.Errorf("card_id is required")
			}
			return r.client.ArchiveCard(ctx, params.CardID)
		},
	})
}
