package trello

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetCardsInList returns the open cards in a list.
func (c *Client) GetCardsInList(ctx context.Context, listID string) ([]Card, error) {
	if listID == "" {
		return nil, fmt.Errorf("list id is required")
	}
	var cards []Card
	if err := c.do(ctx, "GET", "/lists/"+url.PathEscape(listID)+"/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GetMyCards returns the cards assigned to the credentialed member.
func (c *Client) GetMyCards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := c.do(ctx, "GET", "/members/me/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateCardRequest carries the parameters for CreateCard.
type CreateCardRequest struct {
	IDList   string
	Name     string
	Desc     string
	Due      string
	IDLabels []string
}

// CreateCard adds a card to the bottom of a list.
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*Card, error) {
	if req.IDList == "" {
		return nil, fmt.Errorf("list id is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("card name is required")
	}

	query := url.Values{
		"idList": {req.IDList},
		"name":   {req.Name},
		"pos":    {"bottom"},
	}
	if req.Desc != "" {
		query.Set("desc", req.Desc)
	}
	if req.Due != "" {
		query.Set("due", req.Due)
	}
	if len(req.IDLabels) > 0 {
		query.Set("idLabels", strings.Join(req.IDLabels, ","))
	}

	var card Card
	if err := c.do(ctx, "POST", "/cards", query, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCardRequest carries the fields to change on a card. Nil pointers
// leave the corresponding field untouched.
type UpdateCardRequest struct {
	Name     *string
	Desc     *string
	Due      *string
	IDLabels []string
}

// UpdateCard updates a card's details.
func (c *Client) UpdateCard(ctx context.Context, cardID string, req UpdateCardRequest) (*Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}

	query := url.Values{}
	if req.Name != nil {
		query.Set("name", *req.Name)
	}
	if req.Desc != nil {
		query.Set("desc", *req.Desc)
	}
	if req.Due != nil {
		query.Set("due", *req.Due)
	}
	if req.IDLabels != nil {
		query.Set("idLabels", strings.Join(req.IDLabels, ","))
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("no card fields to update")
	}

	var card Card
	if err := c.do(ctx, "PUT", "/cards/"+url.PathEscape(cardID), query, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// MoveCard moves a card to another list.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string) (*Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}
	if listID == "" {
		return nil, fmt.Errorf("list id is required")
	}
	query := url.Values{
		"idList": {listID},
		"pos":    {"bottom"},
	}
	var card Card
	if err := c.do(ctx, "PUT", "/cards/"+url.PathEscape(cardID), query, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// ArchiveCard closes a card.
func (c *Client) ArchiveCard(ctx context.Context, cardID string) (*Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("card id is required")
	}
	query := url.Values{"closed": {"true"}}
	var card Card
	if err := c.do(ctx, "PUT", "/cards/"+url.PathEscape(cardID), query, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
