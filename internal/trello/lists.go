package trello

import (
	"context"
	"fmt"
	"net/url"
)

// GetLists returns the open lists on a board.
func (c *Client) GetLists(ctx context.Context, boardID string) ([]List, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	var lists []List
	if err := c.do(ctx, "GET", "/boards/"+url.PathEscape(boardID)+"/lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateList appends a new list to a board.
func (c *Client) CreateList(ctx context.Context, boardID, name string) (*List, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("list name is required")
	}
	query := url.Values{
		"idBoard": {boardID},
		"name":    {name},
		"pos":     {"bottom"},
	}
	var list List
	if err := c.do(ctx, "POST", "/lists", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ArchiveList closes a list.
func (c *Client) ArchiveList(ctx context.Context, listID string) (*List, error) {
	if listID == "" {
		return nil, fmt.Errorf("list id is required")
	}
	query := url.Values{"value": {"true"}}
	var list List
	if err := c.do(ctx, "PUT", "/lists/"+url.PathEscape(listID)+"/closed", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
