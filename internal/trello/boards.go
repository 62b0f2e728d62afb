package trello

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetMyBoards lists the open boards visible to the configured credentials.
func (c *Client) GetMyBoards(ctx context.Context) ([]Board, error) {
	query := url.Values{"filter": {"open"}}
	var boards []Board
	if err := c.do(ctx, "GET", "/members/me/boards", query, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// GetBoard fetches a single board by id.
func (c *Client) GetBoard(ctx context.Context, boardID string) (*Board, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	var board Board
	if err := c.do(ctx, "GET", "/boards/"+url.PathEscape(boardID), nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// CreateBoardRequest carries the parameters for CreateBoard.
type CreateBoardRequest struct {
	Name string
	Desc string
	// DefaultLists controls whether Trello seeds the stock To Do/Doing/Done
	// lists. Template-driven boards create their own.
	DefaultLists bool
}

// CreateBoard creates a new board.
func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*Board, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("board name is required")
	}
	query := url.Values{
		"name":         {req.Name},
		"defaultLists": {strconv.FormatBool(req.DefaultLists)},
	}
	if req.Desc != "" {
		query.Set("desc", req.Desc)
	}
	var board Board
	if err := c.do(ctx, "POST", "/boards", query, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// GetBoardActions fetches the most recent activity on a board, newest
// first. A non-positive limit falls back to Trello's default page size.
func (c *Client) GetBoardActions(ctx context.Context, boardID string, limit int) ([]Action, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var actions []Action
	if err := c.do(ctx, "GET", "/boards/"+url.PathEscape(boardID)+"/actions", query, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// CreateLabel adds a label to a board.
func (c *Client) CreateLabel(ctx context.Context, boardID, name, color string) (*Label, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	query := url.Values{
		"idBoard": {boardID},
		"name":    {name},
		"color":   {color},
	}
	var label Label
	if err := c.do(ctx, "POST", "/labels", query, &label); err != nil {
		return nil, err
	}
	return &label, nil
}
