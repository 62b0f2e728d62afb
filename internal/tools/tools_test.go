package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/core/engine"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

func newTestRegistry(t *testing.T, handler http.HandlerFunc, defaultBoardID string) *Registry {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	limiter := engine.NewRateLimiter(
		engine.WindowConfig{Capacity: 1000, Interval: 10 * time.Second},
		engine.WindowConfig{Capacity: 1000, Interval: 10 * time.Second},
	)
	ex := engine.NewExecutor(limiter)
	ex.RetryDelay = time.Millisecond

	client := trello.NewClient("k", "t", ex)
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()

	registry, err := templates.LoadRegistry("")
	require.NoError(t, err)

	return NewRegistry(client, registry, defaultBoardID)
}

func TestRegistryListsAllTools(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {}, "")

	names := make([]string, 0)
	for _, tool := range r.List() {
		names = append(names, tool.Name)
		require.NotEmpty(t, tool.Description)
		require.Equal(t, "object", tool.InputSchema["type"])
	}

	require.Equal(t, []string{
		"add_card_to_list",
		"add_list_to_board",
		"archive_card",
		"archive_list",
		"create_board_from_template",
		"get_boards",
		"get_cards_by_list_id",
		"get_lists",
		"get_my_cards",
		"get_recent_activity",
		"list_board_templates",
		"move_card_to_list",
		"update_card_details",
	}, names)
}

func TestCallUnknownTool(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {}, "")
	_, err := r.Call(context.Background(), "delete_everything", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown tool")
}

func TestGetListsUsesDefaultBoard(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/boards/default-board/lists", req.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"l1","name":"To Do","idBoard":"default-board"}]`))
	}, "default-board")

	result, err := r.Call(context.Background(), "get_lists", nil)
	require.NoError(t, err)

	lists, ok := result.([]trello.List)
	require.True(t, ok)
	require.Len(t, lists, 1)
	require.Equal(t, "To Do", lists[0].Name)
}

func TestGetListsWithoutBoardFails(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no request expected")
	}, "")

	_, err := r.Call(context.Background(), "get_lists", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "board_id is required")
}

func TestAddCardValidation(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no request expected")
	}, "")

	_, err := r.Call(context.Background(), "add_card_to_list", json.RawMessage(`{"list_id":"l1"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "card name is required")
}

func TestGetRecentActivityDefaultsLimit(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/boards/b1/actions", req.URL.Path)
		require.Equal(t, "10", req.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"a1","type":"createCard","date":"2025-06-01T12:00:00.000Z"}]`))
	}, "b1")

	result, err := r.Call(context.Background(), "get_recent_activity", json.RawMessage(`{}`))
	require.NoError(t, err)
	actions, ok := result.([]trello.Action)
	require.True(t, ok)
	require.Len(t, actions, 1)
}

func TestListBoardTemplates(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {}, "")

	result, err := r.Call(context.Background(), "list_board_templates", nil)
	require.NoError(t, err)

	summaries, ok := result.([]templateSummary)
	require.True(t, ok)
	require.Len(t, summaries, 3)
	require.Equal(t, "client-project", summaries[0].Name)
	require.Equal(t, 6, summaries[0].Lists)
}

func TestCreateBoardFromTemplate(t *testing.T) {
	var labelSeq, listSeq, cardSeq int
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.Method == http.MethodPost && req.URL.Path == "/boards":
			require.Equal(t, "Acme Website", req.URL.Query().Get("name"))
			require.Equal(t, "false", req.URL.Query().Get("defaultLists"))
			_, _ = w.Write([]byte(`{"id":"board-1","name":"Acme Website"}`))
		case req.Method == http.MethodPost && req.URL.Path == "/labels":
			labelSeq++
			require.Equal(t, "board-1", req.URL.Query().Get("idBoard"))
			_, _ = fmt.Fprintf(w, `{"id":"label-%d","idBoard":"board-1"}`, labelSeq)
		case req.Method == http.MethodPost && req.URL.Path == "/lists":
			listSeq++
			require.Equal(t, "board-1", req.URL.Query().Get("idBoard"))
			_, _ = fmt.Fprintf(w, `{"id":"list-%d","idBoard":"board-1","name":%q}`, listSeq, req.URL.Query().Get("name"))
		case req.Method == http.MethodPost && req.URL.Path == "/cards":
			cardSeq++
			require.True(t, strings.HasPrefix(req.URL.Query().Get("idList"), "list-"))
			_, _ = fmt.Fprintf(w, `{"id":"card-%d"}`, cardSeq)
		default:
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
	}, "")

	result, err := r.Call(context.Background(), "create_board_from_template",
		json.RawMessage(`{"template":"client-project","name":"Acme Website"}`))
	require.NoError(t, err)

	summary, ok := result.(boardFromTemplateResult)
	require.True(t, ok)
	require.Equal(t, "board-1", summary.Board.ID)
	require.Len(t, summary.Lists, 6)
	require.Equal(t, 3, summary.Cards)
	require.Equal(t, 3, summary.Labels)
	require.Equal(t, 3, labelSeq)
	require.Equal(t, 6, listSeq)
	require.Equal(t, 3, cardSeq)
}

func TestCreateBoardFromUnknownTemplate(t *testing.T) {
	r := newTestRegistry(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no request expected")
	}, "")

	_, err := r.Call(context.Background(), "create_board_from_template",
		json.RawMessage(`{"template":"retro","name":"X"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown board template")
}
