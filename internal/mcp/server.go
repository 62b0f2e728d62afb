package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/metrics"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/tools"
)

// Server reads line-delimited JSON-RPC requests and dispatches them to the
// tool registry. One instance serves one client connection (stdin/stdout).
type Server struct {
	registry *tools.Registry
	info     ServerInfo
	logger   *logging.Logger

	reader *bufio.Scanner
	writer io.Writer
	mu     sync.Mutex
}

// NewServer builds a server over the given streams. logger may be nil.
func NewServer(r io.Reader, w io.Writer, registry *tools.Registry, info ServerInfo, logger *logging.Logger) *Server {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &Server{
		registry: registry,
		info:     info,
		logger:   logger,
		reader:   scanner,
		writer:   w,
	}
}

// Serve handles requests until EOF, a read error, or ctx cancellation.
// EOF is a normal shutdown and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	for s.reader.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := s.reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.respondError(nil, CodeParseError, "parse error", err.Error())
			continue
		}
		if req.JSONRPC != "2.0" {
			s.respondError(req.ID, CodeInvalidRequest, "invalid request", "jsonrpc must be 2.0")
			continue
		}

		s.dispatch(ctx, &req)
	}
	return s.reader.Err()
}

func (s *Server) dispatch(ctx context.Context, req *Request) {
	if s.logger != nil {
		s.logger.Debug("MCP request", zap.String("method", req.Method))
	}

	switch req.Method {
	case "initialize":
		s.respond(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    Capabilities{},
			ServerInfo:      s.info,
		})

	case "notifications/initialized":
		// Notification, no response.

	case "ping":
		s.respond(req.ID, struct{}{})

	case "tools/list":
		s.respond(req.ID, s.listTools())

	case "tools/call":
		s.callTool(ctx, req)

	default:
		if req.ID == nil {
			// Unknown notification, ignore per JSON-RPC.
			return
		}
		s.respondError(req.ID, CodeMethodNotFound, "method not found", req.Method)
	}
}

func (s *Server) listTools() ListToolsResult {
	all := s.registry.List()
	descriptors := make([]ToolDescriptor, 0, len(all))
	for _, tool := range all {
		descriptors = append(descriptors, ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return ListToolsResult{Tools: descriptors}
}

func (s *Server) callTool(ctx context.Context, req *Request) {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.respondError(req.ID, CodeInvalidParams, "invalid params", err.Error())
		return
	}
	if params.Name == "" {
		s.respondError(req.ID, CodeInvalidParams, "invalid params", "tool name is required")
		return
	}

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	metrics.RecordToolCall(params.Name, err == nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Tool call failed",
				zap.String("tool", params.Name),
				zap.Error(err))
		}
		s.respond(req.ID, CallToolResult{
			Content: []ContentBlock{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
		return
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.respondError(req.ID, CodeInternalError, "internal error", fmt.Sprintf("encode result: %v", err))
		return
	}
	s.respond(req.ID, CallToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(text)}},
	})
}

func (s *Server) respond(id any, result any) {
	s.write(Response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) respondError(id any, code int, message, data string) {
	resp := Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
	if data != "" {
		resp.Error.Data = data
	}
	s.write(resp)
}

func (s *Server) write(resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to encode MCP response", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.writer.Write(payload)
	_, _ = s.writer.Write([]byte("\n"))
}
