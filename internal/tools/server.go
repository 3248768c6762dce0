package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spacesedan/redditqa/internal/processing"
)

const (
	SERVER_NAME    = "Reddit Scraping"
	SERVER_VERSION = "1.0.0"
)

var TOOL_NAMES = []string{
	TOOL_TOP_POSTS,
	TOOL_SEARCH_POSTS,
	TOOL_SEARCH_REDDIT,
	TOOL_SAVE_QA,
}

// NewServer builds the MCP server exposing the four tools.
func NewServer(fetcher *processing.Fetcher, writer *processing.QAWriter) *server.MCPServer {
	s := server.NewMCPServer(SERVER_NAME, SERVER_VERSION,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logInvocation),
	)

	h := &handlers{fetcher: fetcher, writer: writer}
	s.AddTool(topPostsTool(), h.getTopSubredditPosts)
	s.AddTool(searchPostsTool(), h.searchPosts)
	s.AddTool(searchRedditTool(), h.searchReddit)
	s.AddTool(saveQATool(), h.saveQAToNotion)

	return s
}

func logInvocation(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		start := time.Now()
		slog.Info("[Tools] Invocation started",
			slog.String("tool", req.Params.Name),
			slog.String("invocation_id", id))

		res, err := next(ctx, req)

		attrs := []any{
			slog.String("tool", req.Params.Name),
			slog.String("invocation_id", id),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			slog.Error("[Tools] Invocation failed", append(attrs, slog.String("error", err.Error()))...)
			return res, err
		}
		slog.Info("[Tools] Invocation finished", append(attrs, slog.Bool("is_error", res != nil && res.IsError))...)
		return res, nil
	}
}
