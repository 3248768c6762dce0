package tools

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/auth"
)

const MCP_ENDPOINT = "/mcp"

// NewHTTPHandler serves the MCP endpoint behind bearer authentication. The
// metadata and health routes stay public.
func NewHTTPHandler(s *server.MCPServer, cfg config.ServerConfig, health http.Handler) http.Handler {
	streamable := server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(MCP_ENDPOINT),
		server.WithStateLess(true),
	)
	bearer := auth.NewBearerAuth(cfg.APIKey, cfg.ResourceURL)

	mux := http.NewServeMux()
	mux.Handle(MCP_ENDPOINT, bearer.Middleware(streamable))
	mux.Handle(auth.PROTECTED_RESOURCE_PATH, auth.ProtectedResourceHandler(cfg.ResourceURL, cfg.IssuerURL))
	if health != nil {
		mux.Handle("/healthz", health)
	}
	return mux
}
