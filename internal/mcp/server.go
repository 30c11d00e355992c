// Package mcp exposes the analyzer to AI assistants over the Model Context
// Protocol. The transport is stdio only; the analyzer has no network
// surface.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/atnzpe/krav-maga-analyzer/internal/config"
	"github.com/atnzpe/krav-maga-analyzer/internal/ingest/mediapipe"
)

// New creates an MCP server with all tools registered.
func New(cfg *config.Config, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("KravMagaAnalyzer", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Krav Maga technique analyzer. Compare a student's landmark export against a master's, frame by frame, to get similarity scores and corrective feedback. Exports are MediaPipe landmark JSON files (optionally gzip-compressed)."),
	)

	h := &handlers{
		cfg:      cfg,
		log:      log,
		provider: mediapipe.NewProvider(log),
	}

	s.AddTools(
		server.ServerTool{Tool: toolAnalyzeSession, Handler: h.analyzeSession},
		server.ServerTool{Tool: toolCompareFrame, Handler: h.compareFrame},
		server.ServerTool{Tool: toolListAngleDefinitions, Handler: h.listAngleDefinitions},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	cfg      *config.Config
	log      *slog.Logger
	provider *mediapipe.Provider
}
