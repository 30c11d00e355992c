package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/atnzpe/krav-maga-analyzer/internal/config"
	"github.com/atnzpe/krav-maga-analyzer/internal/ingest/mediapipe"
)

func testHandlers() *handlers {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers{cfg: config.Default(), log: log, provider: mediapipe.NewProvider(log)}
}

// TestParseFrameIndex verifies frame index parsing and its error cases.
func TestParseFrameIndex(t *testing.T) {
	if n, err := parseFrameIndex("12"); err != nil || n != 12 {
		t.Errorf("parseFrameIndex(12) = %d, %v", n, err)
	}
	if n, err := parseFrameIndex("0"); err != nil || n != 0 {
		t.Errorf("parseFrameIndex(0) = %d, %v", n, err)
	}
	if _, err := parseFrameIndex("-3"); err == nil {
		t.Error("expected error for negative index")
	}
	if _, err := parseFrameIndex("ten"); err == nil {
		t.Error("expected error for non-numeric index")
	}
}

// TestListAngleDefinitions verifies the static tool succeeds without
// parameters.
func TestListAngleDefinitions(t *testing.T) {
	h := testHandlers()
	res, err := h.listAngleDefinitions(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res == nil || res.IsError {
		t.Fatalf("result = %+v, want success", res)
	}
}

// TestAnalyzeSessionMissingParams verifies missing required parameters
// produce a tool error, not a Go error.
func TestAnalyzeSessionMissingParams(t *testing.T) {
	h := testHandlers()
	res, err := h.analyzeSession(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatal("expected a tool error for missing parameters")
	}
}

// TestNewRegistersServer verifies the server constructs with the configured
// tool set.
func TestNewRegistersServer(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(config.Default(), "test", log)
	if s == nil {
		t.Fatal("New returned nil server")
	}
}
