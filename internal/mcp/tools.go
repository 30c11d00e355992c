package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
	"github.com/atnzpe/krav-maga-analyzer/internal/session"
)

// parseFrameIndex parses a non-negative frame index passed as a string
// parameter.
func parseFrameIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("frame index %q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("frame index must be non-negative, got %d", n)
	}
	return n, nil
}

// --- Tool definitions ---

var toolAnalyzeSession = mcp.NewTool("analyze_session",
	mcp.WithDescription("Analyze a full session: compare every aligned frame of a student landmark export against a master export. Returns the session summary (mean/min/max score, best and worst frame indices) and the per-export ingest counters."),
	mcp.WithString("student", mcp.Required(), mcp.Description("Path to the student's landmark export (.json or .json.gz)")),
	mcp.WithString("master", mcp.Required(), mcp.Description("Path to the master's landmark export (.json or .json.gz)")),
)

var toolCompareFrame = mcp.NewTool("compare_frame",
	mcp.WithDescription("Compare a single aligned frame pair. Returns the similarity score, the feedback sentence, and every tracked angle difference in degrees."),
	mcp.WithString("student", mcp.Required(), mcp.Description("Path to the student's landmark export")),
	mcp.WithString("master", mcp.Required(), mcp.Description("Path to the master's landmark export")),
	mcp.WithString("frame", mcp.Required(), mcp.Description("Aligned frame index, starting at 0")),
)

var toolListAngleDefinitions = mcp.NewTool("list_angle_definitions",
	mcp.WithDescription("List the eight tracked joint angles: internal name, display label, and the three joints (A, vertex B, C) defining each angle."),
)

// --- Tool handlers ---

func (h *handlers) analyzeSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	studentPath, err := req.RequireString("student")
	if err != nil {
		return mcp.NewToolResultError("student parameter is required"), nil
	}
	masterPath, err := req.RequireString("master")
	if err != nil {
		return mcp.NewToolResultError("master parameter is required"), nil
	}

	student, studentStats, err := h.provider.Load(ctx, studentPath)
	if err != nil {
		h.log.Error("mcp analyze_session: student export", "error", err)
		return mcp.NewToolResultError("loading student export: " + err.Error()), nil
	}
	master, masterStats, err := h.provider.Load(ctx, masterPath)
	if err != nil {
		h.log.Error("mcp analyze_session: master export", "error", err)
		return mcp.NewToolResultError("loading master export: " + err.Error()), nil
	}

	cmp := pose.NewComparator(h.cfg.Analysis.VisibilityFloor, h.log)
	analyzer := session.New(cmp, h.cfg.Analysis.Workers, h.log)
	sess, err := analyzer.Run(ctx, student, master)
	if err != nil {
		h.log.Error("mcp analyze_session: analysis", "error", err)
		return mcp.NewToolResultError("analysis failed: " + err.Error()), nil
	}

	payload := map[string]any{
		"session_id":    sess.ID.String(),
		"summary":       sess.Summarize(),
		"student_stats": studentStats,
		"master_stats":  masterStats,
	}
	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareFrame(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	studentPath, err := req.RequireString("student")
	if err != nil {
		return mcp.NewToolResultError("student parameter is required"), nil
	}
	masterPath, err := req.RequireString("master")
	if err != nil {
		return mcp.NewToolResultError("master parameter is required"), nil
	}
	frameStr, err := req.RequireString("frame")
	if err != nil {
		return mcp.NewToolResultError("frame parameter is required"), nil
	}
	frame, err := parseFrameIndex(frameStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	student, _, err := h.provider.Load(ctx, studentPath)
	if err != nil {
		return mcp.NewToolResultError("loading student export: " + err.Error()), nil
	}
	master, _, err := h.provider.Load(ctx, masterPath)
	if err != nil {
		return mcp.NewToolResultError("loading master export: " + err.Error()), nil
	}

	n := len(student)
	if len(master) < n {
		n = len(master)
	}
	if frame >= n {
		return mcp.NewToolResultError(fmt.Sprintf("frame %d out of range, session has %d aligned frames", frame, n)), nil
	}

	cmp := pose.NewComparator(h.cfg.Analysis.VisibilityFloor, h.log)
	res := cmp.Compare(student[frame], master[frame])

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listAngleDefinitions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type defEntry struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		A           string `json:"a"`
		Vertex      string `json:"vertex"`
		C           string `json:"c"`
	}
	defs := make([]defEntry, len(pose.AngleDefs))
	for i, def := range pose.AngleDefs {
		defs[i] = defEntry{
			Name:        def.Name,
			DisplayName: pose.DisplayName(def.Name),
			A:           def.A.String(),
			Vertex:      def.B.String(),
			C:           def.C.String(),
		}
	}
	result, err := mcp.NewToolResultJSON(defs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
