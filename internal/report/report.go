// Package report assembles the data the reporting collaborator consumes:
// per-frame rows with display labels, the session summary, the best/worst
// frame selection, and a score timeline chart.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
	"github.com/atnzpe/krav-maga-analyzer/internal/session"
)

// FrameRow is one frame's result with human-readable angle labels.
type FrameRow struct {
	Frame      int                `json:"frame"`
	Score      float64            `json:"score"`
	Feedback   string             `json:"feedback"`
	AngleDiffs map[string]float64 `json:"angle_diffs"`
}

// Report is the full machine-readable session report.
type Report struct {
	SessionID   string          `json:"session_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     session.Summary `json:"summary"`
	BestFrame   *FrameRow       `json:"best_frame,omitempty"`
	WorstFrame  *FrameRow       `json:"worst_frame,omitempty"`
	Frames      []FrameRow      `json:"frames"`
}

// Build assembles the report for a completed session. Only the best and
// worst frames are surfaced individually; the full table carries the
// multi-joint detail the single-sentence feedback leaves out.
func Build(sess *session.Session) *Report {
	rep := &Report{
		SessionID:   sess.ID.String(),
		GeneratedAt: time.Now(),
		Summary:     sess.Summarize(),
		Frames:      make([]FrameRow, len(sess.Results)),
	}
	for i, res := range sess.Results {
		rep.Frames[i] = frameRow(i, res)
	}
	if sess.BestFrame >= 0 {
		rep.BestFrame = &rep.Frames[sess.BestFrame]
	}
	if sess.WorstFrame >= 0 {
		rep.WorstFrame = &rep.Frames[sess.WorstFrame]
	}
	return rep
}

func frameRow(index int, res pose.Result) FrameRow {
	row := FrameRow{
		Frame:      index,
		Score:      res.Score,
		Feedback:   res.Feedback,
		AngleDiffs: make(map[string]float64, len(res.AngleDiffs)),
	}
	for name, diff := range res.AngleDiffs {
		row.AngleDiffs[pose.DisplayName(name)] = diff
	}
	return row
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
