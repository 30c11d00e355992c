// Package ingest defines the boundary to the pose-estimation collaborator:
// implementations load per-frame landmark sets from the capture tool's
// export files.
package ingest

import (
	"context"

	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
)

// Stats holds the outcome of loading one landmark export.
type Stats struct {
	FramesReceived   int      `json:"frames_received"`
	FramesDetected   int      `json:"frames_detected"`
	FramesUndetected int      `json:"frames_undetected"`
	FramesRejected   int      `json:"frames_rejected"`
	UnknownJoints    []string `json:"unknown_joints,omitempty"`
}

// Provider loads the frame-aligned landmark sequence for one video. A nil
// entry in the returned slice is a frame where the detector found no body.
type Provider interface {
	Load(ctx context.Context, path string) ([]*pose.LandmarkSet, *Stats, error)
}
