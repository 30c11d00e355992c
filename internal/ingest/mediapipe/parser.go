// Package mediapipe parses the landmark export written by the MediaPipe
// capture tool: one JSON document per video, one record per frame, each
// record carrying the 33 named landmarks or null when no body was detected.
package mediapipe

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Export is the top-level document shape.
type Export struct {
	Video  string        `json:"video"`
	FPS    float64       `json:"fps"`
	Frames []FrameRecord `json:"frames"`
}

// FrameRecord is one frame's detection output. A null or absent landmarks
// object means the detector found no body in that frame.
type FrameRecord struct {
	Index     int                      `json:"index"`
	Landmarks map[string]LandmarkPoint `json:"landmarks"`
}

// LandmarkPoint mirrors one MediaPipe landmark entry.
type LandmarkPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Parse decodes one export document. Frames are returned sorted by index;
// the capture tool writes them in order but a re-assembled export may not.
func Parse(r io.Reader) (*Export, error) {
	var exp Export
	dec := json.NewDecoder(r)
	if err := dec.Decode(&exp); err != nil {
		return nil, fmt.Errorf("decoding landmark export: %w", err)
	}
	if exp.Frames == nil {
		return nil, fmt.Errorf("landmark export has no frames array")
	}
	sort.SliceStable(exp.Frames, func(i, k int) bool {
		return exp.Frames[i].Index < exp.Frames[k].Index
	})
	return &exp, nil
}
