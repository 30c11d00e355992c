package mediapipe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/atnzpe/krav-maga-analyzer/internal/ingest"
	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
)

// Provider loads MediaPipe landmark exports, plain or gzip-compressed.
type Provider struct {
	log *slog.Logger
}

// NewProvider creates a MediaPipe export provider.
func NewProvider(log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{log: log}
}

// Load reads the export at path and converts it to the frame-aligned
// landmark sequence. Undetected frames become nil entries; frames with
// unknown landmark names keep their known landmarks, with the unknown names
// reported once in the stats.
func (p *Provider) Load(ctx context.Context, path string) ([]*pose.LandmarkSet, *ingest.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening landmark export: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip export %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	exp, err := Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	stats := &ingest.Stats{FramesReceived: len(exp.Frames)}
	unknown := map[string]bool{}
	frames := make([]*pose.LandmarkSet, 0, len(exp.Frames))

	for _, rec := range exp.Frames {
		if rec.Landmarks == nil {
			frames = append(frames, nil)
			stats.FramesUndetected++
			continue
		}
		set := &pose.LandmarkSet{}
		known := 0
		for name, pt := range rec.Landmarks {
			j, ok := pose.JointFromName(name)
			if !ok {
				if !unknown[name] {
					unknown[name] = true
					stats.UnknownJoints = append(stats.UnknownJoints, name)
					p.log.Warn("unknown landmark name in export", "name", name, "file", path)
				}
				continue
			}
			set.Points[j] = pose.Landmark{X: pt.X, Y: pt.Y, Z: pt.Z, Visibility: pt.Visibility}
			known++
		}
		if known == 0 {
			// A landmarks object with no recognisable joints is malformed,
			// not merely undetected. Skip the frame but keep going.
			frames = append(frames, nil)
			stats.FramesRejected++
			p.log.Warn("frame rejected, no known landmarks", "frame", rec.Index, "file", path)
			continue
		}
		frames = append(frames, set)
		stats.FramesDetected++
	}

	p.log.Info("landmark export loaded",
		"file", path,
		"frames", stats.FramesReceived,
		"detected", stats.FramesDetected,
		"undetected", stats.FramesUndetected,
		"rejected", stats.FramesRejected,
	)
	return frames, stats, nil
}
