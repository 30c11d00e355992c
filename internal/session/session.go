// Package session orchestrates one student-vs-master analysis run: it walks
// aligned frame pairs through the pose comparator and aggregates the ordered
// results with best/worst frame tracking. Sessions are transient; nothing is
// persisted.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
)

// Session holds the in-memory state of one analysis run. It is created by
// Analyzer.Run, owned by a single writer, and immutable once returned.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Results   []pose.Result `json:"results"`

	// BestFrame and WorstFrame index the maximum- and minimum-scoring
	// frames. Ties break to the earliest index. -1 when there are no frames.
	BestFrame  int `json:"best_frame"`
	WorstFrame int `json:"worst_frame"`
}

// Analyzer runs frame-by-frame comparisons for a session.
type Analyzer struct {
	cmp     *pose.Comparator
	log     *slog.Logger
	workers int
}

// New creates an Analyzer. workers > 1 compares frames concurrently; results
// land in a pre-sized slice so output order never depends on completion
// order. workers <= 1 keeps the sequential reference behaviour.
func New(cmp *pose.Comparator, workers int, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{cmp: cmp, log: log, workers: workers}
}

// Run compares the two frame sequences pairwise, truncated to the shorter
// one, and returns a Session with exactly one result per aligned index, in
// input order. Nil entries are expected (frames where detection failed) and
// produce sentinel results rather than aborting. The only error condition is
// context cancellation.
func (a *Analyzer) Run(ctx context.Context, student, master []*pose.LandmarkSet) (*Session, error) {
	n := len(student)
	if len(master) < n {
		n = len(master)
	}
	if len(student) != len(master) {
		a.log.Warn("frame sequences differ in length, truncating",
			"student_frames", len(student), "master_frames", len(master), "analyzed", n)
	}

	results := make([]pose.Result, n)

	if a.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = a.cmp.Compare(student[i], master[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = a.cmp.Compare(student[i], master[i])
		}
	}

	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Results:   results,
		BestFrame: -1, WorstFrame: -1,
	}
	if n > 0 {
		sess.BestFrame, sess.WorstFrame = 0, 0
		for i := 1; i < n; i++ {
			if results[i].Score > results[sess.BestFrame].Score {
				sess.BestFrame = i
			}
			if results[i].Score < results[sess.WorstFrame].Score {
				sess.WorstFrame = i
			}
		}
	}

	a.log.Info("session analyzed",
		"session_id", sess.ID,
		"frames", n,
		"best_frame", sess.BestFrame,
		"worst_frame", sess.WorstFrame,
	)
	return sess, nil
}
