package session

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// guardPose returns a full-visibility landmark set for a neutral guard.
func guardPose() *pose.LandmarkSet {
	set := &pose.LandmarkSet{}
	place := func(j pose.Joint, x, y, z float64) {
		set.Points[j] = pose.Landmark{X: x, Y: y, Z: z, Visibility: 0.95}
	}
	place(pose.LeftShoulder, 0.60, 0.30, 0)
	place(pose.RightShoulder, 0.40, 0.30, 0)
	place(pose.LeftElbow, 0.68, 0.45, 0.02)
	place(pose.RightElbow, 0.32, 0.45, 0.02)
	place(pose.LeftWrist, 0.70, 0.60, 0.05)
	place(pose.RightWrist, 0.30, 0.60, 0.05)
	place(pose.LeftHip, 0.57, 0.60, 0)
	place(pose.RightHip, 0.43, 0.60, 0)
	place(pose.LeftKnee, 0.58, 0.78, 0.01)
	place(pose.RightKnee, 0.42, 0.78, 0.01)
	place(pose.LeftAnkle, 0.58, 0.95, 0.03)
	place(pose.RightAnkle, 0.42, 0.95, 0.03)
	return set
}

// strikePose is guardPose with the left arm extended, enough to move several
// angles away from the guard.
func strikePose() *pose.LandmarkSet {
	set := guardPose()
	set.Points[pose.LeftElbow] = pose.Landmark{X: 0.75, Y: 0.30, Z: 0.05, Visibility: 0.95}
	set.Points[pose.LeftWrist] = pose.Landmark{X: 0.90, Y: 0.30, Z: 0.08, Visibility: 0.95}
	return set
}

func newAnalyzer(workers int) *Analyzer {
	return New(pose.NewComparator(0, testLogger()), workers, testLogger())
}

// TestRunProducesOrderedResults verifies N aligned pairs yield exactly N
// results in input order.
func TestRunProducesOrderedResults(t *testing.T) {
	a := newAnalyzer(1)
	guard, strike := guardPose(), strikePose()
	student := []*pose.LandmarkSet{guard, strike, nil, guard}
	master := []*pose.LandmarkSet{guard, guard, guard, guard}

	sess, err := a.Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Results) != 4 {
		t.Fatalf("results = %d, want 4", len(sess.Results))
	}
	// Frame 0 is an identical pair, frame 2 a detection gap.
	if sess.Results[0].Score < 99.999 {
		t.Errorf("frame 0 score = %v, want ~100", sess.Results[0].Score)
	}
	if sess.Results[2].Score != 0 || sess.Results[2].Feedback != pose.FeedbackWaiting {
		t.Errorf("frame 2 = %+v, want waiting sentinel", sess.Results[2])
	}
}

// TestRunTruncatesToShorter verifies independently-lengthed sequences are
// truncated to the shorter one.
func TestRunTruncatesToShorter(t *testing.T) {
	a := newAnalyzer(1)
	guard := guardPose()
	student := []*pose.LandmarkSet{guard, guard, guard, guard, guard}
	master := []*pose.LandmarkSet{guard, guard}

	sess, err := a.Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Results) != 2 {
		t.Errorf("results = %d, want 2", len(sess.Results))
	}
}

// TestRunBestWorstTieBreak verifies argmax/argmin over scores select the
// earliest index on ties.
func TestRunBestWorstTieBreak(t *testing.T) {
	a := newAnalyzer(1)
	guard := guardPose()

	// Scores: [100, 0, 100, 0]. Both ties resolve to the first occurrence.
	student := []*pose.LandmarkSet{guard, nil, guard, nil}
	master := []*pose.LandmarkSet{guard, guard, guard, guard}

	sess, err := a.Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.BestFrame != 0 {
		t.Errorf("best frame = %d, want 0", sess.BestFrame)
	}
	if sess.WorstFrame != 1 {
		t.Errorf("worst frame = %d, want 1", sess.WorstFrame)
	}

	// All-equal scores collapse both to index 0.
	sess, err = a.Run(context.Background(),
		[]*pose.LandmarkSet{guard, guard, guard},
		[]*pose.LandmarkSet{guard, guard, guard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.BestFrame != 0 || sess.WorstFrame != 0 {
		t.Errorf("best/worst = %d/%d, want 0/0", sess.BestFrame, sess.WorstFrame)
	}
}

// TestRunEmptyInput verifies a zero-frame session is well-formed with
// sentinel indices.
func TestRunEmptyInput(t *testing.T) {
	a := newAnalyzer(1)
	sess, err := a.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Results) != 0 {
		t.Errorf("results = %d, want 0", len(sess.Results))
	}
	if sess.BestFrame != -1 || sess.WorstFrame != -1 {
		t.Errorf("best/worst = %d/%d, want -1/-1", sess.BestFrame, sess.WorstFrame)
	}
}

// TestRunParallelMatchesSequential verifies the worker pool writes into the
// pre-sized result slice so parallel analysis is bit-identical to the
// sequential reference, frame for frame.
func TestRunParallelMatchesSequential(t *testing.T) {
	guard, strike := guardPose(), strikePose()
	var student, master []*pose.LandmarkSet
	for i := 0; i < 50; i++ {
		switch i % 4 {
		case 0:
			student = append(student, guard)
		case 1:
			student = append(student, strike)
		case 2:
			student = append(student, nil)
		case 3:
			student = append(student, strike)
		}
		master = append(master, guard)
	}

	seq, err := newAnalyzer(1).Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("sequential run: %v", err)
	}
	par, err := newAnalyzer(8).Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}

	if len(seq.Results) != len(par.Results) {
		t.Fatalf("result counts differ: %d vs %d", len(seq.Results), len(par.Results))
	}
	for i := range seq.Results {
		if seq.Results[i].Score != par.Results[i].Score {
			t.Errorf("frame %d: score %v vs %v", i, seq.Results[i].Score, par.Results[i].Score)
		}
		if seq.Results[i].Feedback != par.Results[i].Feedback {
			t.Errorf("frame %d: feedback %q vs %q", i, seq.Results[i].Feedback, par.Results[i].Feedback)
		}
	}
	if seq.BestFrame != par.BestFrame || seq.WorstFrame != par.WorstFrame {
		t.Errorf("best/worst differ: %d/%d vs %d/%d",
			seq.BestFrame, seq.WorstFrame, par.BestFrame, par.WorstFrame)
	}
}

// TestRunCancelledContext verifies a cancelled context aborts the run with
// its error.
func TestRunCancelledContext(t *testing.T) {
	a := newAnalyzer(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	guard := guardPose()
	_, err := a.Run(ctx, []*pose.LandmarkSet{guard}, []*pose.LandmarkSet{guard})
	if err == nil {
		t.Fatal("expected context error")
	}
}

// TestSummarize verifies the aggregate statistics over a mixed session.
func TestSummarize(t *testing.T) {
	a := newAnalyzer(1)
	guard := guardPose()
	student := []*pose.LandmarkSet{guard, nil, guard, guard}
	master := []*pose.LandmarkSet{guard, guard, guard, guard}

	sess, err := a.Run(context.Background(), student, master)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := sess.Summarize()

	if sum.Frames != 4 {
		t.Errorf("frames = %d, want 4", sum.Frames)
	}
	if sum.MissedFrames != 1 {
		t.Errorf("missed frames = %d, want 1", sum.MissedFrames)
	}
	if sum.MinScore != 0 {
		t.Errorf("min score = %v, want 0", sum.MinScore)
	}
	if !(sum.MaxScore > 99.999 && sum.MaxScore <= 100.0000001) {
		t.Errorf("max score = %v, want ~100", sum.MaxScore)
	}
	wantMean := (100.0*3 + 0) / 4
	if math.Abs(sum.MeanScore-wantMean) > 0.001 {
		t.Errorf("mean score = %v, want ~%v", sum.MeanScore, wantMean)
	}
	if sum.StdDevScore <= 0 {
		t.Errorf("stddev = %v, want > 0", sum.StdDevScore)
	}
	if sum.BestFrame != 0 || sum.WorstFrame != 1 {
		t.Errorf("best/worst = %d/%d, want 0/1", sum.BestFrame, sum.WorstFrame)
	}
}

// TestSummarizeEmpty verifies the zero-frame summary is all zeros with
// sentinel indices.
func TestSummarizeEmpty(t *testing.T) {
	a := newAnalyzer(1)
	sess, err := a.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := sess.Summarize()
	if sum.Frames != 0 || sum.MeanScore != 0 || sum.BestFrame != -1 {
		t.Errorf("summary = %+v, want zero-valued with -1 indices", sum)
	}
}
