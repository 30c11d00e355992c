package pose

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// FeedbackThresholdDeg is the maximum angle difference, in degrees,
	// below which a movement is reported as excellent.
	FeedbackThresholdDeg = 10.0

	// FeedbackWaiting is returned while either side has no detected pose.
	FeedbackWaiting = "Aguardando pose..."

	// FeedbackExcellent is returned when every tracked angle is within the
	// feedback threshold.
	FeedbackExcellent = "Excelente movimento!"
)

// Result is the outcome of comparing one aligned frame pair. Immutable after
// creation.
type Result struct {
	// Score is the remapped cosine similarity of the two angle profiles,
	// in [0,100]. 100 means identical profiles, 50 uncorrelated ones.
	Score float64 `json:"score"`

	// Feedback is a single sentence naming at most one joint: the one with
	// the largest angle difference.
	Feedback string `json:"feedback"`

	// AngleDiffs maps each angle name to the absolute student-master
	// difference in degrees. Empty when no pose was detected.
	AngleDiffs map[string]float64 `json:"angle_diffs"`

	// Degraded lists the angles that fell back to zero because a required
	// joint was not resolvable. It distinguishes a measured zero angle from
	// a fallback zero.
	Degraded []string `json:"degraded,omitempty"`
}

// Comparator scores how closely a student's body configuration matches a
// master's for one aligned frame pair. It never fails on missing or partial
// landmark data; detection gaps degrade to sentinel or per-angle zero
// results so callers always receive a well-formed Result per frame.
type Comparator struct {
	log *slog.Logger

	// visibilityFloor marks a joint unresolvable when the detector's
	// confidence falls below it. Zero disables the check.
	visibilityFloor float64
}

// NewComparator creates a Comparator. visibilityFloor below-confidence
// joints degrade their angle to zero; pass 0 to trust every landmark.
func NewComparator(visibilityFloor float64, log *slog.Logger) *Comparator {
	if log == nil {
		log = slog.Default()
	}
	return &Comparator{log: log, visibilityFloor: visibilityFloor}
}

// Compare computes the eight tracked joint angles for both landmark sets,
// their absolute differences, the similarity score, and the feedback
// sentence. A nil set on either side means pose detection failed for that
// frame and yields the waiting sentinel. An angle whose joints cannot be
// resolved on either side contributes zero to both profiles and is recorded
// in Result.Degraded.
func (c *Comparator) Compare(student, master *LandmarkSet) Result {
	if student == nil || master == nil {
		return Result{Score: 0.0, Feedback: FeedbackWaiting, AngleDiffs: map[string]float64{}}
	}

	n := len(orderedDefs)
	studentAngles := make([]float64, n)
	masterAngles := make([]float64, n)
	diffs := make(map[string]float64, n)
	var degraded []string

	for i, def := range orderedDefs {
		if !c.resolvable(student, def) || !c.resolvable(master, def) {
			diffs[def.Name] = 0
			degraded = append(degraded, def.Name)
			c.log.Warn("angle degraded to zero, joint below visibility floor", "angle", def.Name)
			continue
		}
		sa := Angle(student.Points[def.A], student.Points[def.B], student.Points[def.C])
		ma := Angle(master.Points[def.A], master.Points[def.B], master.Points[def.C])
		studentAngles[i] = sa
		masterAngles[i] = ma
		diffs[def.Name] = math.Abs(sa - ma)
	}

	sNorm := floats.Norm(studentAngles, 2)
	mNorm := floats.Norm(masterAngles, 2)
	if sNorm == 0 || mNorm == 0 {
		// Every angle collapsed or degraded: the profile carries no
		// information, treat it like a missed detection.
		return Result{Score: 0.0, Feedback: FeedbackWaiting, AngleDiffs: diffs, Degraded: degraded}
	}

	sim := floats.Dot(studentAngles, masterAngles) / (sNorm * mNorm)
	score := (sim + 1) / 2 * 100

	return Result{
		Score:      score,
		Feedback:   feedback(studentAngles, masterAngles, diffs),
		AngleDiffs: diffs,
		Degraded:   degraded,
	}
}

// resolvable reports whether every joint the definition needs clears the
// visibility floor in the given set.
func (c *Comparator) resolvable(set *LandmarkSet, def AngleDef) bool {
	if c.visibilityFloor <= 0 {
		return true
	}
	return set.Points[def.A].Visibility >= c.visibilityFloor &&
		set.Points[def.B].Visibility >= c.visibilityFloor &&
		set.Points[def.C].Visibility >= c.visibilityFloor
}

// feedback builds the single-sentence correction for the worst-offending
// joint. Multi-joint detail is left to the report table.
func feedback(studentAngles, masterAngles []float64, diffs map[string]float64) string {
	worst := 0
	for i, def := range orderedDefs {
		if diffs[def.Name] > diffs[orderedDefs[worst].Name] {
			worst = i
		}
	}
	name := orderedDefs[worst].Name
	if diffs[name] < FeedbackThresholdDeg {
		return FeedbackExcellent
	}
	if studentAngles[worst] < masterAngles[worst] {
		return fmt.Sprintf("Aumente o ângulo de %s.", DisplayName(name))
	}
	return fmt.Sprintf("Diminua o ângulo de %s.", DisplayName(name))
}
