package session

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the aggregate statistics reporting needs for one session.
type Summary struct {
	Frames         int     `json:"frames"`
	MeanScore      float64 `json:"mean_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	StdDevScore    float64 `json:"stddev_score"`
	BestFrame      int     `json:"best_frame"`
	WorstFrame     int     `json:"worst_frame"`
	DegradedFrames int     `json:"degraded_frames"`
	MissedFrames   int     `json:"missed_frames"`
}

// Summarize computes score statistics over the session's ordered results.
func (s *Session) Summarize() Summary {
	sum := Summary{
		Frames:     len(s.Results),
		BestFrame:  s.BestFrame,
		WorstFrame: s.WorstFrame,
	}
	if len(s.Results) == 0 {
		return sum
	}

	scores := make([]float64, len(s.Results))
	for i, r := range s.Results {
		scores[i] = r.Score
		if len(r.Degraded) > 0 {
			sum.DegradedFrames++
		}
		if len(r.AngleDiffs) == 0 {
			sum.MissedFrames++
		}
	}
	sum.MeanScore = stat.Mean(scores, nil)
	sum.MinScore = floats.Min(scores)
	sum.MaxScore = floats.Max(scores)
	if len(scores) > 1 {
		sum.StdDevScore = stat.StdDev(scores, nil)
	}
	return sum
}
