package e1rm

import "time"

// Trend classifies the direction of a lift's rolling e1RM over its recent
// history.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendStable       Trend = "stable"
	TrendDeclining    Trend = "declining"
	TrendInsufficient Trend = "insufficient"
)

// maxHistorySamples is the cap on e1rmHistory length; oldest samples are
// dropped once it is exceeded.
const maxHistorySamples = 10

// rollingWeight and priorWeight are the exponential-smoothing weights
// applied to the new session estimate and the existing rolling average.
const (
	rollingWeight = 0.3
	priorWeight   = 0.7
)

// trendSensitivityBand is the fraction of the history's mean inside which a
// least-squares slope is treated as stable rather than trending.
const trendSensitivityBand = 0.01

// Sample is one (date, e1RM) observation retained in a lift's history.
type Sample struct {
	Date  time.Time
	Value float64
}

// UpdateRolling folds a new session e1RM into the existing rolling average
// and history. An empty history (first session) seeds the rolling value
// directly from sessionE1RM rather than blending against zero. The returned
// history is truncated to the most recent maxHistorySamples entries,
// oldest-first.
func UpdateRolling(rollingE1RM float64, history []Sample, sessionE1RM float64, sessionDate time.Time) (newRolling float64, newHistory []Sample) {
	if len(history) == 0 {
		newRolling = sessionE1RM
	} else {
		newRolling = rollingWeight*sessionE1RM + priorWeight*rollingE1RM
	}

	appended := make([]Sample, 0, len(history)+1)
	appended = append(appended, history...)
	appended = append(appended, Sample{Date: sessionDate, Value: sessionE1RM})

	if len(appended) > maxHistorySamples {
		appended = appended[len(appended)-maxHistorySamples:]
	}
	return newRolling, appended
}

// ClassifyTrend computes the trend over history via the sign of a
// least-squares slope fit to (index, value) pairs in chronological order.
// Fewer than two samples yields insufficient. A slope whose magnitude is
// within trendSensitivityBand of the history's mean value is stable rather
// than improving or declining.
func ClassifyTrend(history []Sample) Trend {
	n := len(history)
	if n < 2 {
		return TrendInsufficient
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, s := range history {
		x := float64(i)
		y := s.Value
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	nf := float64(n)
	denominator := nf*sumXX - sumX*sumX
	if denominator == 0 {
		return TrendStable
	}
	slope := (nf*sumXY - sumX*sumY) / denominator

	mean := sumY / nf
	band := trendSensitivityBand * mean
	if mean == 0 {
		band = 0
	}

	switch {
	case slope > band:
		return TrendImproving
	case slope < -band:
		return TrendDeclining
	default:
		return TrendStable
	}
}
