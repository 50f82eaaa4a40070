// Package substitution ranks catalog exercises as candidate substitutes
// for a given exercise (spec §2's "substitution ranking (support)"
// budget line). It produces the ranked list an ExercisePlan carries; any
// UI built on top of that list is out of scope here.
package substitution

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Candidate describes one catalog exercise available as a substitute.
type Candidate struct {
	ExerciseID      string
	DisplayName     string
	MovementPattern string
	PrimaryMuscles  []string
	Equipment       []string
}

// Ranked is a Candidate scored against a target exercise, with its
// DisplayName title-cased for presentation.
type Ranked struct {
	Candidate
	Score float64
}

// Weights controls how much each similarity dimension contributes to a
// candidate's score. Movement pattern dominates because it is the
// dimension that determines whether the substitute loads the same
// joints and tissues as the original.
type Weights struct {
	MovementPattern float64
	PrimaryMuscle   float64
	Equipment       float64
}

// DefaultWeights mirrors the priority spec §2 implies: movement pattern
// first, muscle overlap second, equipment overlap a tiebreaker only.
func DefaultWeights() Weights {
	return Weights{MovementPattern: 0.6, PrimaryMuscle: 0.3, Equipment: 0.1}
}

var titleCaser = cases.Title(language.Und)

// Rank scores every candidate in pool against target and returns them
// sorted best-first. The target itself is excluded from the result.
// Ties break on ExerciseID for a stable, deterministic order.
func Rank(target Candidate, pool []Candidate, w Weights) []Ranked {
	ranked := make([]Ranked, 0, len(pool))
	for _, c := range pool {
		if c.ExerciseID == target.ExerciseID {
			continue
		}
		score := w.MovementPattern*patternScore(target, c) +
			w.PrimaryMuscle*overlapScore(target.PrimaryMuscles, c.PrimaryMuscles) +
			w.Equipment*overlapScore(target.Equipment, c.Equipment)

		c.DisplayName = titleCaser.String(c.DisplayName)
		ranked = append(ranked, Ranked{Candidate: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ExerciseID < ranked[j].ExerciseID
	})
	return ranked
}

func patternScore(a, b Candidate) float64 {
	if a.MovementPattern == "" || b.MovementPattern == "" {
		return 0
	}
	if a.MovementPattern == b.MovementPattern {
		return 1
	}
	return 0
}

// overlapScore is the Jaccard index of the two sets: |intersection| / |union|.
func overlapScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	intersection := 0
	union := map[string]bool{}
	for _, v := range a {
		union[v] = true
	}
	for _, v := range b {
		union[v] = true
		if set[v] {
			intersection++
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}
