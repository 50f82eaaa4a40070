package lift

import (
	"errors"
	"fmt"
)

// ErrCoefficientOutOfRange reports a family coefficient outside (0, 1.5],
// the bound the spec's data model places on cross-variation coefficients.
var ErrCoefficientOutOfRange = errors.New("lift family coefficient must be in (0, 1.5]")

// effectiveCoefficient returns l.Coefficient, defaulting the Go zero value
// (an unset field) to 1.0 — a lift with no recorded coefficient is assumed
// load-equivalent to its parent.
func effectiveCoefficient(l *Lift) float64 {
	if l.Coefficient == 0 {
		return 1.0
	}
	return l.Coefficient
}

// ResolveFamily walks id's ParentLiftID chain to its root via repo,
// returning the canonical (root) lift's id and the multiplicative
// coefficient that converts a load recorded against id into the
// canonical lift's terms. A lift with no parent is its own canonical id
// with coefficient 1.0.
//
// This implements the §3/§9 family-aliasing resolver: `resolveStateKeys(id)
// -> {updateStateKey, referenceStateKey, coefficient}`. Both state keys
// here collapse to the same canonical id — the engine always reads and
// writes LiftState at the canonical id, multiplying by coefficient only
// when comparing a variation's recorded load against that state.
func ResolveFamily(id string, repo LiftRepository) (canonicalID string, coefficient float64, err error) {
	visited := map[string]bool{id: true}
	currentID := id
	coefficient = 1.0

	for {
		current, err := repo.GetByID(currentID)
		if err != nil {
			return "", 0, fmt.Errorf("resolving lift family for %s: %w", id, err)
		}
		if current == nil || current.ParentLiftID == nil {
			break
		}
		coefficient *= effectiveCoefficient(current)
		currentID = *current.ParentLiftID
		if visited[currentID] {
			return "", 0, fmt.Errorf("resolving lift family for %s: %w", id, ErrCircularReference)
		}
		visited[currentID] = true
	}

	if coefficient <= 0 || coefficient > 1.5 {
		return "", 0, fmt.Errorf("%w: got %.4f for lift %s", ErrCoefficientOutOfRange, coefficient, id)
	}
	return currentID, coefficient, nil
}
