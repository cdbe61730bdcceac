package domain

import (
	"fmt"
	"math"
	"strings"
)

// Weighting maps the age of a round (0 for the newest retained round) to the
// cost it adds for every pair seated together in it. Implementations must be
// positive and strictly decreasing.
type Weighting func(age int) float64

const (
	WeightingHarmonic    = "harmonic"
	WeightingExponential = "exponential"
)

func HarmonicWeighting(age int) float64 {
	return 1 / float64(age+1)
}

func ExponentialWeighting(age int) float64 {
	return math.Ldexp(1, -age)
}

func ParseWeighting(name string) (Weighting, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WeightingHarmonic:
		return HarmonicWeighting, nil
	case WeightingExponential:
		return ExponentialWeighting, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWeighting, name)
	}
}

// BuildCostMatrix accumulates the familiarity cost of every pair of current
// participants that shared a table in the history. Names that are not in
// participants are skipped, as are repeated names within one table.
func BuildCostMatrix(participants []Participant, history History, weight Weighting) CostMatrix {
	if weight == nil {
		weight = HarmonicWeighting
	}

	present := make(map[Participant]struct{}, len(participants))
	for _, participant := range participants {
		present[participant] = struct{}{}
	}

	costs := CostMatrix{}
	for i, arrangement := range history {
		increment := weight(len(history) - 1 - i)
		for _, table := range arrangement {
			seated := currentOccupants(table, present)
			for a := range seated {
				for b := a + 1; b < len(seated); b++ {
					costs.Add(seated[a], seated[b], increment)
				}
			}
		}
	}

	return costs
}

func currentOccupants(table Table, present map[Participant]struct{}) []Participant {
	occupants := make([]Participant, 0, len(table))
	seen := make(map[Participant]struct{}, len(table))
	for _, person := range table {
		if _, ok := present[person]; !ok {
			continue
		}
		if _, ok := seen[person]; ok {
			continue
		}
		seen[person] = struct{}{}
		occupants = append(occupants, person)
	}
	return occupants
}
