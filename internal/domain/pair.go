package domain

import "sort"

// Pair is an unordered pair of participants stored with A <= B.
type Pair struct {
	A Participant
	B Participant
}

func NewPair(p, q Participant) Pair {
	if q < p {
		p, q = q, p
	}

	return Pair{A: p, B: q}
}

func (p Pair) String() string {
	return string(p.A) + " + " + string(p.B)
}

type PairCost struct {
	Pair Pair
	Cost float64
}

// CostMatrix holds the accumulated familiarity cost of every pair seen
// together in the history. Pairs never seen together are absent and cost 0.
type CostMatrix map[Pair]float64

func (m CostMatrix) Cost(p, q Participant) float64 {
	return m[NewPair(p, q)]
}

func (m CostMatrix) Add(p, q Participant, delta float64) {
	m[NewPair(p, q)] += delta
}

// Ranked lists the pairs by descending cost, ties ordered by name.
func (m CostMatrix) Ranked() []PairCost {
	ranked := make([]PairCost, 0, len(m))
	for pair, cost := range m {
		ranked = append(ranked, PairCost{Pair: pair, Cost: cost})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Cost != ranked[j].Cost {
			return ranked[i].Cost > ranked[j].Cost
		}
		if ranked[i].Pair.A != ranked[j].Pair.A {
			return ranked[i].Pair.A < ranked[j].Pair.A
		}
		return ranked[i].Pair.B < ranked[j].Pair.B
	})

	return ranked
}
