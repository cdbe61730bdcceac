package domain

import (
	"fmt"
	"math"
	"slices"
)

const (
	emptyTableCost     = -1.0
	occupancyBonusBase = 0.5
)

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Distributor seats participants greedily: each step picks the unseated
// participant whose worst open table is the most expensive and seats them at
// their cheapest open table.
type Distributor struct {
	shuffle ShuffleFunc
}

// NewDistributor returns a distributor using shuffle to order participants.
// A nil shuffle keeps the input order.
func NewDistributor(shuffle ShuffleFunc) *Distributor {
	if shuffle == nil {
		shuffle = func(int, func(i, j int)) {}
	}

	return &Distributor{shuffle: shuffle}
}

func (d *Distributor) Distribute(costs CostMatrix, participants []Participant, maxPerTable float64) (Arrangement, error) {
	if err := ValidateMaxPerTable(maxPerTable); err != nil {
		return nil, err
	}
	if err := ValidateParticipants(participants); err != nil {
		return nil, err
	}

	tables := make(Arrangement, TableCount(len(participants), maxPerTable))
	for i := range tables {
		tables[i] = Table{}
	}

	unseated := slices.Clone(participants)
	d.shuffle(len(unseated), func(i, j int) {
		unseated[i], unseated[j] = unseated[j], unseated[i]
	})

	// The first shuffled participant opens table 0.
	tables[0] = append(tables[0], unseated[0])
	unseated = unseated[1:]

	for len(unseated) > 0 {
		picked := -1
		var pickedOption placement
		for i, person := range unseated {
			option, ok := bestPlacement(person, tables, costs, maxPerTable)
			if !ok {
				continue
			}
			if picked < 0 || option.highestCost > pickedOption.highestCost {
				picked = i
				pickedOption = option
			}
		}
		if picked < 0 {
			return nil, fmt.Errorf("seat %d remaining participants: every table is full", len(unseated))
		}

		tables[pickedOption.table] = append(tables[pickedOption.table], unseated[picked])
		unseated = slices.Delete(unseated, picked, picked+1)
	}

	return tables, nil
}

type placement struct {
	table       int
	highestCost float64
}

// bestPlacement reports the cheapest open table for person together with
// the most expensive open one. It returns false when every table is full.
func bestPlacement(person Participant, tables Arrangement, costs CostMatrix, maxPerTable float64) (placement, bool) {
	best := placement{table: -1, highestCost: math.Inf(-1)}
	minCost := math.Inf(1)

	for i, table := range tables {
		if float64(len(table)) >= maxPerTable {
			continue
		}

		cost := PlacementCost(person, table, costs)
		if cost > best.highestCost {
			best.highestCost = cost
		}
		if cost < minCost {
			minCost = cost
			best.table = i
		}
	}

	return best, best.table >= 0
}

// PlacementCost is the cost of seating person at table. Empty tables cost -1;
// otherwise the pair costs with every occupant are summed and a small bonus
// that shrinks with occupancy is subtracted.
func PlacementCost(person Participant, table Table, costs CostMatrix) float64 {
	if len(table) == 0 {
		return emptyTableCost
	}

	cost := 0.0
	for _, occupant := range table {
		cost += costs.Cost(person, occupant)
	}

	return cost - occupancyBonusBase/float64(1+len(table))
}
