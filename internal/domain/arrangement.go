package domain

type Table []Participant

type Arrangement []Table

// History is ordered oldest first.
type History []Arrangement

const DefaultHistoryKeep = 6

func (a Arrangement) Seated() int {
	total := 0
	for _, table := range a {
		total += len(table)
	}
	return total
}

// RepeatCost sums the pair cost of every co-seated pair.
func (a Arrangement) RepeatCost(costs CostMatrix) float64 {
	total := 0.0
	for _, table := range a {
		for i := range table {
			for j := i + 1; j < len(table); j++ {
				total += costs.Cost(table[i], table[j])
			}
		}
	}
	return total
}

func (a Arrangement) Clone() Arrangement {
	if a == nil {
		return nil
	}

	cloned := make(Arrangement, len(a))
	for i, table := range a {
		cloned[i] = append(Table{}, table...)
	}
	return cloned
}

func (h History) Latest() (Arrangement, bool) {
	if len(h) == 0 {
		return nil, false
	}
	return h[len(h)-1], true
}

// Record returns a new history with the arrangement appended as the newest
// round. With replaceLatest set, the newest round is overwritten instead.
func (h History) Record(arrangement Arrangement, replaceLatest bool) History {
	updated := make(History, 0, len(h)+1)
	updated = append(updated, h...)

	if replaceLatest && len(updated) > 0 {
		updated[len(updated)-1] = arrangement.Clone()
		return updated
	}

	return append(updated, arrangement.Clone())
}

// Trim keeps the newest keep rounds. A non-positive keep disables trimming.
func (h History) Trim(keep int) History {
	if keep <= 0 || len(h) <= keep {
		return h
	}
	return h[len(h)-keep:]
}
