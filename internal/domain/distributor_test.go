package domain

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) ShuffleFunc {
	return rand.New(rand.NewPCG(seed, seed)).Shuffle
}

func names(count int) []Participant {
	participants := make([]Participant, 0, count)
	for i := 0; i < count; i++ {
		participants = append(participants, Participant(string(rune('A'+i%26))+string(rune('a'+i/26))))
	}
	return participants
}

func tableSizes(arrangement Arrangement) []int {
	sizes := make([]int, 0, len(arrangement))
	for _, table := range arrangement {
		sizes = append(sizes, len(table))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

func TestDistributeSeatsEveryoneOnceWithinCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		max   float64
	}{
		{name: "single participant", count: 1, max: 3},
		{name: "exact fit", count: 9, max: 3},
		{name: "remainder", count: 10, max: 3},
		{name: "pairs", count: 7, max: 2},
		{name: "one per table", count: 4, max: 1},
		{name: "large tables", count: 23, max: 6},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			participants := names(tc.count)
			history := History{
				{participants[:len(participants)/2], participants[len(participants)/2:]},
			}
			costs := BuildCostMatrix(participants, history, HarmonicWeighting)

			for seed := uint64(0); seed < 10; seed++ {
				arrangement, err := NewDistributor(seeded(seed)).Distribute(costs, participants, tc.max)
				require.NoError(t, err)

				assert.Len(t, arrangement, TableCount(tc.count, tc.max))

				var seated []Participant
				for _, table := range arrangement {
					assert.LessOrEqual(t, float64(len(table)), tc.max)
					seated = append(seated, table...)
				}
				assert.ElementsMatch(t, participants, seated)
			}
		})
	}
}

func TestDistributeFiveParticipantsWithoutHistory(t *testing.T) {
	t.Parallel()

	participants := []Participant{"A", "B", "C", "D", "E"}

	for seed := uint64(0); seed < 5; seed++ {
		arrangement, err := NewDistributor(seeded(seed)).Distribute(CostMatrix{}, participants, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, tableSizes(arrangement))
	}
}

func TestDistributeSeatsRepeatPairWhenOnlyOneTable(t *testing.T) {
	t.Parallel()

	participants := []Participant{"A", "B"}
	costs := BuildCostMatrix(participants, History{{{"A", "B"}}}, HarmonicWeighting)
	require.Positive(t, costs.Cost("A", "B"))

	arrangement, err := NewDistributor(nil).Distribute(costs, participants, 3)
	require.NoError(t, err)
	require.Len(t, arrangement, 1)
	assert.ElementsMatch(t, Table{"A", "B"}, arrangement[0])
}

func TestDistributeAvoidsPreviousPairs(t *testing.T) {
	t.Parallel()

	participants := []Participant{"A", "B", "C", "D"}
	costs := BuildCostMatrix(participants, History{{{"A", "B"}, {"C", "D"}}}, HarmonicWeighting)

	for seed := uint64(0); seed < 20; seed++ {
		arrangement, err := NewDistributor(seeded(seed)).Distribute(costs, participants, 2)
		require.NoError(t, err)
		assert.Zero(t, arrangement.RepeatCost(costs), "seed %d: %v", seed, arrangement)
	}
}

func TestDistributeWithIdentityOrder(t *testing.T) {
	t.Parallel()

	participants := []Participant{"A", "B", "C", "D"}
	costs := BuildCostMatrix(participants, History{{{"A", "B"}, {"C", "D"}}}, HarmonicWeighting)

	arrangement, err := NewDistributor(nil).Distribute(costs, participants, 2)
	require.NoError(t, err)
	assert.Equal(t, Arrangement{{"A", "C"}, {"B", "D"}}, arrangement)
}

func TestDistributeIsReproducibleForSeed(t *testing.T) {
	t.Parallel()

	participants := names(17)
	costs := BuildCostMatrix(participants, History{{participants[:6], participants[6:12], participants[12:]}}, HarmonicWeighting)

	first, err := NewDistributor(seeded(42)).Distribute(costs, participants, 4)
	require.NoError(t, err)
	second, err := NewDistributor(seeded(42)).Distribute(costs, participants, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDistributeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	participants := []Participant{"A", "B", "C", "D", "E"}
	original := append([]Participant(nil), participants...)

	_, err := NewDistributor(seeded(7)).Distribute(CostMatrix{}, participants, 2)
	require.NoError(t, err)
	assert.Equal(t, original, participants)
}

func TestDistributeFractionalMaximumOnlyChangesTableCount(t *testing.T) {
	t.Parallel()

	arrangement, err := NewDistributor(nil).Distribute(CostMatrix{}, names(5), 2.5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, tableSizes(arrangement))
}

func TestDistributeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		participants []Participant
		max          float64
		wantErr      error
	}{
		{name: "zero max", participants: []Participant{"A"}, max: 0, wantErr: ErrInvalidMaxPerTable},
		{name: "fraction below one", participants: []Participant{"A"}, max: 0.5, wantErr: ErrInvalidMaxPerTable},
		{name: "negative max", participants: []Participant{"A"}, max: -3, wantErr: ErrInvalidMaxPerTable},
		{name: "no participants", participants: nil, max: 3, wantErr: ErrNoParticipants},
		{name: "duplicate", participants: []Participant{"A", "B", "A"}, max: 3, wantErr: ErrDuplicateParticipant},
		{name: "blank", participants: []Participant{"A", " "}, max: 3, wantErr: ErrInvalidParticipant},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewDistributor(nil).Distribute(CostMatrix{}, tc.participants, tc.max)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPlacementCost(t *testing.T) {
	t.Parallel()

	costs := CostMatrix{}
	costs.Add("A", "B", 1)
	costs.Add("A", "C", 0.5)

	assert.Equal(t, -1.0, PlacementCost("A", Table{}, costs))
	assert.InDelta(t, 1-0.25, PlacementCost("A", Table{"B"}, costs), 1e-9)
	assert.InDelta(t, 1.5-0.5/3, PlacementCost("A", Table{"B", "C"}, costs), 1e-9)
	assert.InDelta(t, -0.25, PlacementCost("A", Table{"D"}, costs), 1e-9)
}

func TestPlacementCostWithoutHistoryOnlyRewardsEmptyTables(t *testing.T) {
	t.Parallel()

	for size := 1; size < 6; size++ {
		table := make(Table, 0, size)
		for _, name := range names(size) {
			table = append(table, name)
		}
		assert.InDelta(t, -0.5/float64(1+size), PlacementCost("New", table, CostMatrix{}), 1e-9)
	}
}
