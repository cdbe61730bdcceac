package domain

import (
	"fmt"
	"math"
	"strings"
)

type Participant string

func ValidateParticipants(participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}

	seen := make(map[Participant]struct{}, len(participants))
	for i, participant := range participants {
		if strings.TrimSpace(string(participant)) == "" {
			return fmt.Errorf("%w: blank name at position %d", ErrInvalidParticipant, i+1)
		}
		if _, ok := seen[participant]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, participant)
		}
		seen[participant] = struct{}{}
	}

	return nil
}

func ValidateMaxPerTable(maxPerTable float64) error {
	if math.IsNaN(maxPerTable) || math.IsInf(maxPerTable, 0) || maxPerTable < 1 {
		return fmt.Errorf("%w: %v (must be at least 1)", ErrInvalidMaxPerTable, maxPerTable)
	}

	return nil
}

// TableCount returns how many tables are needed to seat count participants.
// A fractional maximum only changes the number of tables.
func TableCount(count int, maxPerTable float64) int {
	if count <= 0 {
		return 0
	}

	return int(math.Ceil(float64(count) / maxPerTable))
}

func ParseParticipants(names []string) []Participant {
	participants := make([]Participant, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		participants = append(participants, Participant(trimmed))
	}

	return participants
}
