package application

import "github.com/bnema/coffeetable/internal/domain"

type SeatCommand struct {
	MaxPerTable float64
	Weighting   domain.Weighting
	DryRun      bool
	// Retry overwrites the newest round instead of recording a new one.
	Retry bool
}
