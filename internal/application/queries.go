package application

import "github.com/bnema/coffeetable/internal/domain"

type SeatResult struct {
	Arrangement  domain.Arrangement
	Participants int
	RepeatCost   float64
	Saved        bool
	Replaced     bool
}
