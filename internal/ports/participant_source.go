package ports

import (
	"context"

	"github.com/bnema/coffeetable/internal/domain"
)

type ParticipantSource interface {
	List(ctx context.Context) ([]domain.Participant, error)
}
