package ports

import (
	"context"

	"github.com/bnema/coffeetable/internal/domain"
)

type HistoryRepository interface {
	Load(ctx context.Context) (domain.History, error)
	Save(ctx context.Context, history domain.History) error
}
