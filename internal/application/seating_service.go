package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/bnema/coffeetable/internal/ports"
	"go.uber.org/zap"
)

type SeatingService struct {
	roster   ports.ParticipantSource
	history  ports.HistoryRepository
	shuffler ports.Shuffler
	logger   *zap.Logger
}

func NewSeatingService(roster ports.ParticipantSource, history ports.HistoryRepository, shuffler ports.Shuffler, logger *zap.Logger) *SeatingService {
	if shuffler == nil {
		shuffler = ports.SystemShuffler{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SeatingService{
		roster:   roster,
		history:  history,
		shuffler: shuffler,
		logger:   logger,
	}
}

func (s *SeatingService) Seat(ctx context.Context, cmd SeatCommand) (SeatResult, error) {
	if err := domain.ValidateMaxPerTable(cmd.MaxPerTable); err != nil {
		return SeatResult{}, err
	}

	participants, err := s.participants(ctx)
	if err != nil {
		return SeatResult{}, err
	}

	history, err := s.history.Load(ctx)
	if err != nil {
		return SeatResult{}, fmt.Errorf("load history: %w", err)
	}
	s.logStaleNames(participants, history)

	costs := domain.BuildCostMatrix(participants, history, cmd.Weighting)
	s.logger.Debug("built cost matrix",
		zap.Int("participants", len(participants)),
		zap.Int("rounds", len(history)),
		zap.Int("pairs", len(costs)),
	)

	arrangement, err := domain.NewDistributor(s.shuffler.Shuffle).Distribute(costs, participants, cmd.MaxPerTable)
	if err != nil {
		return SeatResult{}, fmt.Errorf("distribute participants: %w", err)
	}

	result := SeatResult{
		Arrangement:  arrangement,
		Participants: len(participants),
		RepeatCost:   arrangement.RepeatCost(costs),
	}

	if cmd.DryRun {
		s.logger.Debug("dry run, history left untouched")
		return result, nil
	}

	_, hasLatest := history.Latest()
	result.Replaced = cmd.Retry && hasLatest

	if err := s.history.Save(ctx, history.Record(arrangement, cmd.Retry)); err != nil {
		return SeatResult{}, fmt.Errorf("save history: %w", err)
	}
	result.Saved = true

	s.logger.Info("recorded seating round",
		zap.Int("tables", len(arrangement)),
		zap.Float64("repeat_cost", result.RepeatCost),
		zap.Bool("replaced_latest", result.Replaced),
	)

	return result, nil
}

func (s *SeatingService) History(ctx context.Context) (domain.History, error) {
	history, err := s.history.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	return history, nil
}

// PairCosts ranks the familiarity cost of every current pair that shared a
// table in the retained history.
func (s *SeatingService) PairCosts(ctx context.Context, weight domain.Weighting) ([]domain.PairCost, error) {
	participants, err := s.participants(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.history.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	s.logStaleNames(participants, history)

	return domain.BuildCostMatrix(participants, history, weight).Ranked(), nil
}

func (s *SeatingService) participants(ctx context.Context) ([]domain.Participant, error) {
	participants, err := s.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if err := domain.ValidateParticipants(participants); err != nil {
		return nil, err
	}

	return participants, nil
}

func (s *SeatingService) logStaleNames(participants []domain.Participant, history domain.History) {
	current := make(map[domain.Participant]struct{}, len(participants))
	for _, participant := range participants {
		current[participant] = struct{}{}
	}

	stale := map[string]struct{}{}
	for _, arrangement := range history {
		for _, table := range arrangement {
			for _, person := range table {
				if _, ok := current[person]; !ok {
					stale[string(person)] = struct{}{}
				}
			}
		}
	}
	if len(stale) == 0 {
		return
	}

	names := make([]string, 0, len(stale))
	for name := range stale {
		names = append(names, name)
	}
	sort.Strings(names)
	s.logger.Debug("ignoring history entries for names not on the roster", zap.Strings("names", names))
}
