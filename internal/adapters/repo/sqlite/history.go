package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/bnema/coffeetable/internal/ports"
)

// HistoryRepository stores rounds ordered by position, oldest first.
type HistoryRepository struct {
	db   *DB
	keep int
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *DB, keep int) *HistoryRepository {
	return &HistoryRepository{db: db, keep: keep}
}

func (r *HistoryRepository) Load(ctx context.Context) (domain.History, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT position, table_count FROM rounds ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}

	history := domain.History{}
	index := map[int64]int{}
	for rows.Next() {
		var position int64
		var tableCount int
		if err := rows.Scan(&position, &tableCount); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan round: %w", err)
		}
		arrangement := make(domain.Arrangement, tableCount)
		for i := range arrangement {
			arrangement[i] = domain.Table{}
		}
		index[position] = len(history)
		history = append(history, arrangement)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return nil, fmt.Errorf("read rounds: %w", err)
	}

	seats, err := r.db.QueryContext(ctx, `
		SELECT round_position, table_index, participant
		FROM seats
		ORDER BY round_position, table_index, seat_index
	`)
	if err != nil {
		return nil, fmt.Errorf("query seats: %w", err)
	}
	defer seats.Close()

	for seats.Next() {
		var position int64
		var tableIndex int
		var participant string
		if err := seats.Scan(&position, &tableIndex, &participant); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}

		round, ok := index[position]
		if !ok || tableIndex < 0 || tableIndex >= len(history[round]) {
			return nil, fmt.Errorf("%w: seat for round %d table %d", domain.ErrMalformedHistory, position, tableIndex)
		}
		history[round][tableIndex] = append(history[round][tableIndex], domain.Participant(participant))
	}
	if err := seats.Err(); err != nil {
		return nil, fmt.Errorf("read seats: %w", err)
	}

	return history, nil
}

// Save replaces the stored rounds with the newest rounds of history.
func (r *HistoryRepository) Save(ctx context.Context, history domain.History) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				err = errors.Join(err, rollbackErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM seats`); err != nil {
		return fmt.Errorf("clear seats: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rounds`); err != nil {
		return fmt.Errorf("clear rounds: %w", err)
	}

	for position, arrangement := range history.Trim(r.keep) {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO rounds (position, table_count) VALUES (?, ?)`,
			position, len(arrangement),
		); err != nil {
			return fmt.Errorf("insert round %d: %w", position, err)
		}

		for tableIndex, table := range arrangement {
			for seatIndex, participant := range table {
				if _, err = tx.ExecContext(ctx,
					`INSERT INTO seats (round_position, table_index, seat_index, participant) VALUES (?, ?, ?, ?)`,
					position, tableIndex, seatIndex, string(participant),
				); err != nil {
					return fmt.Errorf("insert seat: %w", err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}

	return nil
}
