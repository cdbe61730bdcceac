package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/coffeetable/internal/adapters/render/tables"
	"github.com/bnema/coffeetable/internal/adapters/repo/jsonfile"
	"github.com/bnema/coffeetable/internal/adapters/repo/sqlite"
	"github.com/bnema/coffeetable/internal/adapters/roster"
	"github.com/bnema/coffeetable/internal/application"
	"github.com/bnema/coffeetable/internal/config"
	"github.com/bnema/coffeetable/internal/domain"
	"github.com/bnema/coffeetable/internal/ports"
	"go.uber.org/zap"
)

const sqliteExt = ".db"

type app struct {
	cfg         config.Config
	logger      *zap.Logger
	service     *application.SeatingService
	weighting   domain.Weighting
	historyPath string
	closers     []io.Closer

	renderArrangement func(domain.Arrangement, tables.RenderOptions) (string, error)
	renderHistory     func(domain.History) (string, error)
	renderPairs       func([]domain.PairCost) (string, error)
}

func (a *app) wire(cfg config.Config, logger *zap.Logger) error {
	a.cfg = cfg
	a.logger = logger
	a.renderArrangement = tables.RenderArrangement
	a.renderHistory = tables.RenderHistory
	a.renderPairs = tables.RenderPairs

	weighting, err := domain.ParseWeighting(cfg.Weighting)
	if err != nil {
		return err
	}
	a.weighting = weighting

	source, err := roster.NewFileSource(cfg.ParticipantsPath)
	if err != nil {
		return fmt.Errorf("wire participant roster: %w", err)
	}

	history, err := a.wireHistory(cfg)
	if err != nil {
		return err
	}

	var shuffler ports.Shuffler = ports.SystemShuffler{}
	if cfg.Seed != nil {
		shuffler = ports.NewSeededShuffler(*cfg.Seed)
	}

	a.service = application.NewSeatingService(source, history, shuffler, logger)

	logger.Debug("wired seating service",
		zap.String("participants", source.Path()),
		zap.String("history", a.historyPath),
		zap.String("backend", cfg.HistoryBackend),
		zap.String("weighting", cfg.Weighting),
		zap.Bool("test_mode", cfg.TestMode),
	)

	return nil
}

func (a *app) wireHistory(cfg config.Config) (ports.HistoryRepository, error) {
	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		path := sqlitePath(cfg.HistoryPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}

		db, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("wire sqlite history: %w", err)
		}
		a.closers = append(a.closers, db)
		a.historyPath = path

		return sqlite.NewHistoryRepository(db, cfg.HistoryKeep), nil
	default:
		repo, err := jsonfile.NewRepository(cfg.HistoryPath, cfg.HistoryKeep)
		if err != nil {
			return nil, fmt.Errorf("wire json history: %w", err)
		}
		a.historyPath = repo.Path()

		return repo, nil
	}
}

func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil

	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// sqlitePath swaps a .json history path for its .db sibling so the default
// history flag works with either backend.
func sqlitePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + sqliteExt
	}
	return path
}
