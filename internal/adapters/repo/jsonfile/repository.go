package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/bnema/coffeetable/internal/ports"
)

const (
	historyFileMode = 0o644
	historyDirMode  = 0o755
	tempFilePattern = ".coffeetable-hist-*.json.tmp"
)

// Repository stores the seating history in a JSON file, newest round last.
type Repository struct {
	path string
	keep int
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HistoryRepository = (*Repository)(nil)

// NewRepository opens the history file at path. Saves keep only the newest
// keep rounds; a non-positive keep retains everything.
func NewRepository(path string, keep int) (*Repository, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{path: absPath, keep: keep, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (domain.History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.History{}, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode history file %s: %w: %w", r.path, domain.ErrMalformedHistory, err)
	}

	history, err := fromSchema(file)
	if err != nil {
		return nil, fmt.Errorf("decode history file %s: %w", r.path, err)
	}

	return history, nil
}

func (r *Repository) Save(ctx context.Context, history domain.History) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(toSchema(history.Trim(r.keep)))
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeFile(data)
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeFile(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(r.path), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false
	return nil
}
