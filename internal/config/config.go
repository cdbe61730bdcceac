package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "coffeetable"
	configType = "toml"
	envPrefix  = "COFFEETABLE"

	KeyConfigFile       = "config"
	KeyMaxPerTable      = "table.max"
	KeyHistoryPath      = "history.path"
	KeyHistoryKeep      = "history.keep"
	KeyHistoryBackend   = "history.backend"
	KeyParticipantsPath = "participants.path"
	KeyWeighting        = "cost.weighting"
	KeyDryRun           = "seat.dry_run"
	KeyRetry            = "seat.retry"
	KeySeed             = "seat.seed"
	KeyTestMode         = "test.enabled"
	KeyTestDir          = "test.dir"
	KeyTestParticipants = "test.participants"
	KeyVerbose          = "log.verbose"

	DefaultMaxPerTable      = 3.0
	DefaultHistoryPath      = "coffeetable_hist.json"
	DefaultParticipantsPath = "names.txt"
	DefaultTestDir          = "test"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	MaxPerTable      float64
	HistoryPath      string
	HistoryKeep      int
	HistoryBackend   string
	ParticipantsPath string
	Weighting        string
	DryRun           bool
	Retry            bool
	// Seed is nil when no seed was configured.
	Seed     *uint64
	TestMode bool
	Verbose  bool
}

// Load resolves the configuration from defaults, an optional coffeetable.toml,
// COFFEETABLE_* environment variables and any flags bound to cfg.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	applyDefaults(cfg)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := readConfigFile(cfg); err != nil {
		return Config{}, err
	}

	loaded := Config{
		MaxPerTable:      cfg.GetFloat64(KeyMaxPerTable),
		HistoryPath:      cfg.GetString(KeyHistoryPath),
		HistoryKeep:      cfg.GetInt(KeyHistoryKeep),
		HistoryBackend:   strings.ToLower(strings.TrimSpace(cfg.GetString(KeyHistoryBackend))),
		ParticipantsPath: cfg.GetString(KeyParticipantsPath),
		Weighting:        cfg.GetString(KeyWeighting),
		DryRun:           cfg.GetBool(KeyDryRun),
		Retry:            cfg.GetBool(KeyRetry),
		TestMode:         cfg.GetBool(KeyTestMode),
		Verbose:          cfg.GetBool(KeyVerbose),
	}
	if cfg.IsSet(KeySeed) {
		seed := cfg.GetUint64(KeySeed)
		loaded.Seed = &seed
	}

	if loaded.TestMode {
		testDir := cfg.GetString(KeyTestDir)
		loaded.DryRun = true
		loaded.ParticipantsPath = filepath.Join(testDir, cfg.GetString(KeyTestParticipants))
		loaded.HistoryPath = filepath.Join(testDir, filepath.Base(loaded.HistoryPath))
	}

	if err := loaded.Validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) Validate() error {
	if err := domain.ValidateMaxPerTable(c.MaxPerTable); err != nil {
		return err
	}
	if strings.TrimSpace(c.HistoryPath) == "" {
		return errors.New("history path is empty")
	}
	if strings.TrimSpace(c.ParticipantsPath) == "" {
		return errors.New("participants path is empty")
	}
	if c.HistoryKeep < 0 {
		return fmt.Errorf("history keep must not be negative, got %d", c.HistoryKeep)
	}
	switch c.HistoryBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unsupported history backend %q", c.HistoryBackend)
	}
	if _, err := domain.ParseWeighting(c.Weighting); err != nil {
		return err
	}

	return nil
}

func applyDefaults(cfg *viper.Viper) {
	cfg.SetDefault(KeyMaxPerTable, DefaultMaxPerTable)
	cfg.SetDefault(KeyHistoryPath, DefaultHistoryPath)
	cfg.SetDefault(KeyHistoryKeep, domain.DefaultHistoryKeep)
	cfg.SetDefault(KeyHistoryBackend, BackendJSON)
	cfg.SetDefault(KeyParticipantsPath, DefaultParticipantsPath)
	cfg.SetDefault(KeyWeighting, domain.WeightingHarmonic)
	cfg.SetDefault(KeyTestDir, DefaultTestDir)
	cfg.SetDefault(KeyTestParticipants, DefaultParticipantsPath)
}

func readConfigFile(cfg *viper.Viper) error {
	if path := cfg.GetString(KeyConfigFile); path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(homeDir, ".config", configName))
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}
