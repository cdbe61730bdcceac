package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"COFFEETABLE_TABLE_MAX", "COFFEETABLE_HISTORY_PATH", "COFFEETABLE_CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, Config{
		MaxPerTable:      3,
		HistoryPath:      "coffeetable_hist.json",
		HistoryKeep:      6,
		HistoryBackend:   BackendJSON,
		ParticipantsPath: "names.txt",
		Weighting:        domain.WeightingHarmonic,
	}, cfg)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("COFFEETABLE_TABLE_MAX", "4")
	t.Setenv("COFFEETABLE_HISTORY_PATH", "/tmp/rounds.json")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.MaxPerTable)
	assert.Equal(t, "/tmp/rounds.json", cfg.HistoryPath)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "coffeetable.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[table]
max = 2.5

[history]
backend = "SQLite"
path = "rounds.db"
keep = 10

[cost]
weighting = "exponential"
`), 0o644))

	v := viper.New()
	v.Set(KeyConfigFile, path)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.MaxPerTable)
	assert.Equal(t, BackendSQLite, cfg.HistoryBackend)
	assert.Equal(t, "rounds.db", cfg.HistoryPath)
	assert.Equal(t, 10, cfg.HistoryKeep)
	assert.Equal(t, domain.WeightingExponential, cfg.Weighting)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.Set(KeyConfigFile, filepath.Join(t.TempDir(), "absent.toml"))

	_, err := Load(v)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadTestModeUsesFixturesAndForcesDryRun(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.Set(KeyTestMode, true)
	v.Set(KeyHistoryPath, "some/dir/hist.json")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.True(t, cfg.TestMode)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, filepath.Join("test", "names.txt"), cfg.ParticipantsPath)
	assert.Equal(t, filepath.Join("test", "hist.json"), cfg.HistoryPath)
}

func TestLoadSeed(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Nil(t, cfg.Seed)

	v := viper.New()
	v.Set(KeySeed, 42)
	cfg, err = Load(v)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr error
		wantMsg string
	}{
		{name: "zero max", key: KeyMaxPerTable, value: 0, wantErr: domain.ErrInvalidMaxPerTable},
		{name: "unknown weighting", key: KeyWeighting, value: "linear", wantErr: domain.ErrUnknownWeighting},
		{name: "unknown backend", key: KeyHistoryBackend, value: "redis", wantMsg: "unsupported history backend"},
		{name: "negative keep", key: KeyHistoryKeep, value: -1, wantMsg: "must not be negative"},
		{name: "empty history path", key: KeyHistoryPath, value: " ", wantMsg: "history path is empty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)

			v := viper.New()
			v.Set(tc.key, tc.value)

			_, err := Load(v)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.ErrorContains(t, err, tc.wantMsg)
			}
		})
	}
}
