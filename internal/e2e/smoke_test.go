package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeRosterFixture(home))

	stdout, stderr, err := runCoffeetable(t, binaryPath, home, "seat", "--max", "2", "--seed", "1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "participants: 4  tables: 2")
	assert.FileExists(t, filepath.Join(home, "coffeetable_hist.json"))

	stdout, stderr, err = runCoffeetable(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Round 1 (latest)")

	stdout, stderr, err = runCoffeetable(t, binaryPath, home, "pairs")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "pairs: 2")
}

func TestSmokeCorruptHistoryExitsNonZero(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, os.WriteFile(filepath.Join(home, "coffeetable_hist.json"), []byte("[[1]]"), 0o644))

	_, stderr, err := runCoffeetable(t, binaryPath, home, "seat")
	require.Error(t, err)
	assert.Contains(t, stderr, "malformed history")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "coffeetable-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/coffeetable")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build coffeetable binary: %s", string(output))
	return binaryPath
}

// runCoffeetable runs the binary with home as both HOME and working
// directory so the default roster and history paths resolve inside it.
func runCoffeetable(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeRosterFixture(home string) error {
	roster := "# coffee crew\nAnn\nBob\n\nCid\nDee\n"
	return os.WriteFile(filepath.Join(home, "names.txt"), []byte(roster), 0o644)
}
