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

	stdout, stderr, err := runRSK(t, binaryPath, home, "session", "new", "--players", "Ana,Beto,Caio", "--name", "smoke")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "created: Ana, Beto, Caio")

	stdout, stderr, err = runRSK(t, binaryPath, home, "play", "--player", "Beto", "--game", "grand-hand", "--ouvert")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "recorded #1 Beto grand-hand +72 B")

	stdout, stderr, err = runRSK(t, binaryPath, home, "session", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Räuberskat: smoke")
	assert.Contains(t, stdout, "+72 B")

	_, err = os.Stat(filepath.Join(home, ".rauberskat", "sessions.toml"))
	require.NoError(t, err)
}

func TestSmokeLogsToStderrAtConfiguredLevel(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runRSK(t, binaryPath, home, "session", "new", "--players", "Ana,Beto,Caio")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "created")
	assert.NotContains(t, stderr, "session created")

	stdout, stderr, err = runRSKWithEnv(t, binaryPath, home, []string{"RSK_LOG_LEVEL=info"}, "session", "new", "--players", "Dora,Enzo,Fabi")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "created")
	assert.Contains(t, stderr, "session created")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "rsk-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rsk")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build rsk binary: %s", string(output))
	return binaryPath
}

func runRSK(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()
	return runRSKWithEnv(t, binaryPath, home, nil, args...)
}

func runRSKWithEnv(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(append(os.Environ(), "HOME="+home), env...)

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
