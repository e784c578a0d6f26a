package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Config{Difficulty: DefaultDifficulty}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "voting.yaml", "difficulty: 4\ndebug: true\n")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Difficulty)
	assert.True(t, cfg.Debug)
}

func TestLoadJSONConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "voting.json", `{"difficulty": 2}`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Difficulty)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "voting.yaml", "difficulty: 4\n")
	t.Setenv("VOTING_DIFFICULTY", "5")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Difficulty)
}

func TestEnvFileLoaded(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "VOTING_DIFFICULTY=6\n")
	t.Setenv("VOTING_DIFFICULTY", "")
	os.Unsetenv("VOTING_DIFFICULTY")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Difficulty)
}

// Variables already present in the environment win over the .env file.
func TestEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "VOTING_DIFFICULTY=6\n")
	t.Setenv("VOTING_DIFFICULTY", "2")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Difficulty)
}

func TestMissingEnvFileIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.Error(t, err)
}

func TestInvalidDifficulty(t *testing.T) {
	for _, d := range []string{"0", "9", "-3"} {
		t.Setenv("VOTING_DIFFICULTY", d)
		_, err := Load("", "")
		assert.True(t, errors.Is(err, ErrInvalidConfig), "difficulty %s: got %v", d, err)
	}
}
