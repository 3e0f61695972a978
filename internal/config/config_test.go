package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("BOOQ_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BOOQ_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "BOOQ_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "BOOQ_TEST_MISSING", "default"))
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(Flags{
		DataPath: tmpDir,
		EnvFile:  filepath.Join(tmpDir, "nonexistent.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.AI.GeminiAPIKey)
}

func TestLoad_DataPaths(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(Flags{
		DataPath: tmpDir,
		EnvFile:  filepath.Join(tmpDir, "nonexistent.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(tmpDir, "search"), cfg.SearchPath())
}

func TestLoad_EnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, "test.env")

	content := "# comment line\n" +
		"SERVER_PORT=9090\n" +
		"LOG_LEVEL=\"debug\"\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Env vars set by the .env file stick around for the rest of the
	// process; clear them when the test finishes.
	t.Cleanup(func() {
		_ = os.Unsetenv("SERVER_PORT")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(Flags{
		DataPath: tmpDir,
		EnvFile:  envFile,
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load(Flags{
		DataPath: tmpDir,
		Port:     "7001",
		EnvFile:  filepath.Join(tmpDir, "nonexistent.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(Flags{
		DataPath: tmpDir,
		Env:      "testing",
		EnvFile:  filepath.Join(tmpDir, "nonexistent.env"),
	})
	assert.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(Flags{
		DataPath: tmpDir,
		LogLevel: "verbose",
		EnvFile:  filepath.Join(tmpDir, "nonexistent.env"),
	})
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(Flags{
		DataPath:    tmpDir,
		ReadTimeout: "fifteen seconds",
		EnvFile:     filepath.Join(tmpDir, "nonexistent.env"),
	})
	assert.Error(t, err)
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/booq-data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "booq-data"), expanded)
}
