package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 900, cfg.Viewport.Width)
	assert.Equal(t, 700, cfg.Viewport.Height)
	assert.True(t, cfg.Script.Enabled)
	assert.Equal(t, 1000, cfg.Script.MaxTimerRuns)
	assert.Equal(t, 1000000, cfg.Script.MaxSteps)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "browser", cfg.Logger.ServiceName)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "browser.yaml")
	yaml := `
viewport:
  width: 640
style:
  user_css: "p { color: red; }"
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("BROWSER_VIEWPORT_HEIGHT", "480")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Viewport.Width)
	assert.Equal(t, 480, cfg.Viewport.Height)
	assert.Equal(t, "p { color: red; }", cfg.Style.UserCSS)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Script.Enabled, "unset keys keep their defaults")
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Viewport.Width)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Viewport.Width = 0
	assert.ErrorContains(t, bad.Validate(), "viewport")

	bad = *cfg
	bad.Script.MaxTimerRuns = -1
	assert.ErrorContains(t, bad.Validate(), "max_timer_runs")
}

func TestUserStylesheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.css")
	require.NoError(t, os.WriteFile(path, []byte("h1 { color: blue; }"), 0o644))

	cfg := Default()
	cfg.Style.UserCSS = "p { color: red; }"
	cfg.Style.UserCSSFile = path
	css, err := cfg.UserStylesheet()
	require.NoError(t, err)
	assert.Equal(t, "p { color: red; }\nh1 { color: blue; }", css)

	cfg.Style.UserCSSFile = filepath.Join(t.TempDir(), "missing.css")
	_, err = cfg.UserStylesheet()
	assert.Error(t, err)
}
