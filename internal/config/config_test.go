package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "5050", c.Server.Port)
	assert.Equal(t, "postgres", c.Database.Driver)
	assert.Equal(t, "gpt-4o", c.AI.Model)
	assert.Equal(t, 512, c.AI.SurveyMaxTokens)
	assert.Equal(t, 256, c.AI.SummaryMaxTokens)
	assert.Equal(t, 60*time.Second, c.AI.Timeout)
	assert.Equal(t, "corrected", c.Scoring.Mode)
	assert.Equal(t, uint(5), c.Server.LoginRateLimit)
	assert.Equal(t, time.Duration(0), c.Insights.RefreshInterval)
}

func TestInitReadsFileAndEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	yaml := `
database:
  driver: sqlite
  path: data/survey.db
scoring:
  mode: legacy
insights:
  refresh_interval: 15m
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("ATTRITION_AI_MODEL", "gpt-4o-mini")

	require.NoError(t, Init(root, zap.NewNop()))

	assert.Equal(t, "sqlite", Conf.Database.Driver)
	assert.Equal(t, filepath.Join(root, "data/survey.db"), Conf.Database.Path)
	assert.Equal(t, "legacy", Conf.Scoring.Mode)
	assert.Equal(t, 15*time.Minute, Conf.Insights.RefreshInterval)
	assert.Equal(t, "gpt-4o-mini", Conf.AI.Model)
	assert.Equal(t, filepath.Join(root, "config", "survey.yaml"), Conf.Survey.FormPath)
}

func TestInitWithoutFileUsesDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, zap.NewNop()))
	assert.Equal(t, "5050", Conf.Server.Port)
	assert.Equal(t, filepath.Join(root, "logs"), Conf.Logging.Directory)
}
