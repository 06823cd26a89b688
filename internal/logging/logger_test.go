package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"attrition-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	dir := t.TempDir()
	log, err := Init(config.LoggingConfig{Directory: dir, MaxSize: 1, Level: "info"})
	require.NoError(t, err)

	log.Info("hello")
	log.Warn("careful")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "-info.log")
	assert.Contains(t, joined, "-warn.log")
	assert.NotContains(t, joined, "-debug.log")

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+"-info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.NotContains(t, string(data), "careful")
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, logger.Info, ParseGormLevel("INFO"))
	assert.Equal(t, logger.Warn, ParseGormLevel("bogus"))
}

func TestGormTraceLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormZapLogger(zap.New(core), "info")
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), fc, nil)
	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

	all := logs.All()
	require.Len(t, all, 4)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, zapcore.InfoLevel, all[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, all[2].Level)
	assert.Equal(t, "GORM Trace [SLOW]", all[3].Message)

	silent := l.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Len(t, logs.All(), 4)
}
