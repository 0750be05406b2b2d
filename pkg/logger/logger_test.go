package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"intern-hub-common/pkg/config"
)

func TestNew_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hub.log")
	log, err := New(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("不应输出")
	log.Info("生成器就绪", zap.Int64("machine_id", 7))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "生成器就绪", entry["msg"])
	assert.Equal(t, float64(7), entry["machine_id"])
}

func TestNew_FileConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hub.log")
	log, err := New(config.LogConfig{Level: "warn", Format: "console", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info("忽略")
	log.Warn("时钟回拨")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "时钟回拨")
	assert.NotContains(t, string(data), "忽略")
}

func TestNew_Stdout(t *testing.T) {
	log, err := New(config.LogConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "verbose", Format: "json"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
