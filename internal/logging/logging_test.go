// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logging

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

	"code.hybscloud.com/pollio/internal/config"
)

func TestNew_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pollcat.log")
	c := config.Default().Log
	c.Level = "debug"
	c.Format = "json"
	c.Outputs = []string{path}

	log, err := New(c)
	require.NoError(t, err)
	log.Debug("copied", zap.Int64("bytes", 42))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "copied", entry["msg"])
	assert.Equal(t, float64(42), entry["bytes"])
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pollcat.log")
	c := config.Default().Log
	c.Level = "warn"
	c.Format = "console"
	c.Outputs = []string{path}

	log, err := New(c)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_RotatedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rot.log")
	c := config.Default().Log
	c.Format = "json"
	c.Outputs = []string{path}
	c.Rotation.Enable = true

	log, err := New(c)
	require.NoError(t, err)
	log.Info("rotated")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotated")
}

func TestNew_BadLevel(t *testing.T) {
	c := config.Default().Log
	c.Level = "loud"
	_, err := New(c)
	require.Error(t, err)
}

func TestEncoder_AutoFollowsTerminal(t *testing.T) {
	// JSON encoders render objects with braces; console encoders do not.
	render := func(format string, tty bool) string {
		buf, err := encoder(format, tty).EncodeEntry(zapcore.Entry{Message: "m"}, nil)
		require.NoError(t, err)
		return buf.String()
	}
	assert.True(t, strings.HasPrefix(render("auto", false), "{"))
	assert.False(t, strings.HasPrefix(render("auto", true), "{"))
	assert.True(t, strings.HasPrefix(render("json", true), "{"))
	assert.False(t, strings.HasPrefix(render("console", false), "{"))
}
