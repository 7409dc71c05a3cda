package logging

import (
	"testing"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"trace", logrus.TraceLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_Stderr(t *testing.T) {
	logger, closeLog, err := New(config.LogConfig{Level: "debug", JSON: true})
	require.NoError(t, err)
	defer closeLog()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestNew_File(t *testing.T) {
	// xdg caches its base directories; reload after the env is restored too.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	logger, closeLog, err := New(config.LogConfig{File: true})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closeLog())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
