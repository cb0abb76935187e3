package logger_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxevent"

	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), logger.GetLogLevel()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		logger.SetLogLevel([]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}[prevLevel])
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
		ok   bool
	}{
		{"DEBUG", logger.LevelDebug, true},
		{" info ", logger.LevelInfo, true},
		{"warn", logger.LevelWarn, true},
		{"Error", logger.LevelError, true},
		{"FATAL", logger.LevelFatal, true},
		{"verbose", logger.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	logger.SetLogLevel("WARN")
	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)
	logger.Warnf("warn %d", 3)
	logger.Errorf("error %d", 4)

	assert.Equal(t, "[WARN] warn 3\n[ERROR] error 4\n", buf.String())
	assert.False(t, logger.IsDebugEnabled())

	logger.SetLogLevel("debug")
	assert.True(t, logger.IsDebugEnabled())
}

func TestSetLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	captureOutput(t)

	logger.SetLogLevel("loud")
	assert.Equal(t, logger.LevelInfo, logger.GetLogLevel())
}

func TestFxLoggerAdapter(t *testing.T) {
	buf := captureOutput(t)
	logger.SetLogLevel("INFO")
	l := logger.NewFxLoggerAdapter()

	l.LogEvent(&fxevent.OnStartExecuting{FunctionName: "github.com/tigerroll/pipelines/pkg/web/server.RegisterServerLifecycle.func1"})
	assert.Empty(t, buf.String())

	l.LogEvent(&fxevent.OnStartExecuted{FunctionName: "server.RegisterServerLifecycle.func1", Err: errors.New("bind failed")})
	assert.Contains(t, buf.String(), "[ERROR] Component failed to start")
	assert.Contains(t, buf.String(), "bind failed")
}
