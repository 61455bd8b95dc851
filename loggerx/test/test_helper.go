package loggerxtest

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/amphora/patentsafe-submit/loggerx"
)

func NewTestLogger(t testing.TB) *loggerx.Logger {
	t.Helper()
	return loggerx.NewNop()
}

// NewTestLoggerWithJSONBuffer logs every level as JSON lines into the returned buffer.
func NewTestLoggerWithJSONBuffer(t testing.TB) (*loggerx.Logger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	return loggerx.New(buf, slog.LevelDebug, loggerx.FormatJSON), buf
}

func NewTestLoggerWithTextBuffer(t testing.TB) (*loggerx.Logger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	return loggerx.New(buf, slog.LevelDebug, loggerx.FormatText), buf
}
