package runtime

import (
	"io"

	"github.com/oarkflow/log"
)

// NewLogger returns a logger writing to w at the named level ("debug",
// "info", "warn", "error"). Unknown names fall back to info.
func NewLogger(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return &log.Logger{
		Level:  log.ParseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}
