package artfx

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerVal stores the active *zap.Logger. Accessed atomically so SetLogger can race
// with effects running on other goroutines.
var loggerVal atomic.Value

func init() {
	loggerVal.Store(zap.NewNop())
}

// SetLogger configures the logger used by the package. By default nothing is logged.
// Pass nil to restore the silent default.
//
// Effects log their decisions at Debug level and unknown styles at Warn level.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerVal.Store(l)
}

// Logger returns the current package logger.
func Logger() *zap.Logger {
	return loggerVal.Load().(*zap.Logger)
}
