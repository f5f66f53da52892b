package obs

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// NewLogger builds a zap logger. "json" selects production encoding;
// anything else uses the human-readable development encoder.
func NewLogger(format string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch format {
	case "json":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	return l, nil
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// L returns the process-wide logger. It is a no-op logger until SetLogger is called.
func L() *zap.Logger { return current.Load() }
