package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	globalLogger log.Logger
	loggerInit   sync.Once
	globalLevel  = "info"
)

// SetLevel changes the level GlobalLogger is built with. It only has an
// effect before the first call to GlobalLogger.
func SetLevel(lvl string) {
	globalLevel = lvl
}

func GlobalLogger() log.Logger {
	loggerInit.Do(func() {
		logger, err := NewLogger(os.Stderr, globalLevel)
		if err != nil {
			logger, _ = NewLogger(os.Stderr, "info")
			_ = level.Warn(logger).Log("msg", "falling back to info level", "err", err)
		}
		globalLogger = logger
	})
	return globalLogger
}

// NewLogger writes JSON lines to w, dropping anything below lvl
// (debug, info, warn, error or none).
func NewLogger(w io.Writer, lvl string) (log.Logger, error) {
	option, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewJSONLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, option)
	logger = log.With(logger, "caller", log.DefaultCaller, "ts", log.DefaultTimestampUTC)
	return logger, nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("unknown log level %q", lvl)
}
