// Package logger builds the kratos logger used for diagnostics on stderr.
// Command results never go through it.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/flarebyte/salute/internal/buildinfo"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

const (
	// LevelFlag is the persistent root flag selecting the log level.
	LevelFlag = "log-level"
	// DefaultLevel applies when the flag is absent.
	DefaultLevel = "info"
)

var levels = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"fatal": log.LevelFatal,
}

// New returns a key/value logger writing to w that drops entries below level.
func New(w io.Writer, level string) (log.Logger, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	base := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service", buildinfo.Name,
	)
	return log.NewFilter(base, log.FilterLevel(lvl)), nil
}

// Nop returns a logger that discards everything.
func Nop() log.Logger {
	return log.NewStdLogger(io.Discard)
}

// ForCommand builds a stderr logger for cmd using the inherited --log-level.
func ForCommand(cmd *cobra.Command) (log.Logger, error) {
	level := DefaultLevel
	if f := cmd.Flags().Lookup(LevelFlag); f != nil {
		level = f.Value.String()
	}
	return New(cmd.ErrOrStderr(), level)
}
