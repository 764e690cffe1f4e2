package batch

import (
	"github.com/flarebyte/salute/internal/config"
	"github.com/flarebyte/salute/internal/render"
)

const exitCodeExecErr = 1

type batchExitError struct {
	code int
	msg  string
}

func (e batchExitError) Error() string { return e.msg }
func (e batchExitError) ExitCode() int { return e.code }

// evaluateBatchExit fails a keep-going run that reported errors and greeted
// nobody. Fail-fast runs never get here with errors.
func evaluateBatchExit(cfg config.Batch, env render.Envelope) error {
	if cfg.ErrorMode != config.ModeKeepGoing {
		return nil
	}
	if len(env.Errors) == 0 || len(env.Greetings) > 0 {
		return nil
	}
	return batchExitError{code: exitCodeExecErr, msg: "keep-going: no successful greetings"}
}
