package batch

import (
	"sort"
	"strings"

	"github.com/flarebyte/salute/internal/render"
)

func sanitizeMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

func stageError(stage, locator, msg string) render.Error {
	return render.Error{Stage: stage, Locator: locator, Message: sanitizeMessage(msg)}
}

// sortErrors orders errors by (stage, locator, message).
func sortErrors(errs []render.Error) {
	sort.Slice(errs, func(i, j int) bool {
		ei, ej := errs[i], errs[j]
		if ei.Stage != ej.Stage {
			return ei.Stage < ej.Stage
		}
		if ei.Locator != ej.Locator {
			return ei.Locator < ej.Locator
		}
		return ei.Message < ej.Message
	})
}
