// Package batch greets every name listed in *.names.yaml files under a
// discovery root, with optional Lua filter and map scripts.
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/flarebyte/salute/internal/config"
	"github.com/flarebyte/salute/internal/greet"
	"github.com/flarebyte/salute/internal/logger"
	"github.com/flarebyte/salute/internal/render"
	"github.com/go-kratos/kratos/v2/log"
)

// entry is one name at position index of a name file.
type entry struct {
	locator string
	index   int
	name    string
}

type parseResult struct {
	names []string
	err   error
}

type entryResult struct {
	greeting *render.Greeting
	err      *render.Error
}

// Run executes the batch pipeline. In fail-fast mode the lowest-sorted
// failure is returned as the error; in keep-going mode failures are reported
// in the envelope and Run only fails on discovery of the root itself.
func Run(ctx context.Context, cfg config.Batch, l log.Logger) (render.Envelope, error) {
	if l == nil {
		l = logger.Nop()
	}
	h := log.NewHelper(l)
	keepGoing := cfg.ErrorMode == config.ModeKeepGoing

	absRoot, err := filepath.Abs(cfg.Discovery.Root)
	if err != nil {
		return render.Envelope{}, err
	}
	locators, failures, err := findNameFiles(absRoot, cfg.Discovery.NoGitignore, keepGoing)
	if err != nil {
		return render.Envelope{}, err
	}
	h.Debugf("discovered %d name files under %s", len(locators), cfg.Discovery.Root)

	workers := workerCount(cfg.Workers)
	parsed := runIndexedParallel(len(locators), workers, func(i int) parseResult {
		names, err := parseNameFile(absRoot, locators[i], defaultMaxNameBytes)
		return parseResult{names: names, err: err}
	})
	var entries []entry
	for i, pr := range parsed {
		if pr.err != nil {
			failures = append(failures, stageError(parseStage, locators[i], pr.err.Error()))
			continue
		}
		for j, n := range pr.names {
			entries = append(entries, entry{locator: locators[i], index: j, name: n})
		}
	}
	if err := ctx.Err(); err != nil {
		return render.Envelope{}, err
	}

	results := runIndexedParallel(len(entries), workers, func(i int) entryResult {
		return processEntry(ctx, cfg, entries[i])
	})
	if err := ctx.Err(); err != nil {
		return render.Envelope{}, err
	}

	env := render.Envelope{Greetings: make([]render.Greeting, 0, len(results))}
	for _, r := range results {
		if r.err != nil {
			failures = append(failures, *r.err)
			continue
		}
		if r.greeting != nil {
			env.Greetings = append(env.Greetings, *r.greeting)
		}
	}
	sortErrors(failures)
	if len(failures) > 0 && !keepGoing {
		f := failures[0]
		return render.Envelope{}, fmt.Errorf("%s: %s: %s", f.Stage, f.Locator, f.Message)
	}
	env.Errors = failures
	h.Debugf("greeted %d names, %d errors", len(env.Greetings), len(env.Errors))
	return env, nil
}

func processEntry(ctx context.Context, cfg config.Batch, e entry) entryResult {
	keep, err := applyFilter(ctx, cfg.Lua, cfg.Filter.Inline, e)
	if err != nil {
		return entryResult{err: entryError(luaFilterStage, e, err)}
	}
	if !keep {
		return entryResult{}
	}
	name, err := applyMap(ctx, cfg.Lua, cfg.Map.Inline, e)
	if err != nil {
		return entryResult{err: entryError(luaMapStage, e, err)}
	}
	return entryResult{greeting: &render.Greeting{
		Locator: e.locator,
		Name:    name,
		Message: greet.Greet(name),
	}}
}

func entryError(stage string, e entry, err error) *render.Error {
	re := stageError(stage, e.locator, fmt.Sprintf("names[%d]: %v", e.index, err))
	return &re
}
