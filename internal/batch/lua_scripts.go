package batch

import (
	"context"
	"errors"

	"github.com/flarebyte/salute/internal/config"
)

const (
	luaFilterStage = "lua-filter"
	luaMapStage    = "lua-map"
)

var errMapNotString = errors.New("map must return a string")

func scriptGlobals(e entry) map[string]any {
	return map[string]any{
		"name":    e.name,
		"locator": e.locator,
		"index":   e.index + 1,
	}
}

// applyFilter reports whether e survives the predicate. An empty predicate
// keeps everything.
func applyFilter(ctx context.Context, cfg config.Lua, code string, e entry) (bool, error) {
	if code == "" {
		return true, nil
	}
	ret, violation, err := runLuaScript(ctx, cfg, seedKeyFor(e.locator, e.index), scriptGlobals(e), wrapExpression(code))
	if err != nil {
		return false, err
	}
	if violation != "" {
		return false, errors.New(violation)
	}
	keep, _ := ret.(bool)
	return keep, nil
}

// applyMap returns the transformed name. An empty script keeps the name.
func applyMap(ctx context.Context, cfg config.Lua, code string, e entry) (string, error) {
	if code == "" {
		return e.name, nil
	}
	ret, violation, err := runLuaScript(ctx, cfg, seedKeyFor(e.locator, e.index), scriptGlobals(e), wrapExpression(code))
	if err != nil {
		return "", err
	}
	if violation != "" {
		return "", errors.New(violation)
	}
	s, ok := ret.(string)
	if !ok {
		return "", errMapNotString
	}
	return s, nil
}
