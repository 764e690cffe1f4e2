package batch

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/flarebyte/salute/internal/config"
	lua "github.com/yuin/gopher-lua"
)

const sandboxTimeoutViolation = "sandbox timeout"

func newSandboxLuaState(seedKey string, cfg config.Lua) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	if cfg.Libs.Base {
		openLib(lua.BaseLibName, lua.OpenBase)
	}
	if cfg.Libs.String {
		openLib(lua.StringLibName, lua.OpenString)
	}
	if cfg.Libs.Table {
		openLib(lua.TabLibName, lua.OpenTable)
	}
	if cfg.Libs.Math {
		openLib(lua.MathLibName, lua.OpenMath)
		installDeterministicRandom(L, deterministicSeed(seedKey))
	}
	return L
}

func deterministicSeed(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// installDeterministicRandom replaces math.random with a generator seeded
// per entry and turns math.randomseed into a no-op.
func installDeterministicRandom(L *lua.LState, seed int64) {
	mathTbl, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable)
	if !ok || mathTbl == nil {
		return
	}
	rng := rand.New(rand.NewSource(seed))
	mathTbl.RawSetString("random", L.NewFunction(func(L *lua.LState) int {
		switch L.GetTop() {
		case 0:
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		case 1:
			hi := L.CheckInt(1)
			if hi < 1 {
				L.ArgError(1, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(hi) + 1))
			return 1
		default:
			lo := L.CheckInt(1)
			hi := L.CheckInt(2)
			if hi < lo {
				L.ArgError(2, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(hi-lo+1) + lo))
			return 1
		}
	}))
	mathTbl.RawSetString("randomseed", L.NewFunction(func(L *lua.LState) int {
		return 0
	}))
}

var returnKeyword = regexp.MustCompile(`\breturn\b`)

// wrapExpression turns a bare expression into a returning chunk.
func wrapExpression(code string) string {
	if returnKeyword.MatchString(code) {
		return code
	}
	return "return (" + code + ")"
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "deadline")
}

// runLuaScript evaluates code with globals set and returns its first result
// converted to Go. A sandbox violation is reported in the second return value.
func runLuaScript(ctx context.Context, cfg config.Lua, seedKey string, globals map[string]any, code string) (any, string, error) {
	L := newSandboxLuaState(seedKey, cfg)
	defer L.Close()

	if cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}
	L.SetContext(ctx)

	for k, v := range globals {
		L.SetGlobal(k, toLValue(v))
	}

	fn, err := L.LoadString(code)
	if err != nil {
		return nil, "", err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return nil, sandboxTimeoutViolation, nil
		}
		return nil, "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return fromLValue(ret), "", nil
}

func seedKeyFor(locator string, index int) string {
	return locator + "\x00" + strconv.Itoa(index)
}

func toLValue(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(float64(x))
	case float64:
		return lua.LNumber(x)
	default:
		return lua.LNil
	}
}

func fromLValue(v lua.LValue) any {
	switch v.Type() {
	case lua.LTBool:
		return lua.LVAsBool(v)
	case lua.LTNumber:
		return float64(v.(lua.LNumber))
	case lua.LTString:
		return v.String()
	default:
		return nil
	}
}
