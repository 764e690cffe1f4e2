package config

import (
	"fmt"
)

// Error modes for batch runs.
const (
	ModeFailFast  = "fail-fast"
	ModeKeepGoing = "keep-going"
)

const defaultLuaTimeoutMs = 2000

var outputFormats = []string{"json", "lines", "yaml", "text"}

// Batch is the validated batch configuration.
type Batch struct {
	ConfigVersion string
	Discovery     Discovery
	Filter        Script
	Map           Script
	ErrorMode     string
	Workers       int
	Lua           Lua
	Output        Output
}

// Discovery controls where name files are searched.
type Discovery struct {
	Root        string
	NoGitignore bool
}

// Script holds an optional inline Lua snippet.
type Script struct {
	Inline string
}

// Lua holds sandbox settings shared by filter and map scripts.
type Lua struct {
	TimeoutMs int
	Libs      LuaLibs
}

// LuaLibs is the allowlist of standard Lua libraries opened in the sandbox.
type LuaLibs struct {
	Base   bool
	Table  bool
	String bool
	Math   bool
}

// Output selects how batch results are written.
type Output struct {
	Format string
	Pretty bool
}

// DefaultBatch returns the configuration used for every field the file omits.
func DefaultBatch() Batch {
	return Batch{
		ConfigVersion: CurrentConfigVersion,
		Discovery:     Discovery{Root: "."},
		ErrorMode:     ModeFailFast,
		Lua: Lua{
			TimeoutMs: defaultLuaTimeoutMs,
			Libs:      LuaLibs{Base: true, Table: true, String: true, Math: true},
		},
		Output: Output{Format: "json"},
	}
}

// LoadBatch loads a CUE batch config and validates it.
// Required fields:
//   - configVersion: string
func LoadBatch(path string) (Batch, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Batch{}, err
	}
	b := DefaultBatch()
	if err := requireStringField(v, "configVersion", &b.ConfigVersion); err != nil {
		return Batch{}, err
	}
	if !IsSupportedConfigVersion(b.ConfigVersion) {
		return Batch{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", b.ConfigVersion, SupportedConfigVersionsCSV())
	}
	parsers := []func(*sectionReader, *Batch){
		parseDiscoverySection,
		parseScriptSections,
		parseErrorsSection,
		parseLuaSection,
		parseOutputSection,
	}
	r := &sectionReader{root: v}
	for _, p := range parsers {
		p(r, &b)
	}
	if r.err != nil {
		return Batch{}, r.err
	}
	if err := validateBatch(b); err != nil {
		return Batch{}, err
	}
	return b, nil
}

func validateBatch(b Batch) error {
	if b.ErrorMode != ModeFailFast && b.ErrorMode != ModeKeepGoing {
		return fmt.Errorf("invalid errors.mode: %s", b.ErrorMode)
	}
	if b.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", b.Workers)
	}
	if b.Lua.TimeoutMs < 0 {
		return fmt.Errorf("invalid lua.timeoutMs: %d", b.Lua.TimeoutMs)
	}
	for _, f := range outputFormats {
		if b.Output.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output.format: %s", b.Output.Format)
}
