package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func requireStringField(v cue.Value, name string, dst *string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return nil
}

// sectionReader decodes optional fields and keeps the first failure.
type sectionReader struct {
	root cue.Value
	err  error
}

func (r *sectionReader) lookup(path string, kind cue.Kind, kindName string) (cue.Value, bool) {
	if r.err != nil {
		return cue.Value{}, false
	}
	f := r.root.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return cue.Value{}, false
	}
	if f.Kind() != kind {
		r.err = fmt.Errorf("invalid type for field: %s (expected %s)", path, kindName)
		return cue.Value{}, false
	}
	return f, true
}

func (r *sectionReader) decode(path string, f cue.Value, dst any) {
	if err := f.Decode(dst); err != nil {
		r.err = fmt.Errorf("invalid value for %s: %v", path, err)
	}
}

func (r *sectionReader) optionalString(path string, dst *string) {
	if f, ok := r.lookup(path, cue.StringKind, "string"); ok {
		r.decode(path, f, dst)
	}
}

func (r *sectionReader) optionalBool(path string, dst *bool) {
	if f, ok := r.lookup(path, cue.BoolKind, "bool"); ok {
		r.decode(path, f, dst)
	}
}

func (r *sectionReader) optionalInt(path string, dst *int) {
	if f, ok := r.lookup(path, cue.IntKind, "int"); ok {
		r.decode(path, f, dst)
	}
}
