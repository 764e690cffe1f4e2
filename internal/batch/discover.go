package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flarebyte/salute/internal/render"
	gitgitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	discoverStage  = "discover-name-files"
	nameFileSuffix = ".names.yaml"
)

// ignoreSet caches parsed .gitignore patterns per directory for one walk.
type ignoreSet struct {
	absRoot string
	byDir   map[string][]gitgitignore.Pattern
}

func newIgnoreSet(absRoot string) *ignoreSet {
	return &ignoreSet{absRoot: absRoot, byDir: map[string][]gitgitignore.Pattern{}}
}

// patternsFor reads the .gitignore in rel (a slash path, "." for root).
func (s *ignoreSet) patternsFor(rel string) []gitgitignore.Pattern {
	if ps, ok := s.byDir[rel]; ok {
		return ps
	}
	var ps []gitgitignore.Pattern
	b, err := os.ReadFile(filepath.Join(s.absRoot, filepath.FromSlash(rel), ".gitignore"))
	if err == nil {
		var base []string
		if rel != "." {
			base = strings.Split(rel, "/")
		}
		for _, line := range strings.Split(string(b), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ps = append(ps, gitgitignore.ParsePattern(line, base))
		}
	}
	s.byDir[rel] = ps
	return ps
}

// ignored reports whether rel matches the .gitignore files of its ancestors.
func (s *ignoreSet) ignored(rel string, isDir bool) bool {
	comps := strings.Split(rel, "/")
	var patterns []gitgitignore.Pattern
	dir := "."
	patterns = append(patterns, s.patternsFor(dir)...)
	for _, c := range comps[:len(comps)-1] {
		if dir == "." {
			dir = c
		} else {
			dir = dir + "/" + c
		}
		patterns = append(patterns, s.patternsFor(dir)...)
	}
	if len(patterns) == 0 {
		return false
	}
	return gitgitignore.NewMatcher(patterns).Match(comps, isDir)
}

// findNameFiles walks absRoot and returns sorted slash-relative locators of
// *.names.yaml files. Walk failures below the root become entries in errs
// when keepGoing is set.
func findNameFiles(absRoot string, noGitignore, keepGoing bool) (locators []string, errs []render.Error, err error) {
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %s: %v", discoverStage, absRoot, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s: %s: not a directory", discoverStage, absRoot)
	}
	ign := newIgnoreSet(absRoot)
	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, werr error) error {
		rel := displayPath(absRoot, p)
		if werr != nil {
			if !keepGoing {
				return fmt.Errorf("%s: %s: %v", discoverStage, rel, werr)
			}
			errs = append(errs, render.Error{Stage: discoverStage, Locator: rel, Message: sanitizeMessage(werr.Error())})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == "." {
			return nil
		}
		if !noGitignore && ign.ignored(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), nameFileSuffix) {
			locators = append(locators, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	sort.Strings(locators)
	return locators, errs, nil
}

func displayPath(absRoot, p string) string {
	rel, err := filepath.Rel(absRoot, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
