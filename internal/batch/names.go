package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	parseStage          = "parse-name-files"
	defaultMaxNameBytes = 1048576
)

// parseNameFile reads root/locator and returns its names list. The file must
// be a mapping whose only key is `names`, a list of strings.
func parseNameFile(root, locator string, maxBytes int) ([]string, error) {
	p := filepath.Join(root, filepath.FromSlash(locator))
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("read error: %v", err)
	}
	if info.Size() > int64(maxBytes) {
		return nil, fmt.Errorf("file exceeds size limit: %d", maxBytes)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read error: %v", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("top-level must be mapping")
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level must be mapping")
	}
	var raw *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		k := top.Content[i]
		if k.Kind != yaml.ScalarNode || k.Value != "names" {
			return nil, fmt.Errorf("unknown top-level field: %s", k.Value)
		}
		raw = top.Content[i+1]
	}
	if raw == nil {
		return nil, fmt.Errorf("missing required field: names")
	}
	if raw.Kind == yaml.ScalarNode && raw.ShortTag() == "!!null" {
		return []string{}, nil
	}
	if raw.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid type for field: names")
	}
	names := make([]string, 0, len(raw.Content))
	for i, item := range raw.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, fmt.Errorf("invalid type for names[%d]", i)
		}
		names = append(names, item.Value)
	}
	return names, nil
}
