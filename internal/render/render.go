// Package render writes greetings in the output formats supported by the CLI.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatLines Format = "lines"
	FormatYAML  Format = "yaml"
)

// Greeting is a single rendered greeting. Locator is set for batch results.
type Greeting struct {
	Locator string `json:"locator,omitempty"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Error is a non-fatal failure reported alongside batch greetings.
type Error struct {
	Stage   string `json:"stage"`
	Locator string `json:"locator,omitempty"`
	Message string `json:"message"`
}

// Envelope is the batch output document.
type Envelope struct {
	Greetings []Greeting `json:"greetings"`
	Errors    []Error    `json:"errors,omitempty"`
}

// ParseFormat validates s against the allowed formats.
func ParseFormat(s string, allowed ...Format) (Format, error) {
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// WriteGreeting writes one greeting as text, a JSON line or a YAML document.
func WriteGreeting(w io.Writer, format Format, g Greeting) error {
	switch format {
	case FormatText:
		_, err := fmt.Fprintln(w, g.Message)
		return err
	case FormatJSON, FormatLines:
		return encodeJSON(w, g, false)
	case FormatYAML:
		b, err := marshalYAML(greetingNode(g))
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteEnvelope writes a batch result. pretty only affects FormatJSON.
func WriteEnvelope(w io.Writer, format Format, env Envelope, pretty bool) error {
	if env.Greetings == nil {
		env.Greetings = []Greeting{}
	}
	switch format {
	case FormatText:
		for _, g := range env.Greetings {
			if _, err := fmt.Fprintln(w, g.Message); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return encodeJSON(w, env, pretty)
	case FormatLines:
		for _, g := range env.Greetings {
			if err := encodeJSON(w, g, false); err != nil {
				return err
			}
		}
		for _, e := range env.Errors {
			if err := encodeJSON(w, e, false); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		b, err := marshalYAML(envelopeNode(env))
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func encodeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func marshalYAML(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func greetingNode(g Greeting) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if g.Locator != "" {
		n.Content = append(n.Content, scalarNode("locator"), scalarNode(g.Locator))
	}
	n.Content = append(n.Content,
		scalarNode("name"), scalarNode(g.Name),
		scalarNode("message"), scalarNode(g.Message),
	)
	return n
}

func errorNode(e Error) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalarNode("stage"), scalarNode(e.Stage))
	if e.Locator != "" {
		n.Content = append(n.Content, scalarNode("locator"), scalarNode(e.Locator))
	}
	n.Content = append(n.Content, scalarNode("message"), scalarNode(e.Message))
	return n
}

func envelopeNode(env Envelope) *yaml.Node {
	gs := &yaml.Node{Kind: yaml.SequenceNode}
	for _, g := range env.Greetings {
		gs.Content = append(gs.Content, greetingNode(g))
	}
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content, scalarNode("greetings"), gs)
	if len(env.Errors) > 0 {
		es := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range env.Errors {
			es.Content = append(es.Content, errorNode(e))
		}
		top.Content = append(top.Content, scalarNode("errors"), es)
	}
	return top
}
