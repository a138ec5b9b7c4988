// Package presets loads the named graph-spec presets embedded in
// presets.yaml: shortcuts for common benchmark shapes, expanded into the
// same flag-token chain internal/config.ParseGraphs accepts.
package presets

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// library is the decoded preset set; parsed once, lazily, on first use.
var library map[string][]string

// Tokens returns the flag-token chain for the named preset, ready to be
// prepended to internal/config.ParseGraphs's argument slice.
func Tokens(name string) ([]string, error) {
	if err := ensureLoaded(); err != nil {
		return nil, err
	}
	toks, ok := library[name]
	if !ok {
		return nil, fmt.Errorf("presets: unknown preset %q", name)
	}
	out := make([]string, len(toks))
	copy(out, toks)
	return out, nil
}

// Names returns the available preset names, in no particular order.
func Names() ([]string, error) {
	if err := ensureLoaded(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	return names, nil
}

func ensureLoaded() error {
	if library != nil {
		return nil
	}
	var raw map[string]string
	dec := yaml.NewDecoder(strings.NewReader(string(presetsYAML)))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("presets: decode presets.yaml: %w", err)
	}
	library = make(map[string][]string, len(raw))
	for name, line := range raw {
		library[name] = strings.Fields(line)
	}
	return nil
}
