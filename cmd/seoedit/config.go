package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig is a kong.ConfigurationLoader for YAML files whose keys
// are flag names. Underscores may stand in for dashes, and a section named
// after a command holds that command's flags:
//
//	provider: anthropic
//	rps: 2
//	serve:
//	  addr: 0.0.0.0:3000
func LoadYAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

// lookup finds name in m, trying the underscore spelling as well.
// Scalars are returned as strings and lists are joined with commas, the
// forms kong's mappers parse.
func lookup(m map[string]any, name string) (any, bool) {
	v, ok := m[name]
	if !ok {
		v, ok = m[strings.ReplaceAll(name, "-", "_")]
	}
	if !ok || v == nil {
		return nil, false
	}
	switch v := v.(type) {
	case map[string]any:
		return nil, false
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), true
	default:
		return fmt.Sprint(v), true
	}
}
