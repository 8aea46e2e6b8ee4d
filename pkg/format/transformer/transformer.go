// Package transformer gives the output formats for section sign formatted text a common shape, and looks them up by
// name
package transformer

import (
	"fmt"
	"sort"

	"awesome-dragon.science/go/mcmotd/pkg/format/htmlstyle"
	"awesome-dragon.science/go/mcmotd/pkg/format/irc"
	"awesome-dragon.science/go/mcmotd/pkg/format/tokeniser"
)

// Transformer converts section sign formatted text to a specific output format.
// When an implementation does not support a given code it drops it. For example, obfuscation is only animated by
// the page renderer, every Transformer here writes obfuscated text as is
type Transformer interface {
	Transform(in string) string
}

// Func adapts a plain function to the Transformer interface
type Func func(in string) string

// Transform calls f
func (f Func) Transform(in string) string { return f(in) }

var transformers = map[string]Transformer{
	"html":  Func(htmlstyle.RenderString),
	"irc":   Func(irc.Transform),
	"strip": Func(tokeniser.Strip),
}

// GetTransformer returns the Transformer registered under name
func GetTransformer(name string) (Transformer, error) {
	t, ok := transformers[name]
	if !ok {
		return nil, fmt.Errorf("unknown transformer %q", name)
	}

	return t, nil
}

// Names returns the names of every registered Transformer, sorted
func Names() []string {
	out := make([]string, 0, len(transformers))
	for name := range transformers {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}
