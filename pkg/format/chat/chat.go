// Package chat converts Minecraft JSON chat components, as found in the description of a server list ping, into
// section sign formatted text.
// see https://minecraft.wiki/w/Raw_JSON_text_format for a full look at the format itself
package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"awesome-dragon.science/go/mcmotd/pkg/format/section"
)

// Component is a single JSON chat component. Children in Extra inherit formatting from their parent
type Component struct {
	Text          string      `json:"text"`
	Translate     string      `json:"translate,omitempty"`
	Bold          bool        `json:"bold,omitempty"`
	Italic        bool        `json:"italic,omitempty"`
	Underline     bool        `json:"underlined,omitempty"`
	Strikethrough bool        `json:"strikethrough,omitempty"`
	Obfuscated    bool        `json:"obfuscated,omitempty"`
	Colour        string      `json:"color,omitempty"` //nolint:misspell // minecraft devs cant spell colour either
	Extra         []Component `json:"extra,omitempty"`
}

// UnmarshalJSON allows components to be plain strings, as they are in simple server descriptions and in extra arrays
func (c *Component) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Component{Text: text}
		return nil
	}

	type plain Component // drops the UnmarshalJSON method so the decode below doesnt recurse

	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	*c = Component(out)

	return nil
}

// Parse decodes a JSON description and returns it as section sign formatted text
func Parse(data []byte) (string, error) {
	var c Component
	if err := json.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("could not decode chat component: %w", err)
	}

	return c.String(), nil
}

type style struct {
	bold, italic, underline, strikethrough, obfuscated bool
	colour                                            section.Code
}

func (s style) inherit(c *Component) style {
	out := style{
		bold:          s.bold || c.Bold,
		italic:        s.italic || c.Italic,
		underline:     s.underline || c.Underline,
		strikethrough: s.strikethrough || c.Strikethrough,
		obfuscated:    s.obfuscated || c.Obfuscated,
		colour:        s.colour,
	}

	if code, ok := section.FromColourName(c.Colour); ok {
		out.colour = code
	} else if c.Colour == "reset" {
		out.colour = section.Unknown
	}

	return out
}

func (s style) codes() string {
	out := strings.Builder{}
	out.WriteString(section.Reset.String())

	if s.colour != section.Unknown {
		out.WriteString(s.colour.String())
	}

	for _, pair := range []struct {
		set  bool
		code section.Code
	}{
		{s.bold, section.Bold},
		{s.italic, section.Italic},
		{s.underline, section.Underline},
		{s.strikethrough, section.Strikethrough},
		{s.obfuscated, section.Obfuscated},
	} {
		if pair.set {
			out.WriteString(pair.code.String())
		}
	}

	return out.String()
}

// String returns the component and all of its children as section sign formatted text. Every piece of text is
// preceded by a reset and the full set of codes that apply to it. A component whose text is a lone newline is
// written as a newline with no codes
func (c *Component) String() string {
	out := strings.Builder{}
	c.write(&out, style{}, true)

	return out.String()
}

func (c *Component) write(out *strings.Builder, parent style, root bool) {
	s := parent.inherit(c)

	text := c.Text
	if text == "" {
		text = c.Translate
	}

	switch {
	case text == "\n":
		out.WriteString(text)
	case text != "":
		if !root || s != (style{}) {
			out.WriteString(s.codes())
		}

		out.WriteString(text)
	}

	for i := range c.Extra {
		c.Extra[i].write(out, s, false)
	}
}
