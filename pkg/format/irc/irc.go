// Package irc converts section sign formatted text into IRC formatting codes.
//
// Bold, italic, underline and the sixteen colours are carried over. Colours are mapped to the closest IRC colour.
// Obfuscated text cannot be animated on IRC, it is sent as is
package irc

import (
	"strings"

	"github.com/goshuirc/irc-go/ircfmt"

	"awesome-dragon.science/go/mcmotd/pkg/format/section"
	"awesome-dragon.science/go/mcmotd/pkg/format/tokeniser"
)

var colourMap = map[section.Code]string{
	section.Black:       "black",
	section.DarkBlue:    "blue",
	section.DarkGreen:   "green",
	section.DarkAqua:    "cyan",
	section.DarkRed:     "brown",
	section.DarkPurple:  "magenta",
	section.Gold:        "orange",
	section.Gray:        "light grey",
	section.DarkGray:    "grey",
	section.Blue:        "light blue",
	section.Green:       "light green",
	section.Aqua:        "light cyan",
	section.Red:         "red",
	section.LightPurple: "pink",
	section.Yellow:      "yellow",
	section.White:       "white",
}

var formatMap = map[section.Code]string{
	section.Bold:      "$b",
	section.Italic:    "$i",
	section.Underline: "$u",
}

// Transform converts section sign formatted text to IRC formatted text
func Transform(in string) string {
	return ircfmt.Unescape(Escape(in))
}

// Escape converts section sign formatted text to the $-escaped form understood by ircfmt.Unescape
func Escape(in string) string {
	out := strings.Builder{}
	writeSegments(&out, tokeniser.Tokenise(in))

	return out.String()
}

func writeSegments(out *strings.Builder, segments []tokeniser.Segment) {
	for _, seg := range segments {
		if seg.IsComposite() {
			for i, line := range seg.Lines {
				if i > 0 {
					out.WriteByte('\n')
				}

				writeSegments(out, line)
			}

			continue
		}

		formatted := false

		for _, c := range seg.Codes {
			if name, ok := colourMap[c]; ok {
				out.WriteString("$c[" + name + "]")
				formatted = true
			} else if code, ok := formatMap[c]; ok {
				out.WriteString(code)
				formatted = true
			}
		}

		out.WriteString(ircfmt.Escape(seg.Text))

		if formatted {
			out.WriteString("$r")
		}
	}
}
