// Package htmlstyle renders tokenised section sign text as HTML nodes, one styled span per segment
package htmlstyle

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"awesome-dragon.science/go/mcmotd/pkg/format/tokeniser"
)

// Animator takes over the text of obfuscated segments. write replaces the text of the segment's span
type Animator interface {
	Start(text string, write func(text string))
}

// Render converts segments into a list of top level nodes. Obfuscated segments are handed to anim with an empty
// span; if anim is nil, their text is written as is
func Render(segments []tokeniser.Segment, anim Animator) []*html.Node {
	out := make([]*html.Node, 0, len(segments))
	for _, seg := range segments {
		out = append(out, renderSegment(seg, anim))
	}

	return out
}

func renderSegment(seg tokeniser.Segment, anim Animator) *html.Node {
	span := newElement(atom.Span)

	if seg.IsComposite() {
		for i, line := range seg.Lines {
			if i > 0 {
				span.AppendChild(newElement(atom.Br))
			}

			for _, lineSeg := range line {
				span.AppendChild(renderSegment(lineSeg, anim))
			}
		}

		return span
	}

	if style := seg.Style(); style != "" {
		span.Attr = append(span.Attr, html.Attribute{Key: "style", Val: style})
	}

	text := &html.Node{Type: html.TextNode}
	span.AppendChild(text)

	if seg.Obfuscated() && anim != nil {
		anim.Start(seg.Text, func(s string) { text.Data = s })
	} else {
		text.Data = seg.Text
	}

	return span
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// RenderString tokenises in and returns the static HTML for it. Obfuscated text is not animated
func RenderString(in string) string {
	out := strings.Builder{}
	for _, n := range Render(tokeniser.Tokenise(in), nil) {
		// Rendering into a strings.Builder cannot fail
		_ = html.Render(&out, n)
	}

	return out.String()
}
