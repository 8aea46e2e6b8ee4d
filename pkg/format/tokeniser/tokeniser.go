// Package tokeniser splits section sign formatted text into styled segments
package tokeniser

import (
	"strings"

	"awesome-dragon.science/go/mcmotd/pkg/format/section"
)

// LineBreak is what newlines are normalised to before splitting
const LineBreak = "<br>"

var resetString = section.Reset.String()

var newlineReplacer = strings.NewReplacer("\n", LineBreak, `\n`, LineBreak)

// Segment is a run of text between resets along with the codes seen in that run, in order.
//
// A segment made from input containing line breaks is composite: Lines holds the segments for each line, and Text
// and Codes are empty. Lines of a composite segment never inherit styles from each other
type Segment struct {
	Text  string
	Codes []section.Code
	Lines [][]Segment
}

// IsComposite returns whether or not this Segment holds lines rather than text
func (s Segment) IsComposite() bool {
	return s.Lines != nil
}

// Obfuscated returns whether or not the obfuscated code was seen in this Segment
func (s Segment) Obfuscated() bool {
	for _, c := range s.Codes {
		if c == section.Obfuscated {
			return true
		}
	}

	return false
}

// Style returns the CSS declarations for all codes in the Segment, each terminated with a semicolon. Codes without a
// declaration are skipped. Duplicates are kept, the last one wins when the browser applies them
func (s Segment) Style() string {
	out := strings.Builder{}
	for _, c := range s.Codes {
		if decl := c.Declaration(); decl != "" {
			out.WriteString(decl)
			out.WriteByte(';')
		}
	}

	return out.String()
}

// Normalize replaces newlines, both real and escaped, with LineBreak
func Normalize(in string) string {
	return newlineReplacer.Replace(in)
}

// Tokenise turns section sign formatted text into Segments.
//
// If the text contains line breaks, the result is a single composite Segment with each line tokenised on its own
func Tokenise(in string) []Segment {
	normalised := Normalize(in)
	if !strings.Contains(normalised, LineBreak) {
		return tokeniseLine(normalised)
	}

	lines := strings.Split(normalised, LineBreak)
	out := Segment{Lines: make([][]Segment, 0, len(lines))}

	for _, line := range lines {
		out.Lines = append(out.Lines, tokeniseLine(line))
	}

	return []Segment{out}
}

func tokeniseLine(in string) []Segment {
	var out []Segment

	for _, chunk := range strings.Split(in, resetString) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		text, codes := extractCodes(chunk)
		out = append(out, Segment{Text: text, Codes: codes})
	}

	return out
}

// extractCodes removes every sentinel and the rune following it from the string, returning the visible text and the
// removed codes. A sentinel with nothing following it is dropped
func extractCodes(in string) (string, []section.Code) {
	var codes []section.Code

	buf := strings.Builder{}
	seenSentinel := false

	for _, r := range in {
		switch {
		case seenSentinel:
			seenSentinel = false

			codes = append(codes, section.FromRune(r))
		case r == section.Sentinel:
			seenSentinel = true
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String(), codes
}

// Strip removes all formatting codes from the given string, leaving newlines as they are
func Strip(in string) string {
	text, _ := extractCodes(in)
	return text
}
