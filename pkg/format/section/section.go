// Package section defines the Minecraft section sign formatting codes and the CSS each of them maps to.
//
// A code is the sentinel, '§', followed by exactly one character. The defined codes are:
//    0-f	Colours
//    k	Obfuscated
//    l	Bold
//    m	Strikethrough
//    n	Underline
//    o	Italic
//    r	Reset
//
// Any other character after the sentinel is Unknown. Unknown codes are still codes, they are removed from visible
// text, they simply have no styling attached.
package section

import (
	"fmt"
	"image/color" //nolint:misspell // go devs cant spell colour
)

// Sentinel starts every formatting code
const Sentinel = '§'

// SentinelString is Sentinel as a string, for use with the strings package
const SentinelString = string(Sentinel)

// Code is a single formatting code
type Code int

// All codes understood by this package. Colour codes are contiguous so that Code-Black is the palette index
const (
	Unknown Code = iota
	Black
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
	Obfuscated
	Bold
	Strikethrough
	Underline
	Italic
	Reset
)

var (
	black       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF} // 0
	darkBlue    = color.RGBA{R: 0x00, G: 0x00, B: 0xAA, A: 0xFF} // 1
	darkGreen   = color.RGBA{R: 0x00, G: 0xAA, B: 0x00, A: 0xFF} // 2
	darkAqua    = color.RGBA{R: 0x00, G: 0xAA, B: 0xAA, A: 0xFF} // 3
	darkRed     = color.RGBA{R: 0xAA, G: 0x00, B: 0x00, A: 0xFF} // 4
	darkPurple  = color.RGBA{R: 0xAA, G: 0x00, B: 0xAA, A: 0xFF} // 5
	gold        = color.RGBA{R: 0xFF, G: 0xAA, B: 0x00, A: 0xFF} // 6
	gray        = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF} // 7
	darkGray    = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF} // 8
	blue        = color.RGBA{R: 0x55, G: 0x55, B: 0xFF, A: 0xFF} // 9
	green       = color.RGBA{R: 0x55, G: 0xFF, B: 0x55, A: 0xFF} // a
	aqua        = color.RGBA{R: 0x55, G: 0xFF, B: 0xFF, A: 0xFF} // b
	red         = color.RGBA{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF} // c
	lightPurple = color.RGBA{R: 0xFF, G: 0x55, B: 0xFF, A: 0xFF} // d
	yellow      = color.RGBA{R: 0xFF, G: 0xFF, B: 0x55, A: 0xFF} // e
	white       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // f

	// Palette holds the sixteen Minecraft colours, indexed by colour code value
	Palette = color.Palette{
		black, darkBlue, darkGreen, darkAqua, darkRed, darkPurple,
		gold, gray, darkGray, blue, green, aqua, red, lightPurple,
		yellow, white,
	}
)

// Minecraft's own names for the colours, as used in JSON chat components
var colourNames = [...]string{
	"black", "dark_blue", "dark_green", "dark_aqua", "dark_red", "dark_purple",
	"gold", "gray", "dark_gray", "blue", "green", "aqua", "red", "light_purple",
	"yellow", "white",
}

const colourDigits = "0123456789abcdef"

// FromRune returns the Code for the character following a sentinel
func FromRune(r rune) Code {
	switch r {
	case 'k':
		return Obfuscated
	case 'l':
		return Bold
	case 'm':
		return Strikethrough
	case 'n':
		return Underline
	case 'o':
		return Italic
	case 'r':
		return Reset
	}

	for i, d := range colourDigits {
		if r == d {
			return Black + Code(i)
		}
	}

	return Unknown
}

// FromColourName returns the colour Code for a Minecraft colour name such as "dark_red"
func FromColourName(name string) (Code, bool) {
	for i, n := range colourNames {
		if n == name {
			return Black + Code(i), true
		}
	}

	return Unknown, false
}

// Rune is the inverse of FromRune. Unknown has no rune and returns 0
func (c Code) Rune() rune {
	switch c {
	case Obfuscated:
		return 'k'
	case Bold:
		return 'l'
	case Strikethrough:
		return 'm'
	case Underline:
		return 'n'
	case Italic:
		return 'o'
	case Reset:
		return 'r'
	}

	if c.IsColour() {
		return rune(colourDigits[c-Black])
	}

	return 0
}

// String returns the code as it appears in text, eg "§a". Unknown returns an empty string
func (c Code) String() string {
	r := c.Rune()
	if r == 0 {
		return ""
	}

	return SentinelString + string(r)
}

// IsColour returns whether or not this Code is one of the sixteen colours
func (c Code) IsColour() bool {
	return c >= Black && c <= White
}

// Colour returns the RGB value of a colour Code, or nil for anything else
func (c Code) Colour() color.Color {
	if !c.IsColour() {
		return nil
	}

	return Palette[c-Black]
}

// ColourName returns the Minecraft name of a colour Code, or an empty string
func (c Code) ColourName() string {
	if !c.IsColour() {
		return ""
	}

	return colourNames[c-Black]
}

// Declaration returns the CSS declaration for the Code, without a trailing semicolon. Obfuscated and Reset are
// behaviours rather than styles, so they, like Unknown, return an empty string
func (c Code) Declaration() string {
	switch c {
	case Bold:
		return "font-weight:bold"
	case Strikethrough:
		return "text-decoration:line-through"
	case Underline:
		return "text-decoration:underline"
	case Italic:
		return "font-style:italic"
	case Obfuscated, Reset, Unknown:
		return ""
	}

	if col := c.Colour(); col != nil {
		r, g, b, _ := col.RGBA()
		return fmt.Sprintf("color:#%02X%02X%02X", uint8(r), uint8(g), uint8(b))
	}

	return ""
}
