// Package keypad maps engine buttons and state to what a front end draws.
// Nothing here mutates engine state; every function is a pure projection.
package keypad

import (
	"unicode/utf8"

	"github.com/charlie0129/calc/pkg/calc"
)

// Class groups keys that share a look.
type Class int

const (
	ClassDigit Class = iota
	// ClassOperator keys are the arithmetic operators and equals.
	ClassOperator
	// ClassFunction keys act on the current entry: clear, sign and percent.
	ClassFunction
)

func (c Class) String() string {
	switch c {
	case ClassOperator:
		return "operator"
	case ClassFunction:
		return "function"
	default:
		return "digit"
	}
}

// Size is the display text size class.
type Size int

const (
	SizeLarge Size = iota
	SizeSmall
)

// smallDisplayChars is the display length above which the text is shrunk.
const smallDisplayChars = 12

var glyphs = map[calc.Button]string{
	calc.Decimal:    ".",
	calc.Add:        "+",
	calc.Subtract:   "−",
	calc.Multiply:   "×",
	calc.Divide:     "÷",
	calc.Equals:     "=",
	calc.Percent:    "%",
	calc.ToggleSign: "-/+",
}

var clearGlyphs = map[calc.ClearLabel]string{
	calc.ClearAll:   "AC",
	calc.ClearEntry: "C",
}

// Layout is the key grid, top row first. The zero key spans two columns.
var Layout = [][]calc.Button{
	{calc.Clear, calc.ToggleSign, calc.Percent, calc.Divide},
	{calc.Digit7, calc.Digit8, calc.Digit9, calc.Multiply},
	{calc.Digit4, calc.Digit5, calc.Digit6, calc.Subtract},
	{calc.Digit1, calc.Digit2, calc.Digit3, calc.Add},
	{calc.Digit0, calc.Decimal, calc.Equals},
}

// Glyph is the text printed on b. The clear key follows label.
func Glyph(b calc.Button, label calc.ClearLabel) string {
	if b == calc.Clear {
		if g, ok := clearGlyphs[label]; ok {
			return g
		}
		return clearGlyphs[calc.ClearAll]
	}
	if b.IsDigit() {
		return b.String()
	}
	return glyphs[b]
}

func ClassOf(b calc.Button) Class {
	switch b {
	case calc.Add, calc.Subtract, calc.Multiply, calc.Divide, calc.Equals:
		return ClassOperator
	case calc.Clear, calc.ToggleSign, calc.Percent:
		return ClassFunction
	default:
		return ClassDigit
	}
}

// Highlighted returns the key to draw as selected for the armed operator.
func Highlighted(armed calc.Operation) (calc.Button, bool) {
	return calc.ButtonFor(armed)
}

// Wide reports whether b spans two grid columns.
func Wide(b calc.Button) bool {
	return b == calc.Digit0
}

// SizeFor picks the display text size for the given display string.
func SizeFor(display string) Size {
	if utf8.RuneCountInString(display) > smallDisplayChars {
		return SizeSmall
	}
	return SizeLarge
}
