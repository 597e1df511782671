package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/keypad"
)

const keyWidth = 5

var (
	displayColor  = color.New(color.Bold, color.FgHiWhite)
	errorColor    = color.New(color.Bold, color.FgRed)
	operatorColor = color.New(color.Bold, color.FgHiYellow)
	functionColor = color.New(color.FgHiBlack, color.BgWhite)
	digitColor    = color.New(color.FgHiWhite)
	selectedColor = color.New(color.Bold, color.FgYellow, color.BgHiWhite)
)

// renderDisplay returns the display line, right-aligned to the keypad width.
func renderDisplay(s calc.State) string {
	width := keyWidth * len(keypad.Layout[0])
	text := s.Display
	if keypad.SizeFor(text) == keypad.SizeSmall {
		// Mirror the shrunken display with a plain, non-bold rendering.
		return fmt.Sprintf("%*s", width, text)
	}
	c := displayColor
	if s.Error {
		c = errorColor
	}
	return c.Sprintf("%*s", width, text)
}

// renderKeypad draws the key grid and highlights the armed operator.
func renderKeypad(w io.Writer, s calc.State) {
	highlighted, hasHighlight := keypad.Highlighted(s.ArmedOperator)

	for _, row := range keypad.Layout {
		var sb strings.Builder
		for _, b := range row {
			width := keyWidth
			if keypad.Wide(b) {
				width *= 2
			}
			label := padRight(" "+keypad.Glyph(b, s.ClearLabel), width)

			c := digitColor
			switch keypad.ClassOf(b) {
			case keypad.ClassOperator:
				c = operatorColor
			case keypad.ClassFunction:
				c = functionColor
			}
			if hasHighlight && b == highlighted {
				c = selectedColor
			}
			sb.WriteString(c.Sprint(label))
		}
		fmt.Fprintln(w, sb.String())
	}
}

func renderState(w io.Writer, s calc.State) {
	fmt.Fprintln(w, renderDisplay(s))
	renderKeypad(w, s)
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
