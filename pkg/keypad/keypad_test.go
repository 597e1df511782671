package keypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charlie0129/calc/pkg/calc"
)

func TestGlyph(t *testing.T) {
	assert.Equal(t, "AC", Glyph(calc.Clear, calc.ClearAll))
	assert.Equal(t, "C", Glyph(calc.Clear, calc.ClearEntry))
	assert.Equal(t, "AC", Glyph(calc.Clear, ""))
	assert.Equal(t, "7", Glyph(calc.Digit7, calc.ClearAll))
	assert.Equal(t, "÷", Glyph(calc.Divide, calc.ClearAll))
	assert.Equal(t, "-/+", Glyph(calc.ToggleSign, calc.ClearAll))
}

func TestLayoutCoversEveryButton(t *testing.T) {
	seen := map[calc.Button]bool{}
	for _, row := range Layout {
		for _, b := range row {
			assert.False(t, seen[b], "duplicate key %s", b)
			seen[b] = true
			assert.NotEmpty(t, Glyph(b, calc.ClearAll), "key %s", b)
		}
	}
	for _, b := range calc.Buttons() {
		assert.True(t, seen[b], "missing key %s", b)
	}
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassOperator, ClassOf(calc.Equals))
	assert.Equal(t, ClassOperator, ClassOf(calc.Multiply))
	assert.Equal(t, ClassFunction, ClassOf(calc.Percent))
	assert.Equal(t, ClassDigit, ClassOf(calc.Decimal))
	assert.Equal(t, ClassDigit, ClassOf(calc.Digit0))
}

func TestHighlighted(t *testing.T) {
	_, ok := Highlighted(calc.OpNone)
	assert.False(t, ok)

	b, ok := Highlighted(calc.OpSubtract)
	assert.True(t, ok)
	assert.Equal(t, calc.Subtract, b)

	e := calc.New()
	b, ok = Highlighted(e.HandleAll(calc.Digit3, calc.Multiply).ArmedOperator)
	assert.True(t, ok)
	assert.Equal(t, calc.Multiply, b)
}

func TestSizeFor(t *testing.T) {
	assert.Equal(t, SizeLarge, SizeFor("123456789012"))
	assert.Equal(t, SizeSmall, SizeFor("1234567890123"))
	assert.True(t, Wide(calc.Digit0))
	assert.False(t, Wide(calc.Digit1))
}
