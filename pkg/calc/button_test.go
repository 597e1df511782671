package calc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		in   string
		want Button
	}{
		{in: "0", want: Digit0},
		{in: "9", want: Digit9},
		{in: ".", want: Decimal},
		{in: "+", want: Add},
		{in: "−", want: Subtract},
		{in: "×", want: Multiply},
		{in: "X", want: Multiply},
		{in: "÷", want: Divide},
		{in: "=", want: Equals},
		{in: "AC", want: Clear},
		{in: " clear ", want: Clear},
		{in: "+/-", want: ToggleSign},
		{in: "toggle-sign", want: ToggleSign},
		{in: "%", want: Percent},
		{in: "Percent", want: Percent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseButton(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseButton("sqrt")
	assert.True(t, errors.Is(err, ErrUnknownButton))
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		in   string
		want []Button
	}{
		{in: "12+3=", want: []Button{Digit1, Digit2, Add, Digit3, Equals}},
		{in: "12 add 3 equals", want: []Button{Digit1, Digit2, Add, Digit3, Equals}},
		{in: "6/2", want: []Button{Digit6, Divide, Digit2}},
		{in: "5+/-", want: []Button{Digit5, ToggleSign}},
		{in: "1.5 ±", want: []Button{Digit1, Decimal, Digit5, ToggleSign}},
		{in: "AC 7", want: []Button{Clear, Digit7}},
		{in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSequence(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSequence("1+sqrt")
	assert.True(t, errors.Is(err, ErrUnknownButton))
}

func TestButton_JSON(t *testing.T) {
	b, err := json.Marshal([]Button{Digit7, Multiply, ToggleSign})
	require.NoError(t, err)
	assert.JSONEq(t, `["7","multiply","toggle-sign"]`, string(b))

	var got []Button
	require.NoError(t, json.Unmarshal([]byte(`["7","×","±"]`), &got))
	assert.Equal(t, []Button{Digit7, Multiply, ToggleSign}, got)

	assert.Error(t, json.Unmarshal([]byte(`["sin"]`), &got))
}

func TestButton_Operation(t *testing.T) {
	for _, b := range Buttons() {
		op := b.Operation()
		if op == OpNone {
			continue
		}
		back, ok := ButtonFor(op)
		assert.True(t, ok)
		assert.Equal(t, b, back)
	}
	_, ok := ButtonFor(OpNone)
	assert.False(t, ok)
	assert.Equal(t, Digit4, DigitButton(4))
	assert.Panics(t, func() { DigitButton(10) })
}

func TestOperation_Text(t *testing.T) {
	var op Operation
	require.NoError(t, op.UnmarshalText([]byte("divide")))
	assert.Equal(t, OpDivide, op)
	assert.Equal(t, "divide", op.String())
	assert.ErrorIs(t, op.UnmarshalText([]byte("modulo")), ErrUnknownOperation)
}
