package calc

import (
	"fmt"
	"strings"
)

// Button is a single key press accepted by the engine. The set is closed.
type Button int

const (
	Digit0 Button = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Decimal
	Add
	Subtract
	Multiply
	Divide
	Equals
	Clear
	ToggleSign
	Percent

	numButtons
)

var buttonNames = [numButtons]string{
	Digit0:     "0",
	Digit1:     "1",
	Digit2:     "2",
	Digit3:     "3",
	Digit4:     "4",
	Digit5:     "5",
	Digit6:     "6",
	Digit7:     "7",
	Digit8:     "8",
	Digit9:     "9",
	Decimal:    "decimal",
	Add:        "add",
	Subtract:   "subtract",
	Multiply:   "multiply",
	Divide:     "divide",
	Equals:     "equals",
	Clear:      "clear",
	ToggleSign: "toggle-sign",
	Percent:    "percent",
}

// aliases maps every accepted spelling (lower-cased) to its button.
var aliases = map[string]Button{
	".":    Decimal,
	",":    Decimal,
	"+":    Add,
	"-":    Subtract,
	"−":    Subtract,
	"*":    Multiply,
	"x":    Multiply,
	"×":    Multiply,
	"/":    Divide,
	"÷":    Divide,
	"=":    Equals,
	"c":    Clear,
	"ac":   Clear,
	"%":    Percent,
	"+/-":  ToggleSign,
	"-/+":  ToggleSign,
	"±":    ToggleSign,
	"neg":  ToggleSign,
	"sign": ToggleSign,
}

func init() {
	for b := Button(0); b < numButtons; b++ {
		aliases[buttonNames[b]] = b
	}
}

// DigitButton returns the button for digit d (0-9).
func DigitButton(d int) Button {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("digit out of range: %d", d))
	}
	return Digit0 + Button(d)
}

// Buttons lists every button in declaration order.
func Buttons() []Button {
	bs := make([]Button, 0, numButtons)
	for b := Button(0); b < numButtons; b++ {
		bs = append(bs, b)
	}
	return bs
}

func (b Button) Valid() bool {
	return b >= 0 && b < numButtons
}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// IsDigit reports whether b is one of Digit0..Digit9.
func (b Button) IsDigit() bool {
	return b >= Digit0 && b <= Digit9
}

// Operation returns the operator bound to b, or OpNone.
func (b Button) Operation() Operation {
	switch b {
	case Add:
		return OpAdd
	case Subtract:
		return OpSubtract
	case Multiply:
		return OpMultiply
	case Divide:
		return OpDivide
	default:
		return OpNone
	}
}

// ButtonFor returns the button that arms op.
func ButtonFor(op Operation) (Button, bool) {
	switch op {
	case OpAdd:
		return Add, true
	case OpSubtract:
		return Subtract, true
	case OpMultiply:
		return Multiply, true
	case OpDivide:
		return Divide, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownButton, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButton accepts a button name ("add", "toggle-sign"), a glyph
// ("+", "×", "±") or a single digit.
func ParseButton(s string) (Button, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if b, ok := aliases[key]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, s)
}

// ParseSequence splits a key string into buttons. Whitespace separates
// tokens; inside a token digits and single-rune glyphs are read one by one
// ("12+3=" is six presses) while multi-rune names must stand alone
// ("12 add 3 equals").
func ParseSequence(s string) ([]Button, error) {
	var out []Button
	for _, field := range strings.Fields(s) {
		if b, err := ParseButton(field); err == nil {
			out = append(out, b)
			continue
		}

		runes := []rune(field)
		for i := 0; i < len(runes); i++ {
			// "+/-" and "-/+" are the only multi-rune glyphs.
			if i+2 < len(runes) && runes[i+1] == '/' {
				if b, err := ParseButton(string(runes[i : i+3])); err == nil && b == ToggleSign {
					out = append(out, b)
					i += 2
					continue
				}
			}
			b, err := ParseButton(string(runes[i]))
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, field)
			}
			out = append(out, b)
		}
	}
	return out, nil
}
