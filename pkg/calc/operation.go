package calc

import (
	"github.com/shopspring/decimal"
)

// Operation is a binary arithmetic operator that can be armed on the engine.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "add":
		*o = OpAdd
	case "subtract":
		*o = OpSubtract
	case "multiply":
		*o = OpMultiply
	case "divide":
		*o = OpDivide
	case "none", "":
		*o = OpNone
	default:
		return ErrUnknownOperation
	}
	return nil
}

// apply computes lhs OP rhs. ok is false when the result is undefined
// (division by zero or a magnitude beyond maxMagnitude).
func (o Operation) apply(lhs, rhs decimal.Decimal, divPrecision int32) (result decimal.Decimal, ok bool) {
	switch o {
	case OpAdd:
		result = lhs.Add(rhs)
	case OpSubtract:
		result = lhs.Sub(rhs)
	case OpMultiply:
		result = lhs.Mul(rhs)
	case OpDivide:
		if rhs.IsZero() {
			return decimal.Zero, false
		}
		result = lhs.DivRound(rhs, divPrecision)
	default:
		result = rhs
	}

	result = roundSignificant(result, maxSignificantDigits)
	if result.Abs().GreaterThanOrEqual(maxMagnitude) {
		return decimal.Zero, false
	}

	return result, true
}
