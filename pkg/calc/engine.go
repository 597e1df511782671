package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClearLabel is what the clear key should read.
type ClearLabel string

const (
	// ClearAll is shown while the engine is in its freshly reset state.
	ClearAll ClearLabel = "clear-all"
	// ClearEntry is shown once a digit or operator has been entered.
	ClearEntry ClearLabel = "clear-entry"
)

// Phase is the coarse state of the engine.
type Phase string

const (
	PhaseFresh           Phase = "fresh"
	PhaseEnteringOperand Phase = "entering-operand"
	PhaseOperatorArmed   Phase = "operator-armed"
	PhaseError           Phase = "error"
)

// State is the observable output of the engine after an event.
type State struct {
	Display       string     `json:"display"`
	ClearLabel    ClearLabel `json:"clearLabel"`
	ArmedOperator Operation  `json:"armedOperator"`
	Error         bool       `json:"error"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithDivisionPrecision sets how many fractional digits a quotient keeps.
// Values below 1 are ignored.
func WithDivisionPrecision(digits int32) Option {
	return func(e *Engine) {
		if digits > 0 {
			e.divPrecision = digits
		}
	}
}

// Engine interprets button presses into a running value and a display
// string. It is not safe for concurrent use; see Session.
type Engine struct {
	display     string
	accumulator decimal.Decimal
	pending     Operation

	// awaitingOperand is set after an operator or equals press; the next
	// digit starts a new operand.
	awaitingOperand bool
	// chainPending is set by an operator press and cleared by equals, so a
	// later operator press knows it must resolve the chain first.
	chainPending bool
	// operatorJustPressed drives the highlighted operator.
	operatorJustPressed bool

	// lastOperand is the right operand of the last equals; repeat is set
	// while equals may be pressed again to re-apply it.
	lastOperand decimal.Decimal
	repeat      bool

	errored bool
	dirty   bool

	divPrecision int32
}

// New returns an engine in its freshly reset state.
func New(opts ...Option) *Engine {
	e := &Engine{
		divPrecision: DefaultDivisionPrecision,
	}
	for _, o := range opts {
		o(e)
	}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.display = "0"
	e.accumulator = decimal.Zero
	e.pending = OpNone
	e.awaitingOperand = false
	e.chainPending = false
	e.operatorJustPressed = false
	e.lastOperand = decimal.Zero
	e.repeat = false
	e.errored = false
	e.dirty = false
}

// Handle applies one button press and returns the resulting state.
// Invalid buttons are ignored.
func (e *Engine) Handle(b Button) State {
	if b == Clear {
		e.reset()
		return e.State()
	}
	if e.errored || !b.Valid() {
		return e.State()
	}

	switch {
	case b.IsDigit():
		e.appendDigit(b)
	case b == Decimal:
		e.appendDecimal()
	case b == ToggleSign:
		e.toggleSign()
	case b == Percent:
		e.percent()
	case b == Equals:
		e.equals()
	default:
		e.arm(b.Operation())
	}

	return e.State()
}

// HandleAll applies buttons in order and returns the final state.
func (e *Engine) HandleAll(buttons ...Button) State {
	for _, b := range buttons {
		e.Handle(b)
	}
	return e.State()
}

// State returns a snapshot of the observable state.
func (e *Engine) State() State {
	return State{
		Display:       e.display,
		ClearLabel:    e.ClearLabel(),
		ArmedOperator: e.ArmedOperator(),
		Error:         e.errored,
	}
}

func (e *Engine) Display() string {
	return e.display
}

func (e *Engine) ClearLabel() ClearLabel {
	if e.dirty {
		return ClearEntry
	}
	return ClearAll
}

// ArmedOperator is the operator to highlight: the one pressed last, until a
// digit or equals is entered.
func (e *Engine) ArmedOperator() Operation {
	if e.errored || !e.operatorJustPressed {
		return OpNone
	}
	return e.pending
}

// PendingOperator is the operator equals will apply, highlighted or not.
func (e *Engine) PendingOperator() Operation {
	if e.errored {
		return OpNone
	}
	return e.pending
}

// Accumulator returns the running value carried between operations.
func (e *Engine) Accumulator() decimal.Decimal {
	return e.accumulator
}

func (e *Engine) Errored() bool {
	return e.errored
}

func (e *Engine) Phase() Phase {
	switch {
	case e.errored:
		return PhaseError
	case e.pending != OpNone && e.awaitingOperand:
		return PhaseOperatorArmed
	case !e.dirty && e.display == "0" && e.pending == OpNone:
		return PhaseFresh
	default:
		return PhaseEnteringOperand
	}
}

func (e *Engine) appendDigit(b Button) {
	digit := b.String()
	if e.awaitingOperand || e.display == "0" {
		e.display = digit
		e.awaitingOperand = false
	} else {
		e.display += digit
	}
	e.operatorJustPressed = false
	e.repeat = false
	e.dirty = true
}

func (e *Engine) appendDecimal() {
	if strings.Contains(e.display, ".") {
		return
	}
	e.display += "."
	e.repeat = false
}

func (e *Engine) toggleSign() {
	if e.display == "0" {
		return
	}
	if strings.HasPrefix(e.display, "-") {
		e.display = e.display[1:]
	} else {
		e.display = "-" + e.display
	}
	e.repeat = false
}

func (e *Engine) percent() {
	v := parseDisplay(e.display).Shift(-2)
	e.display = FormatResult(v)
	e.repeat = false
}

func (e *Engine) arm(op Operation) {
	if op == OpNone {
		return
	}

	// An operand typed after the previous operator press resolves the
	// chain: 5 + 3 + behaves like 5 + 3 = +.
	if e.chainPending && !e.awaitingOperand {
		e.equals()
		if e.errored {
			return
		}
	}

	e.pending = op
	e.accumulator = parseDisplay(e.display)
	e.awaitingOperand = true
	e.chainPending = true
	e.operatorJustPressed = true
	e.repeat = false
	e.dirty = true
}

func (e *Engine) equals() {
	operand := parseDisplay(e.display)
	if e.repeat {
		operand = e.lastOperand
	}

	result, ok := e.pending.apply(e.accumulator, operand, e.divPrecision)
	if !ok {
		e.display = ErrorToken
		e.errored = true
		return
	}

	e.display = FormatResult(result)
	e.accumulator = result
	e.lastOperand = operand
	e.repeat = e.pending != OpNone
	e.awaitingOperand = true
	e.chainPending = false
	e.operatorJustPressed = false
}
