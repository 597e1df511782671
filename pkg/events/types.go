package events

import "encoding/json"

// Event name constants
const (
	StateChanged = "calc.state"
	SessionReset = "calc.reset"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// StateChangedEvent is the typed payload for calc.state.
type StateChangedEvent struct {
	Button        string `json:"button"`
	Display       string `json:"display"`
	ClearLabel    string `json:"clearLabel"`
	ArmedOperator string `json:"armedOperator"`
	Error         bool   `json:"error"`
	Ts            int64  `json:"ts"`
}

// SessionResetEvent is the typed payload for calc.reset.
type SessionResetEvent struct {
	// Reason is "clear" for a Clear press or "reload" after a config reload.
	Reason string `json:"reason"`
	Ts     int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.StateChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Display)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
