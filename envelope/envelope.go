// Package envelope implements the JSON array frames that carry binary
// reconciliation messages over a pub/sub channel.
//
// Every frame is a fixed-shape JSON array whose first element is a label:
//
//	["NEG-OPEN", <subscription id>, <filter>, <initial message hex>]
//	["NEG-MSG", <subscription id>, <message hex>]
//	["NEG-ERR", <subscription id>, <reason>]
//	["NEG-CLOSE", <subscription id>]
//
// The binary message is always lowercase hex inside a JSON string; the
// NEG-OPEN filter is opaque JSON owned by the application's query layer and
// passes through unparsed. Parsing is strict: wrong array length, wrong
// label, or a wrong field type is an error, never a partial result.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Frame labels.
const (
	LabelOpen  = "NEG-OPEN"
	LabelMsg   = "NEG-MSG"
	LabelErr   = "NEG-ERR"
	LabelClose = "NEG-CLOSE"
)

// Envelope is implemented by the four frame types. Transports that only
// route frames can dispatch on Label and SubscriptionID without caring which
// concrete type they hold.
type Envelope interface {
	// Label returns the frame's label, e.g. "NEG-OPEN".
	Label() string

	// Subscription returns the subscription id scoping the session.
	Subscription() string
}

// decodeArray unmarshals data as a JSON array, verifies it has exactly
// wantLen elements, and verifies element 0 equals label. It returns the raw
// elements after the label.
func decodeArray(label string, data []byte, wantLen int) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("%s: not a JSON array: %w", label, err)
	}
	if len(arr) != wantLen {
		return nil, fmt.Errorf("%s: expected %d elements, got %d", label, wantLen, len(arr))
	}

	var tag string
	if err := json.Unmarshal(arr[0], &tag); err != nil {
		return nil, fmt.Errorf("%s: label is not a string: %w", label, err)
	}
	if tag != label {
		return nil, fmt.Errorf("%s: unexpected label %q", label, tag)
	}

	return arr[1:], nil
}

func decodeString(label, field string, raw json.RawMessage, dst *string) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %s is not a string: %w", label, field, err)
	}

	return nil
}

// NegOpen opens a reconciliation session: it carries the application filter
// selecting the compared set and the initiator's first binary message.
type NegOpen struct {
	SubscriptionID string
	Filter         json.RawMessage
	InitialMessage string
}

// NewNegOpen creates a NEG-OPEN frame. A nil filter marshals as JSON null.
func NewNegOpen(subscriptionID string, filter json.RawMessage, initialMessageHex string) *NegOpen {
	return &NegOpen{
		SubscriptionID: subscriptionID,
		Filter:         filter,
		InitialMessage: initialMessageHex,
	}
}

func (m *NegOpen) Label() string { return LabelOpen }

func (m *NegOpen) Subscription() string { return m.SubscriptionID }

func (m *NegOpen) MarshalJSON() ([]byte, error) {
	filter := m.Filter
	if filter == nil {
		filter = json.RawMessage("null")
	}

	return json.Marshal([]any{LabelOpen, m.SubscriptionID, filter, m.InitialMessage})
}

func (m *NegOpen) UnmarshalJSON(data []byte) error {
	fields, err := decodeArray(LabelOpen, data, 4)
	if err != nil {
		return err
	}
	if err := decodeString(LabelOpen, "subscription id", fields[0], &m.SubscriptionID); err != nil {
		return err
	}

	m.Filter = fields[1]

	return decodeString(LabelOpen, "initial message", fields[2], &m.InitialMessage)
}

// NegMsg is the bidirectional continuation frame carrying one binary
// message of an open session.
type NegMsg struct {
	SubscriptionID string
	Message        string
}

// NewNegMsg creates a NEG-MSG frame.
func NewNegMsg(subscriptionID, messageHex string) *NegMsg {
	return &NegMsg{SubscriptionID: subscriptionID, Message: messageHex}
}

func (m *NegMsg) Label() string { return LabelMsg }

func (m *NegMsg) Subscription() string { return m.SubscriptionID }

func (m *NegMsg) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{LabelMsg, m.SubscriptionID, m.Message})
}

func (m *NegMsg) UnmarshalJSON(data []byte) error {
	fields, err := decodeArray(LabelMsg, data, 3)
	if err != nil {
		return err
	}
	if err := decodeString(LabelMsg, "subscription id", fields[0], &m.SubscriptionID); err != nil {
		return err
	}

	return decodeString(LabelMsg, "message", fields[1], &m.Message)
}

// NegErr terminates a session with a human-readable reason.
type NegErr struct {
	SubscriptionID string
	Reason         string
}

// NewNegErr creates a NEG-ERR frame with a verbatim reason.
func NewNegErr(subscriptionID, reason string) *NegErr {
	return &NegErr{SubscriptionID: subscriptionID, Reason: reason}
}

// NewBlockedErr creates a NEG-ERR frame whose reason is prefixed with
// "blocked: ", the conventional marker for a refused session.
func NewBlockedErr(subscriptionID, reason string) *NegErr {
	return NewNegErr(subscriptionID, "blocked: "+reason)
}

// NewClosedErr creates a NEG-ERR frame whose reason is prefixed with
// "closed: ", the conventional marker for a server-side teardown.
func NewClosedErr(subscriptionID, reason string) *NegErr {
	return NewNegErr(subscriptionID, "closed: "+reason)
}

func (m *NegErr) Label() string { return LabelErr }

func (m *NegErr) Subscription() string { return m.SubscriptionID }

func (m *NegErr) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{LabelErr, m.SubscriptionID, m.Reason})
}

func (m *NegErr) UnmarshalJSON(data []byte) error {
	fields, err := decodeArray(LabelErr, data, 3)
	if err != nil {
		return err
	}
	if err := decodeString(LabelErr, "subscription id", fields[0], &m.SubscriptionID); err != nil {
		return err
	}

	return decodeString(LabelErr, "reason", fields[1], &m.Reason)
}

// NegClose is the client-initiated session termination frame.
type NegClose struct {
	SubscriptionID string
}

// NewNegClose creates a NEG-CLOSE frame.
func NewNegClose(subscriptionID string) *NegClose {
	return &NegClose{SubscriptionID: subscriptionID}
}

func (m *NegClose) Label() string { return LabelClose }

func (m *NegClose) Subscription() string { return m.SubscriptionID }

func (m *NegClose) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{LabelClose, m.SubscriptionID})
}

func (m *NegClose) UnmarshalJSON(data []byte) error {
	fields, err := decodeArray(LabelClose, data, 2)
	if err != nil {
		return err
	}

	return decodeString(LabelClose, "subscription id", fields[0], &m.SubscriptionID)
}

// Parse inspects a frame's label and unmarshals it into the matching
// concrete type. Unknown labels and malformed frames are errors.
func Parse(data []byte) (Envelope, error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("envelope: not a JSON array: %w", err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("envelope: empty array")
	}

	var tag string
	if err := json.Unmarshal(probe[0], &tag); err != nil {
		return nil, fmt.Errorf("envelope: label is not a string: %w", err)
	}

	var env Envelope
	switch tag {
	case LabelOpen:
		env = &NegOpen{}
	case LabelMsg:
		env = &NegMsg{}
	case LabelErr:
		env = &NegErr{}
	case LabelClose:
		env = &NegClose{}
	default:
		return nil, fmt.Errorf("envelope: unknown label %q", tag)
	}

	if err := json.Unmarshal(data, env); err != nil {
		return nil, err
	}

	return env, nil
}
