package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the boundary wire shape accepted by POST /api/calls.
//
// The replay exports are loose about types: call_human arrives as a native
// bool or the string literals "TRUE"/"FALSE", and attempt/duration arrive as
// numbers or numeric strings. FlexBool/FlexInt absorb both forms so that a
// malformed field degrades to its documented default instead of rejecting
// the whole record.
type Payload struct {
	Phone     string   `json:"phone"`
	Status    string   `json:"status"`
	Sentiment string   `json:"sentiment"`
	CallHuman FlexBool `json:"call_human"`
	Summary   string   `json:"summary"`
	Attempt   FlexInt  `json:"attempt"`
	Duration  FlexInt  `json:"duration"`
	Country   string   `json:"country"`
	CreatedAt string   `json:"created_at"`
}

// FlexBool accepts a JSON bool or a string, where only the (trimmed,
// case-insensitive) literal "TRUE" is truthy. Anything unparsable is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = FlexBool(strings.EqualFold(strings.TrimSpace(s), "TRUE"))
		return nil
	}
	*b = false
	return nil
}

// FlexInt accepts a JSON number or a numeric string. OK records whether a
// usable value was present so callers can apply per-field defaults.
type FlexInt struct {
	Value int
	OK    bool
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Value, n.OK = int(f), true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			n.Value, n.OK = v, true
			return nil
		}
	}
	n.Value, n.OK = 0, false
	return nil
}

// Or returns the parsed value, or def when the field was absent or
// malformed.
func (n FlexInt) Or(def int) int {
	if n.OK {
		return n.Value
	}
	return def
}
