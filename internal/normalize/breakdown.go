package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Outcome is one (label, count) pair of a result breakdown.
type Outcome struct {
	Label string
	Count int
}

// Breakdown is a per-outcome call tally that preserves the order in which
// labels appeared in the source JSON object. Order matters: both the
// dominant-status fallback and the composed summary iterate in insertion
// order, so a plain map would lose the semantics.
type Breakdown []Outcome

// Get returns the count for label, 0 if absent.
func (b Breakdown) Get(label string) int {
	for _, o := range b {
		if o.Label == label {
			return o.Count
		}
	}
	return 0
}

// Sum returns the total of all counts, voicemail attempts included.
func (b Breakdown) Sum() int {
	total := 0
	for _, o := range b {
		total += o.Count
	}
	return total
}

// UnmarshalJSON decodes a JSON object into ordered (label, count) pairs by
// walking the token stream instead of binding to a map. Counts that are not
// valid numbers fall back to 0.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("breakdown: expected object, got %v", tok)
	}

	out := Breakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("breakdown: expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, Outcome{Label: key, Count: parseCount(raw)})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	*b = out
	return nil
}

// MarshalJSON emits the breakdown as a JSON object in insertion order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(o.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(o.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// parseCount accepts JSON numbers and numeric strings; anything else is 0.
func parseCount(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}
