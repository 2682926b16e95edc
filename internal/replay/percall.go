package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"call-analytics/internal/calls"
	"call-analytics/internal/normalize"
)

// ResultKeys maps the engine-specific field identifiers inside each result
// entry's data object. The defaults are the workflow-step UUIDs of the
// export this loader was written for; other exports can override them.
type ResultKeys struct {
	Partner  string
	Phone    string
	Duration string
	Status   string
}

func DefaultResultKeys() ResultKeys {
	return ResultKeys{
		Partner:  "019aa6c0-ee74-7df4-b3c9-ec883c90c557.data.partner_name",
		Phone:    "019b0c77-d32c-7ba0-b4b8-330cf4ffa55b.to_number",
		Duration: "019b0c78-0b08-7a01-b7d4-884e6a229ada.duration",
		Status:   "019b0c78-5a08-75cc-a580-be0799253dee.response.classification",
	}
}

// Call is one individual call flattened out of the results export.
type Call struct {
	Phone           string
	Partner         string
	DurationSeconds int
	Status          string
	Timestamp       string
	Attempt         int
}

type rawResult struct {
	Data        map[string]any `json:"data"`
	Timestamp   string         `json:"timestamp"`
	CompletedAt string         `json:"completed_at"`
}

// LoadResults parses the per-call export into a flat list ordered by
// timestamp, with per-phone attempt ordinals assigned. Entries without a
// phone number are dropped; malformed durations fall back to 0.
func LoadResults(path string, keys ResultKeys) ([]Call, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []rawResult
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]Call, 0, len(entries))
	for _, e := range entries {
		phone := normalize.CleanPhone(asString(e.Data[keys.Phone]))
		if phone == "" {
			continue
		}
		ts := e.Timestamp
		if ts == "" {
			ts = e.CompletedAt
		}
		partner := asString(e.Data[keys.Partner])
		if partner == "" {
			partner = "unknown"
		}
		status := asString(e.Data[keys.Status])
		if status == "" {
			status = calls.StatusUnknown
		}
		out = append(out, Call{
			Phone:           phone,
			Partner:         partner,
			DurationSeconds: asInt(e.Data[keys.Duration]),
			Status:          status,
			Timestamp:       ts,
		})
	}

	// ISO-8601 timestamps sort lexicographically; stable keeps input order
	// for ties so attempt ordinals are deterministic.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	phones := make([]string, len(out))
	for i := range out {
		phones[i] = out[i].Phone
	}
	for i, n := range normalize.AssignAttempts(phones) {
		out[i].Attempt = n
	}
	return out, nil
}

// Payload builds the wire record for one call: verbatim per-call duration,
// the call's own classification, and the real timestamp.
func (c Call) Payload() CallPayload {
	p := CallPayload{
		Phone:     c.Phone,
		Status:    c.Status,
		Sentiment: normalize.Sentiment(c.Status),
		CallHuman: boolWord(normalize.CallHuman(c.Status)),
		Summary:   fmt.Sprintf("%s - %s", c.Partner, c.Status),
		Attempt:   itoa(c.Attempt),
		Duration:  itoa(c.DurationSeconds),
		Country:   calls.CountrySpain,
	}
	if c.Timestamp != "" {
		p.CreatedAt = c.Timestamp
	}
	return p
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
