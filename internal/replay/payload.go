// Package replay turns the two offline voice-engine JSON exports into call
// records and posts them to the ingestion API with retry-on-failure.
//
// Two modes exist, mirroring the two export shapes:
//   - aggregate: one record per partner from the analysis export, using the
//     dominant-outcome rules;
//   - per-call: one record per individual call from the results export, with
//     real timestamps and per-phone attempt ordinals.
package replay

import "strconv"

// CallPayload is the wire shape POSTed to /api/calls. The export pipeline
// historically sent booleans and numbers as strings; the API tolerates both,
// and the replay client keeps the string form for byte-compatible traffic.
type CallPayload struct {
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Sentiment string `json:"sentiment"`
	CallHuman string `json:"call_human"` // "TRUE" / "FALSE"
	Summary   string `json:"summary"`
	Attempt   string `json:"attempt"`
	Duration  string `json:"duration"`
	Country   string `json:"country"`
	CreatedAt string `json:"created_at,omitempty"`
}

func boolWord(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func itoa(n int) string { return strconv.Itoa(n) }
