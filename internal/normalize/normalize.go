// Package normalize derives the canonical call-record fields from raw
// ingestion inputs: outcome tallies, phone strings and per-call metadata.
//
// None of these functions return errors. Malformed input always degrades to
// a documented default so one bad entry can never abort a replay batch.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"call-analytics/internal/calls"
)

// StatusPriority is the dominant-outcome severity order, scanned top-down.
// One "success" among a hundred "hang up"s still resolves to success: a
// priority rule, not a majority vote.
var StatusPriority = []string{
	calls.StatusSuccess,
	calls.StatusCallbackRequested,
	calls.StatusNotInterested,
	calls.StatusAvoidCallback,
	calls.StatusNotTheRightPerson,
	calls.StatusWrongFlow,
	calls.StatusHangUp,
	calls.StatusVoicemail,
}

var sentimentByStatus = map[string]string{
	calls.StatusSuccess:           calls.SentimentSatisfied,
	calls.StatusCallbackRequested: calls.SentimentNeutral,
	calls.StatusNotInterested:     calls.SentimentUpset,
	calls.StatusAvoidCallback:     calls.SentimentUpset,
	calls.StatusNotTheRightPerson: calls.SentimentNeutral,
	calls.StatusWrongFlow:         calls.SentimentNeutral,
	calls.StatusHangUp:            calls.SentimentNeutral,
	calls.StatusVoicemail:         calls.SentimentNeutral,
}

// CleanPhone strips spaces and collapses a leading run of '+' characters to
// a single '+' (export files contain "++34..." typos). Best-effort: never
// fails, the input comes back as cleaned as possible.
func CleanPhone(raw string) string {
	cleaned := strings.ReplaceAll(raw, " ", "")
	for strings.HasPrefix(cleaned, "++") {
		cleaned = cleaned[1:]
	}
	return cleaned
}

// DominantStatus resolves a whole breakdown to the highest-severity outcome
// with a positive count. If no priority label is present it falls back to
// the first label in the breakdown, and to the "unknown" sentinel when the
// breakdown is empty.
func DominantStatus(b Breakdown) string {
	for _, status := range StatusPriority {
		if b.Get(status) > 0 {
			return status
		}
	}
	if len(b) > 0 {
		return b[0].Label
	}
	return calls.StatusUnknown
}

// Sentiment maps a status to its fixed sentiment. Unknown statuses are
// neutral.
func Sentiment(status string) string {
	if s, ok := sentimentByStatus[status]; ok {
		return s
	}
	return calls.SentimentNeutral
}

// CallHuman reports whether a status requires human follow-up: true iff the
// outcome is "callback requested". Every ingestion path uses this one rule.
func CallHuman(status string) bool {
	return status == calls.StatusCallbackRequested
}

// Country derives the country code from a cleaned phone number: Portugal
// for the +351 prefix, Spain otherwise.
func Country(phone string) string {
	if strings.HasPrefix(phone, "+351") {
		return calls.CountryPortugal
	}
	return calls.CountrySpain
}

// ComposeSummary renders "<count> <label>" for every positive count, in
// breakdown order. An empty tally yields the fixed "no calls recorded".
func ComposeSummary(b Breakdown) string {
	parts := make([]string, 0, len(b))
	for _, o := range b {
		if o.Count > 0 {
			parts = append(parts, strconv.Itoa(o.Count)+" "+o.Label)
		}
	}
	if len(parts) == 0 {
		return "no calls recorded"
	}
	return strings.Join(parts, ", ")
}

// DurationFromMinutes converts the aggregate-mode minutes-excluding-voicemail
// figure into whole seconds.
func DurationFromMinutes(minutes float64) int {
	return int(math.Round(minutes * 60))
}

// AssignAttempts returns the 1-based ordinal of each call among all calls to
// the same phone number. Input must already be ordered by timestamp
// ascending; equal timestamps keep their input order.
func AssignAttempts(phones []string) []int {
	seen := make(map[string]int, len(phones))
	out := make([]int, len(phones))
	for i, p := range phones {
		seen[p]++
		out[i] = seen[p]
	}
	return out
}
