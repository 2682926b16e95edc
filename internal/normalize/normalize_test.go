package normalize

import (
	"encoding/json"
	"testing"

	"call-analytics/internal/calls"
)

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"++351 911 222333", "+351911222333"},
		{"+34 600 111 222", "+34600111222"},
		{"+++34123", "+34123"},
		{"  34 123 ", "34123"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanPhone(c.in); got != c.want {
			t.Fatalf("CleanPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDominantStatus_PriorityBeatsFrequency(t *testing.T) {
	b := Breakdown{
		{Label: calls.StatusHangUp, Count: 100},
		{Label: calls.StatusSuccess, Count: 1},
	}
	if got := DominantStatus(b); got != calls.StatusSuccess {
		t.Fatalf("expected success, got %q", got)
	}
}

func TestDominantStatus_FallbackFirstKey(t *testing.T) {
	b := Breakdown{
		{Label: "weird outcome", Count: 3},
		{Label: "another", Count: 5},
	}
	if got := DominantStatus(b); got != "weird outcome" {
		t.Fatalf("expected first key fallback, got %q", got)
	}
}

func TestDominantStatus_EmptyBreakdown(t *testing.T) {
	if got := DominantStatus(Breakdown{}); got != calls.StatusUnknown {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestSentiment(t *testing.T) {
	cases := map[string]string{
		calls.StatusSuccess:           calls.SentimentSatisfied,
		calls.StatusNotInterested:     calls.SentimentUpset,
		calls.StatusAvoidCallback:     calls.SentimentUpset,
		calls.StatusCallbackRequested: calls.SentimentNeutral,
		calls.StatusNotTheRightPerson: calls.SentimentNeutral,
		calls.StatusWrongFlow:         calls.SentimentNeutral,
		calls.StatusHangUp:            calls.SentimentNeutral,
		calls.StatusVoicemail:         calls.SentimentNeutral,
		"never seen before":           calls.SentimentNeutral,
	}
	for status, want := range cases {
		if got := Sentiment(status); got != want {
			t.Fatalf("Sentiment(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestCallHuman_OnlyCallbackRequested(t *testing.T) {
	if !CallHuman(calls.StatusCallbackRequested) {
		t.Fatalf("callback requested must need a human")
	}
	for _, status := range []string{calls.StatusSuccess, calls.StatusHangUp, calls.StatusVoicemail, calls.StatusUnknown} {
		if CallHuman(status) {
			t.Fatalf("%q must not need a human", status)
		}
	}
}

func TestCountry(t *testing.T) {
	if got := Country("+351911222333"); got != calls.CountryPortugal {
		t.Fatalf("expected PT, got %q", got)
	}
	if got := Country("+34600111222"); got != calls.CountrySpain {
		t.Fatalf("expected ES, got %q", got)
	}
}

func TestComposeSummary(t *testing.T) {
	b := Breakdown{
		{Label: calls.StatusSuccess, Count: 1},
		{Label: calls.StatusVoicemail, Count: 0},
		{Label: calls.StatusHangUp, Count: 9},
	}
	if got := ComposeSummary(b); got != "1 success, 9 hang up" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := ComposeSummary(Breakdown{}); got != "no calls recorded" {
		t.Fatalf("expected sentinel summary, got %q", got)
	}
	zeroOnly := Breakdown{{Label: calls.StatusHangUp, Count: 0}}
	if got := ComposeSummary(zeroOnly); got != "no calls recorded" {
		t.Fatalf("expected sentinel summary for zero counts, got %q", got)
	}
}

func TestDurationFromMinutes(t *testing.T) {
	if got := DurationFromMinutes(2.5); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
	if got := DurationFromMinutes(0.005); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := DurationFromMinutes(1.0125); got != 61 {
		t.Fatalf("expected 61 (60.75 rounds up), got %d", got)
	}
}

func TestAssignAttempts(t *testing.T) {
	phones := []string{"a", "b", "a", "a", "b"}
	got := AssignAttempts(phones)
	want := []int{1, 1, 2, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("attempt[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBreakdown_UnmarshalPreservesOrder(t *testing.T) {
	raw := []byte(`{"hang up": 9, "success": 1, "voicemail": 4}`)
	var b Breakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(b) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(b))
	}
	if b[0].Label != "hang up" || b[1].Label != "success" || b[2].Label != "voicemail" {
		t.Fatalf("order lost: %+v", b)
	}
	if b.Get("hang up") != 9 || b.Sum() != 14 {
		t.Fatalf("unexpected counts: %+v", b)
	}
}

func TestBreakdown_MalformedCountsFallBackToZero(t *testing.T) {
	raw := []byte(`{"success": "2", "hang up": "bogus", "voicemail": null}`)
	var b Breakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.Get("success") != 2 {
		t.Fatalf("numeric string should parse, got %d", b.Get("success"))
	}
	if b.Get("hang up") != 0 || b.Get("voicemail") != 0 {
		t.Fatalf("malformed counts must be 0: %+v", b)
	}
}

func TestBreakdown_MarshalRoundTrip(t *testing.T) {
	b := Breakdown{
		{Label: "hang up", Count: 9},
		{Label: "success", Count: 1},
	}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var back Breakdown
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if back[0].Label != "hang up" || back[1].Label != "success" {
		t.Fatalf("round trip lost order: %s", raw)
	}
}
