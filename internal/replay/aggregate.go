package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"call-analytics/internal/normalize"
)

// AnalysisEntry is one partner row of the aggregate analysis export.
type AnalysisEntry struct {
	Phone                     string              `json:"phone"`
	PartnerName               string              `json:"partner_name"`
	ResultBreakdown           normalize.Breakdown `json:"result_breakdown"`
	MinutesExcludingVoicemail float64             `json:"minutes_excluding_voicemail"`
	CallsExcludingVoicemail   int                 `json:"calls_excluding_voicemail"`
}

// LoadAnalysis reads the aggregate export. skip drops the first entries,
// used to resume a batch that was partially posted before.
func LoadAnalysis(path string, skip int) ([]AnalysisEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []AnalysisEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if skip > len(entries) {
		skip = len(entries)
	}
	return entries[skip:], nil
}

// Payload derives the canonical record fields for one partner: dominant
// status by severity, attempt = sum of ALL breakdown values (voicemail
// included), duration = minutes excluding voicemail in seconds. The
// voicemail asymmetry between attempt and duration is deliberate; both
// conventions come from the export pipeline.
func (e AnalysisEntry) Payload() CallPayload {
	phone := normalize.CleanPhone(e.Phone)
	dom := normalize.DominantStatus(e.ResultBreakdown)

	return CallPayload{
		Phone:     phone,
		Status:    dom,
		Sentiment: normalize.Sentiment(dom),
		CallHuman: boolWord(normalize.CallHuman(dom)),
		Summary:   normalize.ComposeSummary(e.ResultBreakdown),
		Attempt:   itoa(e.ResultBreakdown.Sum()),
		Duration:  itoa(normalize.DurationFromMinutes(e.MinutesExcludingVoicemail)),
		Country:   normalize.Country(phone),
	}
}
