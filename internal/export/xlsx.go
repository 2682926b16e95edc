// Package export renders an analytics report as an XLSX workbook for the
// dashboard's download button.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"call-analytics/internal/analytics"
)

const (
	sheetSummary = "Summary"
	sheetRecent  = "Recent Calls"
)

// Workbook builds a two-sheet workbook: KPI and distribution rows on
// Summary, the recent-call projection on Recent Calls.
func Workbook(rep analytics.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	put := func(label string, value any) error {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", row), &[]any{label, value}); err != nil {
			return err
		}
		row++
		return nil
	}

	s := rep.Summary
	kpis := []struct {
		label string
		value any
	}{
		{"Total calls", s.TotalCalls},
		{"Human follow-ups needed", s.HumanNeeded},
		{"Avg attempts", s.AvgAttempts},
		{"Avg duration (s)", s.AvgDuration},
		{"Handoff rate (%)", s.HandoffRate},
		{"Total hours saved", s.TotalHoursSaved},
		{"Total attempts", s.TotalAttempts},
		{"Partners contacted", s.PartnersContacted},
		{"Connected calls", s.ConnectedCalls},
	}
	for _, kpi := range kpis {
		if err := put(kpi.label, kpi.value); err != nil {
			return nil, fmt.Errorf("summary row: %w", err)
		}
	}

	row++ // blank separator
	if err := writeDistribution(f, &row, "Status", rep.StatusDistribution); err != nil {
		return nil, err
	}
	row++
	if err := writeDistribution(f, &row, "Sentiment", rep.SentimentDistribution); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetRecent); err != nil {
		return nil, fmt.Errorf("recent sheet: %w", err)
	}
	header := []any{"ID", "Phone", "Status", "Sentiment", "Human", "Summary", "Attempt", "Duration (s)", "Created at"}
	if err := f.SetSheetRow(sheetRecent, "A1", &header); err != nil {
		return nil, fmt.Errorf("recent header: %w", err)
	}
	for i, rc := range rep.RecentCalls {
		cells := []any{rc.ID, rc.Phone, rc.Status, rc.Sentiment, rc.CallHuman, rc.Summary, rc.Attempt, rc.Duration, rc.CreatedAt}
		if err := f.SetSheetRow(sheetRecent, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return nil, fmt.Errorf("recent row: %w", err)
		}
	}

	return f, nil
}

func writeDistribution(f *excelize.File, row *int, title string, dist map[string]int) error {
	if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", *row), &[]any{title, "Count"}); err != nil {
		return fmt.Errorf("%s header: %w", title, err)
	}
	*row++

	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", *row), &[]any{k, dist[k]}); err != nil {
			return fmt.Errorf("%s row: %w", title, err)
		}
		*row++
	}
	return nil
}
