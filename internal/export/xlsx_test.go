package export

import (
	"bytes"
	"testing"

	"call-analytics/internal/analytics"
)

func sampleReport() analytics.Report {
	return analytics.Report{
		Summary: analytics.Summary{
			TotalCalls:        3,
			HumanNeeded:       1,
			AvgAttempts:       1.33,
			AvgDuration:       80.0,
			HandoffRate:       33.3,
			TotalHoursSaved:   0.2,
			TotalAttempts:     4,
			PartnersContacted: 2,
			ConnectedCalls:    2,
		},
		StatusDistribution:    map[string]int{"success": 2, "voicemail": 1},
		SentimentDistribution: map[string]int{"satisfied": 2, "neutral": 1},
		RecentCalls: []analytics.RecentCall{
			{ID: 3, Phone: "+34600111222", Status: "success", Sentiment: "satisfied", Attempt: 2, Duration: 90, CreatedAt: "2025-12-01T10:00:00Z"},
			{ID: 2, Phone: "+351911222333", Status: "voicemail", Sentiment: "neutral", Attempt: 1, CreatedAt: "2025-12-01T09:00:00Z"},
		},
	}
}

func TestWorkbook_Sheets(t *testing.T) {
	wb, err := Workbook(sampleReport())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer wb.Close()

	list := wb.GetSheetList()
	if len(list) != 2 || list[0] != "Summary" || list[1] != "Recent Calls" {
		t.Fatalf("unexpected sheets: %v", list)
	}

	got, err := wb.GetCellValue("Summary", "A1")
	if err != nil || got != "Total calls" {
		t.Fatalf("A1 = %q, err %v", got, err)
	}
	got, err = wb.GetCellValue("Summary", "B1")
	if err != nil || got != "3" {
		t.Fatalf("B1 = %q, err %v", got, err)
	}

	got, err = wb.GetCellValue("Recent Calls", "B2")
	if err != nil || got != "+34600111222" {
		t.Fatalf("recent B2 = %q, err %v", got, err)
	}
	got, err = wb.GetCellValue("Recent Calls", "A3")
	if err != nil || got != "2" {
		t.Fatalf("recent A3 = %q, err %v", got, err)
	}
}

func TestWorkbook_DistributionsSorted(t *testing.T) {
	wb, err := Workbook(sampleReport())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Summary")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}

	var labels []string
	for _, r := range rows {
		if len(r) > 0 {
			labels = append(labels, r[0])
		}
	}
	idxStatus, idxSuccess, idxVoicemail := -1, -1, -1
	for i, l := range labels {
		switch l {
		case "Status":
			idxStatus = i
		case "success":
			idxSuccess = i
		case "voicemail":
			idxVoicemail = i
		}
	}
	if idxStatus < 0 || idxSuccess != idxStatus+1 || idxVoicemail != idxStatus+2 {
		t.Fatalf("status distribution not sorted after header: %v", labels)
	}
}

func TestWorkbook_WritesBytes(t *testing.T) {
	wb, err := Workbook(analytics.Report{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer wb.Close()

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("empty workbook output")
	}
}
