package analytics

// Report is the full analytics payload served to the dashboard.
// Field names follow the wire contract consumed by the frontend.

type Report struct {
	Summary               Summary        `json:"summary"`
	StatusDistribution    map[string]int `json:"status_distribution"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	CallsOverTime         []DayCount     `json:"calls_over_time"`
	DurationOverTime      []DayDuration  `json:"duration_over_time"`
	AttemptsDistribution  map[string]int `json:"attempts_distribution"`
	RecentCalls           []RecentCall   `json:"recent_calls"`
	CallsByHour           []HourCount    `json:"calls_by_hour"`
	CallsByDow            []DowCount     `json:"calls_by_dow"`
}

type Summary struct {
	TotalCalls  int `json:"total_calls"`
	HumanNeeded int `json:"human_needed"`

	AvgAttempts float64 `json:"avg_attempts"`
	AvgDuration float64 `json:"avg_duration"`

	// HandoffRate is human_needed / total_calls as a percentage, 1 decimal.
	HandoffRate float64 `json:"handoff_rate"`

	// TotalHoursSaved counts each call's duration plus a fixed 120s of
	// human overhead it replaced, in hours, 1 decimal.
	TotalHoursSaved float64 `json:"total_hours_saved"`

	TotalAttempts     int `json:"total_attempts"`
	PartnersContacted int `json:"partners_contacted"`

	// ConnectedCalls is every record whose status is not "voicemail".
	ConnectedCalls int `json:"connected_calls"`
}

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

type DayDuration struct {
	Date        string  `json:"date"`
	AvgDuration float64 `json:"avg_duration"`
}

type HourCount struct {
	Hour  int `json:"hour"` // 0-23
	Count int `json:"count"`
}

type DowCount struct {
	Dow   int `json:"dow"` // 0=Sunday .. 6=Saturday
	Count int `json:"count"`
}

type RecentCall struct {
	ID        int64  `json:"id"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Sentiment string `json:"sentiment"`
	CallHuman bool   `json:"call_human"`
	Summary   string `json:"summary"`
	Attempt   int    `json:"attempt"`
	Duration  int    `json:"duration"`
	CreatedAt string `json:"created_at"` // ISO-8601
}
