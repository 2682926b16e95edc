package calls

import "time"

// CallRecord is one persisted phone call outcome.
//
// Append-only invariant: a record is created exactly once by ingestion and
// is never updated or deleted afterwards. Analytics only reads.
//
// NOTE: This is a domain model only. Provider-specific identifiers from the
// voice engine exports stay in the replay client; they never reach storage.

type CallRecord struct {
	ID int64 `json:"id" db:"id"`

	// Phone is stored normalized: no embedded spaces, a single leading "+".
	Phone string `json:"phone" db:"phone"`

	Status    string `json:"status" db:"status"`
	Sentiment string `json:"sentiment" db:"sentiment"`

	// CallHuman marks records that require human follow-up.
	CallHuman bool `json:"call_human" db:"call_human"`

	Summary string `json:"summary" db:"summary"`

	// Attempt is the 1-based ordinal of attempts to this phone number
	// (per-call ingestion) or the total attempt tally (aggregate ingestion).
	Attempt int `json:"attempt" db:"attempt"`

	// DurationSeconds is the call length in seconds.
	DurationSeconds int `json:"duration" db:"duration"`

	// Country is a 2-letter code, currently "ES" or "PT".
	Country string `json:"country" db:"country"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Outcome vocabulary. The severity order that drives dominant-status
// resolution lives in internal/normalize; this is just the value set.
const (
	StatusSuccess           = "success"
	StatusCallbackRequested = "callback requested"
	StatusNotInterested     = "not interested"
	StatusAvoidCallback     = "avoid callback"
	StatusNotTheRightPerson = "not the right person"
	StatusWrongFlow         = "wrong flow"
	StatusHangUp            = "hang up"
	StatusVoicemail         = "voicemail"
	StatusFailed            = "failed"

	// StatusUnknown is the sentinel for an empty outcome breakdown.
	StatusUnknown = "unknown"
)

const (
	SentimentSatisfied = "satisfied"
	SentimentNeutral   = "neutral"
	SentimentUpset     = "upset"
)

const (
	CountrySpain    = "ES"
	CountryPortugal = "PT"
)

// KnownCountry reports whether code is one of the supported country codes.
func KnownCountry(code string) bool {
	return code == CountrySpain || code == CountryPortugal
}
