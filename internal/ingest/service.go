package ingest

import (
	"context"
	"errors"
	"time"

	"call-analytics/internal/calls"
	"call-analytics/internal/normalize"
)

var ErrInvalidPayload = errors.New("ingest: phone is required")

// createdAtLayouts covers the timestamp shapes seen in the exports: full
// RFC 3339 and the naive variant without a zone (treated as UTC).
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Service turns a raw payload into a canonical CallRecord and appends it.
// Storage failures propagate as *calls.StorageError without a partial
// record; retry is the caller's concern.
type Service struct {
	repo  calls.Repository
	clock func() time.Time
}

func NewService(repo calls.Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Ingest(ctx context.Context, p Payload) (calls.CallRecord, error) {
	if s.repo == nil {
		return calls.CallRecord{}, errors.New("ingest: repository not configured")
	}

	phone := normalize.CleanPhone(p.Phone)
	if phone == "" {
		return calls.CallRecord{}, ErrInvalidPayload
	}

	rec := calls.CallRecord{
		Phone: phone,
		// "neutral" is the historical storage default for both fields.
		Status:          defaultString(p.Status, "neutral"),
		Sentiment:       defaultString(p.Sentiment, calls.SentimentNeutral),
		CallHuman:       bool(p.CallHuman),
		Summary:         p.Summary,
		Attempt:         p.Attempt.Or(1),
		DurationSeconds: p.Duration.Or(0),
		Country:         p.Country,
		CreatedAt:       s.clock().UTC(),
	}
	if rec.Attempt < 1 {
		rec.Attempt = 1
	}
	if rec.DurationSeconds < 0 {
		rec.DurationSeconds = 0
	}
	if !calls.KnownCountry(rec.Country) {
		rec.Country = normalize.Country(phone)
	}
	if p.CreatedAt != "" {
		if t, ok := parseCreatedAt(p.CreatedAt); ok {
			rec.CreatedAt = t
		}
	}

	return s.repo.Append(ctx, rec)
}

func parseCreatedAt(s string) (time.Time, bool) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
