package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"call-analytics/internal/calls"
)

func TestPayload_FlexibleFieldTypes(t *testing.T) {
	raw := []byte(`{
		"phone": "++34 600 111 222",
		"status": "success",
		"sentiment": "satisfied",
		"call_human": "TRUE",
		"attempt": "3",
		"duration": "120",
		"country": "ES"
	}`)
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !bool(p.CallHuman) {
		t.Fatalf("call_human string TRUE must parse as true")
	}
	if p.Attempt.Or(1) != 3 || p.Duration.Or(0) != 120 {
		t.Fatalf("numeric strings must parse: %+v", p)
	}

	raw = []byte(`{"phone": "+34600", "call_human": false, "attempt": 2, "duration": 45}`)
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if bool(p.CallHuman) || p.Attempt.Or(1) != 2 || p.Duration.Or(0) != 45 {
		t.Fatalf("native types must parse: %+v", p)
	}

	raw = []byte(`{"phone": "+34600", "call_human": "yes", "attempt": "lots", "duration": null}`)
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if bool(p.CallHuman) {
		t.Fatalf("only TRUE is truthy")
	}
	if p.Attempt.Or(1) != 1 || p.Duration.Or(0) != 0 {
		t.Fatalf("malformed numerics must fall back: %+v", p)
	}
}

func TestIngest_NormalizesAndAppends(t *testing.T) {
	repo := calls.NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	rec, err := svc.Ingest(context.Background(), Payload{
		Phone:     "++351 911 222333",
		Status:    "success",
		Sentiment: "satisfied",
		CallHuman: FlexBool(false),
		Summary:   "all good",
		Attempt:   FlexInt{Value: 2, OK: true},
		Duration:  FlexInt{Value: 90, OK: true},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.ID == 0 {
		t.Fatalf("expected storage-assigned id")
	}
	if rec.Phone != "+351911222333" {
		t.Fatalf("phone not cleaned: %q", rec.Phone)
	}
	if rec.Country != calls.CountryPortugal {
		t.Fatalf("country not derived from prefix: %q", rec.Country)
	}
	if !rec.CreatedAt.Equal(now) {
		t.Fatalf("created_at must default to ingestion time, got %v", rec.CreatedAt)
	}
}

func TestIngest_Defaults(t *testing.T) {
	repo := calls.NewMemoryRepo()
	svc := NewService(repo)

	rec, err := svc.Ingest(context.Background(), Payload{Phone: "+34600111222"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Status != "neutral" || rec.Sentiment != "neutral" {
		t.Fatalf("expected neutral defaults: %+v", rec)
	}
	if rec.Attempt != 1 || rec.DurationSeconds != 0 {
		t.Fatalf("expected attempt 1 and duration 0: %+v", rec)
	}
	if rec.Country != calls.CountrySpain {
		t.Fatalf("expected ES default: %q", rec.Country)
	}
}

func TestIngest_ExplicitCreatedAt(t *testing.T) {
	repo := calls.NewMemoryRepo()
	svc := NewService(repo)

	rec, err := svc.Ingest(context.Background(), Payload{
		Phone:     "+34600111222",
		CreatedAt: "2025-11-20T10:15:30Z",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := time.Date(2025, 11, 20, 10, 15, 30, 0, time.UTC)
	if !rec.CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v, want %v", rec.CreatedAt, want)
	}

	// naive timestamps are treated as UTC
	rec, err = svc.Ingest(context.Background(), Payload{
		Phone:     "+34600111222",
		CreatedAt: "2025-11-20T10:15:30",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !rec.CreatedAt.Equal(want) {
		t.Fatalf("naive created_at = %v, want %v", rec.CreatedAt, want)
	}
}

func TestIngest_MissingPhoneRejected(t *testing.T) {
	svc := NewService(calls.NewMemoryRepo())
	_, err := svc.Ingest(context.Background(), Payload{Summary: "no phone"})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

type downRepo struct{}

func (downRepo) Append(ctx context.Context, rec calls.CallRecord) (calls.CallRecord, error) {
	return calls.CallRecord{}, &calls.StorageError{Op: "append", Err: errors.New("connection refused")}
}

func (downRepo) List(ctx context.Context, country string) ([]calls.CallRecord, error) {
	return nil, &calls.StorageError{Op: "list", Err: errors.New("connection refused")}
}

func TestIngest_StorageErrorPropagates(t *testing.T) {
	svc := NewService(downRepo{})
	_, err := svc.Ingest(context.Background(), Payload{Phone: "+34600111222"})
	var storageErr *calls.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}
