package calls

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repository for tests and early development.
// It copies on both write and read so callers can never observe a
// half-applied record.

type MemoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []CallRecord
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{nextID: 1} }

func (r *MemoryRepo) Append(ctx context.Context, rec CallRecord) (CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return CallRecord{}, &StorageError{Op: "append", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *MemoryRepo) List(ctx context.Context, country string) ([]CallRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CallRecord, 0, len(r.records))
	for _, rec := range r.records {
		if country != "" && rec.Country != country {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
