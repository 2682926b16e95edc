package calls

import (
	"context"
	"fmt"
)

// Repository is the persistence contract for call records.
//
// It is append-only: no Update/Delete methods exist.
// List must return a consistent snapshot; callers never see a
// partially-written record.

type Repository interface {
	// Append atomically persists rec and returns it with the
	// storage-assigned identifier filled in.
	Append(ctx context.Context, rec CallRecord) (CallRecord, error)

	// List returns all records, optionally restricted to a country code.
	// An empty country means no filter. No ordering is guaranteed.
	List(ctx context.Context, country string) ([]CallRecord, error)
}

// StorageError wraps failures from the storage collaborator so callers can
// distinguish them from validation problems. A query returning zero rows is
// not a storage error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
