package calls

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepo_AppendAssignsIDsAndTimestamps(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Append(ctx, CallRecord{Phone: "+34600111222", Status: StatusSuccess, Country: CountrySpain})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first id = %d, want 1", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("created_at must be filled")
	}

	explicit := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	second, err := repo.Append(ctx, CallRecord{Phone: "+351911222333", Country: CountryPortugal, CreatedAt: explicit})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second id = %d, want 2", second.ID)
	}
	if !second.CreatedAt.Equal(explicit) {
		t.Fatalf("explicit created_at must be kept, got %v", second.CreatedAt)
	}
}

func TestMemoryRepo_ListFiltersByCountry(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for _, c := range []string{CountrySpain, CountryPortugal, CountrySpain} {
		if _, err := repo.Append(ctx, CallRecord{Phone: "+x", Country: c}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	pt, err := repo.List(ctx, CountryPortugal)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pt) != 1 || pt[0].Country != CountryPortugal {
		t.Fatalf("unexpected PT rows: %+v", pt)
	}

	// Mutating a returned slice must not leak into the store.
	all[0].Status = "tampered"
	again, _ := repo.List(ctx, "")
	if again[0].Status == "tampered" {
		t.Fatalf("List must return copies")
	}
}

func TestMemoryRepo_CancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Append(ctx, CallRecord{Phone: "+x"})
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "append" {
		t.Fatalf("expected append StorageError, got %v", err)
	}
	if _, err := repo.List(ctx, ""); !errors.As(err, &se) {
		t.Fatalf("expected list StorageError, got %v", err)
	}
}

func TestKnownCountry(t *testing.T) {
	for c, want := range map[string]bool{"ES": true, "PT": true, "": false, "FR": false, "es": false} {
		if got := KnownCountry(c); got != want {
			t.Fatalf("KnownCountry(%q) = %v, want %v", c, got, want)
		}
	}
}
