package storage

import (
	"testing"
	"time"

	"call-analytics/internal/calls"
)

// Repo needs a live database; keep an interface-conformance and defaults
// check that runs without one.
var _ calls.Repository = (*Repo)(nil)

func TestNewRepo_TimeoutDefault(t *testing.T) {
	r := NewRepo(nil, 0)
	if r.timeout != 5*time.Second {
		t.Fatalf("timeout default = %v", r.timeout)
	}
	r = NewRepo(nil, time.Second)
	if r.timeout != time.Second {
		t.Fatalf("explicit timeout overridden: %v", r.timeout)
	}
}
