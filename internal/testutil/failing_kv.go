package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/notecards/internal/persistence"
)

// FailingKV wraps a KeyValueStore and injects Err on the Nth SetItem call.
// Calls are counted starting at 1; FailOn 0 never fails. Reads pass
// through normally.
type FailingKV struct {
	persistence.KeyValueStore
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailingKV) SetItem(ctx context.Context, key, value string) error {
	n := f.count.Add(1)
	if f.FailOn > 0 && n == f.FailOn {
		return f.Err
	}
	return f.KeyValueStore.SetItem(ctx, key, value)
}

// Writes returns how many SetItem calls were attempted.
func (f *FailingKV) Writes() int {
	return int(f.count.Load())
}
