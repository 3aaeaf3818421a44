package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
)

// Probe reads the sequences document to check that the backend answers. A
// key that was never written counts as reachable.
func Probe(ctx context.Context, kv core.Store) error {
	if _, err := kv.Get(ctx, KeySequences); err != nil && !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("%s backend: %w", kv.Driver(), err)
	}
	return nil
}
