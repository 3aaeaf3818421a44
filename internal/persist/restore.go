package persist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
)

type Outcome string

const (
	OutcomeRestored Outcome = "restored"
	OutcomeSeeded   Outcome = "seeded"
	OutcomeEmpty    Outcome = "empty"
)

// Restore loads the persisted collections into st. When nothing was ever
// persisted and seed is non-nil, st is loaded with seed() instead. A
// collection whose document cannot be decoded fails the restore.
func Restore(ctx context.Context, kv core.Store, st *store.Store, seed func() store.State, log *zap.Logger) (Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		state store.State
		found int
	)
	targets := map[string]any{
		KeyProviders:    &state.Providers,
		KeyProducts:     &state.Products,
		KeyCages:        &state.Cages,
		KeyAppointments: &state.Appointments,
	}
	for _, key := range collectionKeys {
		ok, err := core.GetJSON(ctx, kv, key, targets[key])
		if err != nil {
			return "", fmt.Errorf("restore %s: %w", key, err)
		}
		if ok {
			found++
		}
	}
	if _, err := core.GetJSON(ctx, kv, KeySequences, &state.Sequences); err != nil {
		return "", fmt.Errorf("restore %s: %w", KeySequences, err)
	}

	if found == 0 {
		if seed == nil {
			log.Info("no persisted state, starting empty", zap.String("driver", string(kv.Driver())))
			return OutcomeEmpty, nil
		}
		st.Load(seed())
		log.Info("no persisted state, loaded demo data", zap.String("driver", string(kv.Driver())))
		return OutcomeSeeded, nil
	}

	st.Load(state)
	log.Info("state restored",
		zap.String("driver", string(kv.Driver())),
		zap.Int("collections", found),
	)
	return OutcomeRestored, nil
}
