package store

import (
	"slices"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

func (s *Store) Providers() []models.Provider {
	return slices.Clone(s.current().Providers)
}

func (s *Store) Provider(id uint) (models.Provider, bool) {
	return find(s.current().Providers, id)
}

// AddProvider ignores p.ID and assigns the next id.
func (s *Store) AddProvider(p models.Provider) models.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	next := *cur

	p.ID = nextID(cur.Providers, cur.Sequences.Providers)
	next.Providers = appended(cur.Providers, p)
	next.Sequences.Providers = p.ID

	s.commit(&next, changedProviders)
	s.rec.Mutation("provider", "add", nil)
	return p
}

func (s *Store) UpdateProvider(p models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	i := indexOf(cur.Providers, p.ID)
	if i < 0 {
		s.rec.Mutation("provider", "update", ErrProviderNotFound)
		return ErrProviderNotFound
	}

	next := *cur
	next.Providers = replaced(cur.Providers, i, p)

	s.commit(&next, changedProviders)
	s.rec.Mutation("provider", "update", nil)
	return nil
}

// DeleteProvider removes the provider together with all of its
// appointments. Cages held by removed appointments are freed.
func (s *Store) DeleteProvider(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	if indexOf(cur.Providers, id) < 0 {
		s.rec.Mutation("provider", "delete", ErrProviderNotFound)
		return ErrProviderNotFound
	}

	next := *cur
	next.Providers = without(cur.Providers, id)
	changed := changedProviders

	kept := make([]models.Appointment, 0, len(cur.Appointments))
	removed := 0
	for _, ap := range cur.Appointments {
		if ap.ProviderID != id {
			kept = append(kept, ap)
			continue
		}
		removed++
		if st, ok := ap.Reception.(models.InReception); ok {
			next.Cages = setCageUse(next.Cages, st.CageID, false)
			changed |= changedCages
		}
	}

	if removed > 0 {
		next.Appointments = kept
		changed |= changedAppointments
	}

	s.commit(&next, changed)
	s.rec.Mutation("provider", "delete", nil)
	s.log.Debug("provider deleted",
		zap.Uint("provider_id", id),
		zap.Int("appointments_removed", removed),
	)
	return nil
}
