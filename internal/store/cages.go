package store

import (
	"slices"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

func (s *Store) Cages() []models.Cage {
	return slices.Clone(s.current().Cages)
}

func (s *Store) Cage(id uint) (models.Cage, bool) {
	return find(s.current().Cages, id)
}

// AvailableCages lists the cages that are not in use.
func (s *Store) AvailableCages() []models.Cage {
	cages := s.current().Cages
	out := make([]models.Cage, 0, len(cages))
	for _, c := range cages {
		if !c.InUse {
			out = append(out, c)
		}
	}
	return out
}

// AddCage stores a new free cage. A cage only becomes busy through a
// reception, so InUse is ignored.
func (s *Store) AddCage(c models.Cage) models.Cage {
	c.InUse = false

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	next := *cur

	c.ID = nextID(cur.Cages, cur.Sequences.Cages)
	next.Cages = appended(cur.Cages, c)
	next.Sequences.Cages = c.ID

	s.commit(&next, changedCages)
	s.rec.Mutation("cage", "add", nil)
	return c
}

// UpdateCage replaces the cage. Turning an in-use cage free resets the
// appointment in reception on it, in the same commit. Marking a free cage in
// use is rejected.
func (s *Store) UpdateCage(c models.Cage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	i := indexOf(cur.Cages, c.ID)
	if i < 0 {
		s.rec.Mutation("cage", "update", ErrCageNotFound)
		return ErrCageNotFound
	}
	if !cur.Cages[i].InUse && c.InUse {
		s.rec.Mutation("cage", "update", ErrCageNotClaimed)
		return ErrCageNotClaimed
	}

	next := *cur
	next.Cages = replaced(cur.Cages, i, c)
	changed := changedCages

	if cur.Cages[i].InUse && !c.InUse {
		if appts, n := s.releaseCage(cur.Appointments, c.ID); n > 0 {
			next.Appointments = appts
			changed |= changedAppointments
		}
	}

	s.commit(&next, changed)
	s.rec.Mutation("cage", "update", nil)
	return nil
}

// DeleteCage removes the cage and resets the appointment in reception on it.
func (s *Store) DeleteCage(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	if indexOf(cur.Cages, id) < 0 {
		s.rec.Mutation("cage", "delete", ErrCageNotFound)
		return ErrCageNotFound
	}

	next := *cur
	next.Cages = without(cur.Cages, id)
	changed := changedCages

	if appts, n := s.releaseCage(cur.Appointments, id); n > 0 {
		next.Appointments = appts
		changed |= changedAppointments
	}

	s.commit(&next, changed)
	s.rec.Mutation("cage", "delete", nil)
	return nil
}

// setCageUse returns cages with the flag of cage id set to inUse. The input
// is returned unchanged when the cage is missing or already in that state.
func setCageUse(cages []models.Cage, id uint, inUse bool) []models.Cage {
	i := indexOf(cages, id)
	if i < 0 || cages[i].InUse == inUse {
		return cages
	}
	c := cages[i]
	c.InUse = inUse
	return replaced(cages, i, c)
}
