package store

import (
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// releaseCage resets the appointments in reception on cageID to scheduled,
// clearing the cage and reception start. Finished appointments keep their
// record. It returns the input slice untouched when nothing holds the cage.
func (s *Store) releaseCage(appts []models.Appointment, cageID uint) ([]models.Appointment, int) {
	var out []models.Appointment
	reset := 0

	for i, ap := range appts {
		st, ok := ap.Reception.(models.InReception)
		if !ok || st.CageID != cageID {
			continue
		}
		if out == nil {
			out = make([]models.Appointment, len(appts))
			copy(out, appts)
		}
		cp := ap.Clone()
		domain.ResetReception(&cp)
		out[i] = cp
		reset++
	}

	if reset == 0 {
		return appts, 0
	}

	s.log.Info("cage released, appointments rescheduled",
		zap.Uint("cage_id", cageID),
		zap.Int("appointments", reset),
	)
	return out, reset
}
