package appointment

import (
	"time"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StartReception moves ap into reception on cageID. When ap was already in
// reception on another cage, that cage is returned as released so the caller
// can free it.
func StartReception(ap *models.Appointment, cageID uint, now time.Time) (released uint, err error) {
	switch st := ap.Reception.(type) {
	case models.Finished:
		return 0, httperr.ErrBusiness("invalid_state")
	case models.InReception:
		if st.CageID != cageID {
			released = st.CageID
		}
	}

	ap.Reception = models.InReception{CageID: cageID, Start: now}
	return released, nil
}

// FinishReception closes the reception and returns the cage to free.
func FinishReception(ap *models.Appointment, now time.Time) (uint, error) {
	st, ok := ap.Reception.(models.InReception)
	if !ok {
		return 0, httperr.ErrBusiness("invalid_state")
	}

	ap.Reception = models.Finished{CageID: st.CageID, Start: st.Start, End: now}
	return st.CageID, nil
}

// ResetReception drops the cage and reception times.
func ResetReception(ap *models.Appointment) {
	ap.Reception = models.Scheduled{}
}
