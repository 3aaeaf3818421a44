package appointment

import (
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// ===============================
// Validations
// ===============================

// CanStartReception only allows scheduled appointments onto a cage.
func CanStartReception(current models.Status) error {
	if current != models.StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinishReception only allows closing an open reception.
func CanFinishReception(current models.Status) error {
	if current != models.StatusInReception {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialState() models.ReceptionState {
	return models.Scheduled{}
}
