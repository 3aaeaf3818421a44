package appointment

import (
	"context"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

type StartReception struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartReception(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartReception {
	return &StartReception{
		repo:  repo,
		audit: audit,
	}
}

// Execute puts a scheduled appointment into reception on a free cage.
func (uc *StartReception) Execute(
	ctx context.Context,
	appointmentID uint,
	cageID uint,
) (*models.Appointment, error) {

	if cageID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if err := uc.repo.ClaimCage(appointmentID, cageID); err != nil {
		return nil, err
	}

	ap, ok := uc.repo.Appointment(appointmentID)
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    "reception_started",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]uint{"cage_id": cageID},
	})

	return &ap, nil
}
