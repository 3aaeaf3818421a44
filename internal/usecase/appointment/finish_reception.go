package appointment

import (
	"context"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

type FinishReception struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinishReception(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinishReception {
	return &FinishReception{
		repo:  repo,
		audit: audit,
	}
}

func (uc *FinishReception) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	current, ok := uc.repo.Appointment(appointmentID)
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err := domain.CanFinishReception(current.Status()); err != nil {
		return nil, err
	}

	if err := uc.repo.FinishReception(appointmentID); err != nil {
		return nil, err
	}

	ap, _ := uc.repo.Appointment(appointmentID)

	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    "reception_finished",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return &ap, nil
}
