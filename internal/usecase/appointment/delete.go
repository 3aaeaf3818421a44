package appointment

import (
	"context"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, appointmentID uint) error {
	if err := uc.repo.DeleteAppointment(appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &appointmentID,
	})
	return nil
}
