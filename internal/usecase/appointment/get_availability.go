package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
)

// SlotSettings is the bookable day: clocks from Start to End every
// StepMinutes.
type SlotSettings struct {
	Start       string
	End         string
	StepMinutes int
}

type GetAvailability struct {
	repo  domain.Repository
	slots SlotSettings
}

func NewGetAvailability(repo domain.Repository, slots SlotSettings) *GetAvailability {
	return &GetAvailability{repo: repo, slots: slots}
}

// Clocks lists the configured start times.
func (uc *GetAvailability) Clocks() ([]string, error) {
	return domain.GenerateTimeSlots(uc.slots.Start, uc.slots.End, uc.slots.StepMinutes)
}

// Execute splits the day into consecutive windows and marks the ones that
// are still free on date.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) ([]domain.TimeSlot, error) {

	if !domain.ValidDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	clocks, err := uc.Clocks()
	if err != nil {
		return nil, err
	}

	return domain.Availability(uc.repo.AppointmentsByDate(date), date, clocks), nil
}
