package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/dto"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute returns the day's appointments ordered by start, with the names a
// reception desk needs. Names of deleted records fall back to their id.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if !domain.ValidDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	appointments := uc.repo.AppointmentsByDate(date)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, uc.view(ap))
	}

	return out, nil
}

func (uc *ListAppointmentsByDate) view(ap models.Appointment) dto.AppointmentListDTO {
	v := dto.AppointmentListDTO{
		ID:            ap.ID,
		Date:          ap.Date,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
		Status:        string(ap.Status()),
		ProviderID:    ap.ProviderID,
		ProviderName:  fmt.Sprintf("Proveedor #%d", ap.ProviderID),
		TotalQuantity: ap.TotalQuantity(),
		Items:         make([]dto.AppointmentItemDTO, 0, len(ap.Items)),
	}
	if p, ok := uc.repo.Provider(ap.ProviderID); ok {
		v.ProviderName = p.Name
	}

	switch st := ap.Reception.(type) {
	case models.InReception:
		v.CageID = &st.CageID
		v.ReceptionStart = &st.Start
	case models.Finished:
		v.CageID = &st.CageID
		v.ReceptionStart = &st.Start
		v.ReceptionEnd = &st.End
	}
	if v.CageID != nil {
		name := fmt.Sprintf("Jaula #%d", *v.CageID)
		if c, ok := uc.repo.Cage(*v.CageID); ok {
			name = c.Name
		}
		v.CageName = &name
	}

	for _, it := range ap.Items {
		name := fmt.Sprintf("Producto #%d", it.ProductID)
		if p, ok := uc.repo.Product(it.ProductID); ok {
			name = p.Name
		}
		v.Items = append(v.Items, dto.AppointmentItemDTO{
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
		})
	}

	return v
}
