package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookingItemInput struct {
	ProductID uint
	Quantity  int
}

type CreateBookingInput struct {
	Date       string
	StartTime  string
	EndTime    string
	ProviderID uint
	Items      []BookingItemInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Campos obligatorios
	// --------------------------------------------------
	in.Date = strings.TrimSpace(in.Date)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)

	if in.Date == "" || in.StartTime == "" || in.EndTime == "" || in.ProviderID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// --------------------------------------------------
	// 2. Fecha y horario
	// --------------------------------------------------
	if err := domain.ValidateWindow(in.Date, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Detalle
	// --------------------------------------------------
	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("items_required")
	}
	for _, it := range in.Items {
		if it.ProductID == 0 || it.Quantity < 1 {
			return nil, httperr.ErrBusiness("invalid_items")
		}
	}

	// --------------------------------------------------
	// 4. Proveedor y productos
	// --------------------------------------------------
	if _, ok := uc.repo.Provider(in.ProviderID); !ok {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	items := make([]models.AppointmentItem, 0, len(in.Items))
	for _, it := range in.Items {
		if _, ok := uc.repo.Product(it.ProductID); !ok {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		items = append(items, models.AppointmentItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	// --------------------------------------------------
	// 5. Reserva (conflicto + alta en un paso)
	// --------------------------------------------------
	ap, err := uc.repo.ReserveAppointment(models.Appointment{
		Date:       in.Date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		ProviderID: in.ProviderID,
		Items:      items,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"date":        ap.Date,
			"start_time":  ap.StartTime,
			"end_time":    ap.EndTime,
			"provider_id": ap.ProviderID,
		},
	})

	return &ap, nil
}
