package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reception-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
	"github.com/BruksfildServices01/reception-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	store  *store.Store
	today  func() string
	create *appointment.CreateBooking
	start  *appointment.StartReception
	finish *appointment.FinishReception
	delete *appointment.DeleteAppointment
	list   *appointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	st *store.Store,
	today func() string,
	create *appointment.CreateBooking,
	start *appointment.StartReception,
	finish *appointment.FinishReception,
	remove *appointment.DeleteAppointment,
	list *appointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		store:  st,
		today:  today,
		create: create,
		start:  start,
		finish: finish,
		delete: remove,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateBookingRequest struct {
	Date       string               `json:"date"`       // YYYY-MM-DD
	StartTime  string               `json:"start_time"` // HH:MM
	EndTime    string               `json:"end_time"`   // HH:MM
	ProviderID uint                 `json:"provider_id"`
	Items      []BookingItemRequest `json:"items"`
}

type StartReceptionRequest struct {
	CageID uint `json:"cage_id"`
}

// ======================================================
// LIST / GET
// ======================================================

// ListByDate lists one day's appointments; today when ?date is absent.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = h.today()
	}

	out, err := h.list.Execute(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ap, found := h.store.Appointment(id)
	if !found {
		respondError(c, store.ErrAppointmentNotFound)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CREATE / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	in := appointment.CreateBookingInput{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ProviderID: req.ProviderID,
		Items:      make([]appointment.BookingItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, appointment.BookingItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// RECEPTION
// ======================================================

func (h *AppointmentHandler) StartReception(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StartReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), id, req.CageID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) FinishReception(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.finish.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}
