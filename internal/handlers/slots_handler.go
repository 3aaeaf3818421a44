package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reception-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reception-scheduler/internal/usecase/appointment"
)

type SlotsHandler struct {
	availability *appointment.GetAvailability
}

func NewSlotsHandler(availability *appointment.GetAvailability) *SlotsHandler {
	return &SlotsHandler{availability: availability}
}

// List returns the bookable clocks. With ?date it returns the day's windows
// flagged as available or taken instead.
func (h *SlotsHandler) List(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	if date == "" {
		clocks, err := h.availability.Clocks()
		if err != nil {
			respondError(c, err)
			return
		}
		httpresp.List(c, clocks)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, slots)
}
