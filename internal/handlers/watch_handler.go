package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
)

// WatchHandler streams collection snapshots as server-sent events. The
// current snapshot is sent first, then one event per change. A slow client
// only ever receives the newest snapshot.
type WatchHandler struct {
	store *store.Store
}

func NewWatchHandler(st *store.Store) *WatchHandler {
	return &WatchHandler{store: st}
}

func (h *WatchHandler) Stream(c *gin.Context) {
	collection := c.Param("collection")

	updates := make(chan any, 1)
	// push never blocks: it runs inside the store's writer lock.
	push := func(v any) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- v:
		default:
		}
	}

	var cancel func()
	switch collection {
	case "providers":
		cancel = h.store.WatchProviders(func(v []models.Provider) { push(v) })
	case "products":
		cancel = h.store.WatchProducts(func(v []models.Product) { push(v) })
	case "cages":
		cancel = h.store.WatchCages(func(v []models.Cage) { push(v) })
	case "appointments":
		cancel = h.store.WatchAppointments(func(v []models.Appointment) { push(v) })
	default:
		respondError(c, errUnknownCollection)
		return
	}
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case v := <-updates:
			c.SSEvent(collection, v)
			c.Writer.Flush()
		}
	}
}
