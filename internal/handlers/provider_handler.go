package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	"github.com/BruksfildServices01/reception-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
	"github.com/BruksfildServices01/reception-scheduler/internal/validators"
)

type ProviderHandler struct {
	store *store.Store
	audit *audit.Dispatcher
}

func NewProviderHandler(st *store.Store, audit *audit.Dispatcher) *ProviderHandler {
	return &ProviderHandler{store: st, audit: audit}
}

// --------- Requests ---------

type NameRequest struct {
	Name string `json:"name"`
}

// --------- Handlers ---------

func (h *ProviderHandler) List(c *gin.Context) {
	filter := c.Query("name")

	out := make([]models.Provider, 0)
	for _, p := range h.store.Providers() {
		if validators.ContainsFold(p.Name, filter) {
			out = append(out, p)
		}
	}
	httpresp.List(c, out)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, found := h.store.Provider(id)
	if !found {
		respondError(c, store.ErrProviderNotFound)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProviderHandler) Create(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinProviderName, providerNames(h.store), 0)
	if err != nil {
		respondError(c, err)
		return
	}

	p := h.store.AddProvider(models.Provider{Name: name})
	record(c, h.audit, "provider_created", "provider", p.ID)
	httpresp.Created(c, p)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	if _, found := h.store.Provider(id); !found {
		respondError(c, store.ErrProviderNotFound)
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinProviderName, providerNames(h.store), id)
	if err != nil {
		respondError(c, err)
		return
	}

	p := models.Provider{ID: id, Name: name}
	if err := h.store.UpdateProvider(p); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "provider_updated", "provider", id)
	httpresp.OK(c, p)
}

// Delete removes the provider and, with it, all of its appointments.
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProvider(id); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "provider_deleted", "provider", id)
	c.Status(http.StatusNoContent)
}

func providerNames(st *store.Store) []validators.Named {
	ps := st.Providers()
	out := make([]validators.Named, len(ps))
	for i, p := range ps {
		out[i] = validators.Named{ID: p.ID, Name: p.Name}
	}
	return out
}

func record(c *gin.Context, d *audit.Dispatcher, action, entity string, id uint) {
	d.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(c.Request.Context()),
		Action:    action,
		Entity:    entity,
		EntityID:  &id,
	})
}
