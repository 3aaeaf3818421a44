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

type CageHandler struct {
	store *store.Store
	audit *audit.Dispatcher
}

func NewCageHandler(st *store.Store, audit *audit.Dispatcher) *CageHandler {
	return &CageHandler{store: st, audit: audit}
}

// --------- Requests ---------

type CageRequest struct {
	Name  string `json:"name"`
	InUse *bool  `json:"in_use,omitempty"`
}

// --------- Handlers ---------

func (h *CageHandler) List(c *gin.Context) {
	filter := c.Query("name")

	out := make([]models.Cage, 0)
	for _, cg := range h.store.Cages() {
		if validators.ContainsFold(cg.Name, filter) {
			out = append(out, cg)
		}
	}
	httpresp.List(c, out)
}

func (h *CageHandler) Available(c *gin.Context) {
	httpresp.List(c, h.store.AvailableCages())
}

func (h *CageHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cg, found := h.store.Cage(id)
	if !found {
		respondError(c, store.ErrCageNotFound)
		return
	}
	httpresp.OK(c, cg)
}

func (h *CageHandler) Create(c *gin.Context) {
	var req CageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinCageName, cageNames(h.store), 0)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.InUse != nil && *req.InUse {
		respondError(c, store.ErrCageNotClaimed)
		return
	}

	cg := h.store.AddCage(models.Cage{Name: name})
	record(c, h.audit, "cage_created", "cage", cg.ID)
	httpresp.Created(c, cg)
}

// Update renames the cage and optionally frees it. Freeing a busy cage sends
// the appointment that held it back to SCHEDULED. Only a reception can mark a
// cage in use.
func (h *CageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	current, found := h.store.Cage(id)
	if !found {
		respondError(c, store.ErrCageNotFound)
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinCageName, cageNames(h.store), id)
	if err != nil {
		respondError(c, err)
		return
	}

	cg := models.Cage{ID: id, Name: name, InUse: current.InUse}
	if req.InUse != nil {
		cg.InUse = *req.InUse
	}
	if err := h.store.UpdateCage(cg); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "cage_updated", "cage", id)
	httpresp.OK(c, cg)
}

func (h *CageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteCage(id); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "cage_deleted", "cage", id)
	c.Status(http.StatusNoContent)
}

func cageNames(st *store.Store) []validators.Named {
	cs := st.Cages()
	out := make([]validators.Named, len(cs))
	for i, cg := range cs {
		out[i] = validators.Named{ID: cg.ID, Name: cg.Name}
	}
	return out
}
