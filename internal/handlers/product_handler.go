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

type ProductHandler struct {
	store *store.Store
	audit *audit.Dispatcher
}

func NewProductHandler(st *store.Store, audit *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{store: st, audit: audit}
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := c.Query("name")

	out := make([]models.Product, 0)
	for _, p := range h.store.Products() {
		if validators.ContainsFold(p.Name, filter) {
			out = append(out, p)
		}
	}
	httpresp.List(c, out)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, found := h.store.Product(id)
	if !found {
		respondError(c, store.ErrProductNotFound)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinProductName, productNames(h.store), 0)
	if err != nil {
		respondError(c, err)
		return
	}

	p := h.store.AddProduct(models.Product{Name: name})
	record(c, h.audit, "product_created", "product", p.ID)
	httpresp.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	if _, found := h.store.Product(id); !found {
		respondError(c, store.ErrProductNotFound)
		return
	}

	name, err := validators.CheckName(req.Name, validators.MinProductName, productNames(h.store), id)
	if err != nil {
		respondError(c, err)
		return
	}

	p := models.Product{ID: id, Name: name}
	if err := h.store.UpdateProduct(p); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "product_updated", "product", id)
	httpresp.OK(c, p)
}

// Delete keeps appointment items that reference the product.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(id); err != nil {
		respondError(c, err)
		return
	}
	record(c, h.audit, "product_deleted", "product", id)
	c.Status(http.StatusNoContent)
}

func productNames(st *store.Store) []validators.Named {
	ps := st.Products()
	out := make([]validators.Named, len(ps))
	for i, p := range ps {
		out[i] = validators.Named{ID: p.ID, Name: p.Name}
	}
	return out
}
