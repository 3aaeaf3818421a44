package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
)

// messages holds the user-facing text for every business code.
var messages = map[string]string{
	"invalid_request":    "Datos inválidos.",
	"invalid_id":         "Identificador inválido.",
	"missing_fields":     "Complete todos los campos obligatorios.",
	"invalid_date":       "Fecha inválida.",
	"invalid_time":       "Horario inválido.",
	"invalid_time_range": "La hora de inicio debe ser anterior a la hora de fin.",
	"items_required":     "Agregue al menos un producto.",
	"invalid_items":      "Cada producto necesita una cantidad mayor o igual a 1.",
	"name_required":      "El nombre es obligatorio.",
	"name_too_short":     "El nombre es demasiado corto.",
	"name_taken":         "Ya existe un registro con ese nombre.",
	"unknown_collection": "Colección desconocida.",

	"provider_not_found":    "Proveedor no encontrado.",
	"product_not_found":     "Producto no encontrado.",
	"cage_not_found":        "Jaula no encontrada.",
	"appointment_not_found": "Turno no encontrado.",

	"time_conflict": "El horario se superpone con otro turno de la misma fecha.",
	"cage_in_use":   "La jaula ya está en uso.",
	"invalid_state": "El turno no está en un estado válido para esta operación.",

	"cage_not_claimed": "Una jaula solo se ocupa al iniciar una recepción.",
}

func statusFor(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case code == "time_conflict", code == "cage_in_use", code == "invalid_state", code == "cage_not_claimed":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Solicitud inválida."
}

// respondError writes err as a JSON error. Business errors keep their code;
// anything else is a 500.
func respondError(c *gin.Context, err error) {
	code, ok := httperr.CodeOf(err)
	if !ok {
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}
	httperr.Write(c, statusFor(code), code, messageFor(code))
}

func badRequest(c *gin.Context, code string) {
	httperr.BadRequest(c, code, messageFor(code))
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid_id")
		return 0, false
	}
	return uint(id), true
}

var errUnknownCollection = httperr.ErrBusiness("unknown_collection")
