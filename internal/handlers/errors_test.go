package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := map[string]int{
		"name_required":         http.StatusBadRequest,
		"invalid_items":         http.StatusBadRequest,
		"cage_not_found":        http.StatusNotFound,
		"appointment_not_found": http.StatusNotFound,
		"time_conflict":         http.StatusConflict,
		"cage_in_use":           http.StatusConflict,
		"invalid_state":         http.StatusConflict,
		"cage_not_claimed":      http.StatusConflict,
	}
	for code, want := range tests {
		assert.Equal(t, want, statusFor(code), code)
	}
}

func TestMessagesCoverStoreCodes(t *testing.T) {
	for _, code := range []string{"provider_not_found", "product_not_found", "cage_not_found", "appointment_not_found", "time_conflict", "cage_in_use", "invalid_state", "cage_not_claimed"} {
		_, ok := messages[code]
		assert.True(t, ok, code)
	}
	assert.Equal(t, "Solicitud inválida.", messageFor("something_new"))
}
