package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	"github.com/BruksfildServices01/reception-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reception-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
	ucAppointment "github.com/BruksfildServices01/reception-scheduler/internal/usecase/appointment"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

const today = "2024-05-10"

func setup(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.New()
	st := store.New(
		store.WithClock(func() time.Time { return now }),
		store.WithRecorder(m),
	)
	st.Load(store.DemoState(now))

	d := audit.NewDispatcher(audit.NewLogSink(zap.NewNop()), 16, nil)
	t.Cleanup(d.Close)

	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, Deps{
		Store:   st,
		Audit:   d,
		Slots:   ucAppointment.SlotSettings{Start: "07:00", End: "18:00", StepMinutes: 30},
		Today:   func() string { return today },
		Metrics: m.Handler(),
	})
	return r, st
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", nil).Code)

	rec := do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `reception_store_collection_size{collection="cages"} 5`)
}

func TestHealth_DegradedWhenBackendFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := audit.NewDispatcher(audit.NewLogSink(zap.NewNop()), 1, nil)
	t.Cleanup(d.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Store: store.New(),
		Audit: d,
		Today: func() string { return today },
		Ready: func(context.Context) error { return errors.New("sqlite backend: disk I/O error") },
	})

	rec := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "sqlite backend: disk I/O error", body["error"])
}

func TestProviders_CRUDAndValidation(t *testing.T) {
	r, st := setup(t)

	rec := do(r, http.MethodPost, "/api/providers", map[string]string{"name": "  Logística Norte "})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Provider
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.Provider{ID: 4, Name: "Logística Norte"}, created)

	tests := []struct {
		name string
		body map[string]string
		code string
	}{
		{"blank", map[string]string{"name": " "}, "name_required"},
		{"short", map[string]string{"name": "AB"}, "name_too_short"},
		{"duplicate", map[string]string{"name": "distribuidora xyz"}, "name_taken"},
	}
	for _, tt := range tests {
		rec := do(r, http.MethodPost, "/api/providers", tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
		assert.Equal(t, tt.code, errorCode(t, rec), tt.name)
	}
	assert.Len(t, st.Providers(), 4, "rejected names never reach the store")

	rec = do(r, http.MethodPut, "/api/providers/2", map[string]string{"name": "DISTRIBUIDORA XYZ"})
	assert.Equal(t, http.StatusOK, rec.Code, "renaming a record to itself is allowed")

	rec = do(r, http.MethodPut, "/api/providers/99", map[string]string{"name": "Nadie"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/providers?name=sur", nil)
	var list struct {
		Data  []models.Provider `json:"data"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "Suministros Del Sur", list.Data[0].Name)

	rec = do(r, http.MethodDelete, "/api/providers/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := st.Appointment(1)
	assert.False(t, ok, "provider delete cascades")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/providers/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/providers/1", nil).Code)
}

func TestProducts_MinimumLengthIsTwo(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodPost, "/api/products", map[string]string{"name": "Té"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodPost, "/api/products", map[string]string{"name": "T"})
	assert.Equal(t, "name_too_short", errorCode(t, rec))
}

func TestCages_FreeingResetsAppointment(t *testing.T) {
	r, st := setup(t)

	rec := do(r, http.MethodGet, "/api/cages/available", nil)
	var avail struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avail))
	assert.Equal(t, 4, avail.Total)

	rec = do(r, http.MethodPut, "/api/cages/3", map[string]any{"name": "Jaula Sur 1", "in_use": false})
	require.Equal(t, http.StatusOK, rec.Code)

	ap, _ := st.Appointment(3)
	assert.Equal(t, models.StatusScheduled, ap.Status())

	rec = do(r, http.MethodPut, "/api/cages/2", map[string]any{"name": "Jaula Renombrada"})
	require.Equal(t, http.StatusOK, rec.Code)
	cage, _ := st.Cage(2)
	assert.False(t, cage.InUse, "omitted in_use keeps the current flag")
}

func TestCages_InUseOnlyThroughReception(t *testing.T) {
	r, st := setup(t)

	rec := do(r, http.MethodPut, "/api/cages/1", map[string]any{"name": "Jaula Norte 1", "in_use": true})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cage_not_claimed", errorCode(t, rec))
	cage, _ := st.Cage(1)
	assert.False(t, cage.InUse)

	rec = do(r, http.MethodPost, "/api/cages", map[string]any{"name": "Jaula Nueva", "in_use": true})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cage_not_claimed", errorCode(t, rec))
	assert.Len(t, st.Cages(), 5)
}

func TestAppointments_BookingAndReception(t *testing.T) {
	r, st := setup(t)

	booking := map[string]any{
		"date":        today,
		"start_time":  "08:30",
		"end_time":    "09:30",
		"provider_id": 2,
		"items":       []map[string]any{{"product_id": 1, "quantity": 10}},
	}
	rec := do(r, http.MethodPost, "/api/appointments", booking)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "time_conflict", errorCode(t, rec))

	booking["start_time"], booking["end_time"] = "09:00", "10:00"
	rec = do(r, http.MethodPost, "/api/appointments", booking)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ap))
	assert.Equal(t, "SCHEDULED", ap["status"])
	assert.Equal(t, 4.0, ap["id"])

	booking["items"] = []map[string]any{}
	booking["date"] = "2024-05-11"
	rec = do(r, http.MethodPost, "/api/appointments", booking)
	assert.Equal(t, "items_required", errorCode(t, rec))

	rec = do(r, http.MethodPatch, "/api/appointments/4/reception/start", map[string]any{"cage_id": 3})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cage_in_use", errorCode(t, rec))

	rec = do(r, http.MethodPatch, "/api/appointments/4/reception/start", map[string]any{"cage_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ap))
	assert.Equal(t, "IN_RECEPTION", ap["status"])
	assert.Equal(t, 1.0, ap["cage_id"])

	rec = do(r, http.MethodPatch, "/api/appointments/4/reception/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(r, http.MethodPatch, "/api/appointments/4/reception/finish", nil)
	assert.Equal(t, "invalid_state", errorCode(t, rec))

	cage, _ := st.Cage(1)
	assert.False(t, cage.InUse)

	rec = do(r, http.MethodGet, "/api/appointments", nil)
	var list struct {
		Data []struct {
			ID            uint   `json:"id"`
			StartTime     string `json:"start_time"`
			ProviderName  string `json:"provider_name"`
			TotalQuantity int    `json:"total_quantity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 4)
	assert.Equal(t, "09:00", list.Data[1].StartTime)
	assert.Equal(t, "Distribuidora XYZ", list.Data[1].ProviderName)
	assert.Equal(t, 10, list.Data[1].TotalQuantity)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/appointments?date=ayer", nil).Code)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/appointments/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/appointments/4", nil).Code)
}

func TestSlots(t *testing.T) {
	r, _ := setup(t)

	rec := do(r, http.MethodGet, "/api/slots", nil)
	var clocks struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clocks))
	assert.Len(t, clocks.Data, 23)

	rec = do(r, http.MethodGet, "/api/slots?date="+today, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"start":"08:00","end":"08:30","available":false}`)
}

func TestWatch_ReplaysSnapshot(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/watch/users", nil).Code)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/watch/cages", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event:cages\n"), body)
	assert.Contains(t, body, "Jaula Norte 1")
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}
