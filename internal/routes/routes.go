package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	"github.com/BruksfildServices01/reception-scheduler/internal/handlers"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
	ucAppointment "github.com/BruksfildServices01/reception-scheduler/internal/usecase/appointment"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Store   *store.Store
	Audit   *audit.Dispatcher
	Slots   ucAppointment.SlotSettings
	Today   func() string
	Metrics http.Handler                    // optional
	DB      *gorm.DB                        // optional, enables /api/audit-logs
	Ready   func(ctx context.Context) error // optional, /health reports degraded on error
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(deps.Store, deps.Audit)
	startReceptionUC := ucAppointment.NewStartReception(deps.Store, deps.Audit)
	finishReceptionUC := ucAppointment.NewFinishReception(deps.Store, deps.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(deps.Store, deps.Audit)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(deps.Store)
	getAvailabilityUC := ucAppointment.NewGetAvailability(deps.Store, deps.Slots)

	// ======================================================
	// HANDLERS
	// ======================================================
	providerHandler := handlers.NewProviderHandler(deps.Store, deps.Audit)
	productHandler := handlers.NewProductHandler(deps.Store, deps.Audit)
	cageHandler := handlers.NewCageHandler(deps.Store, deps.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		deps.Store,
		deps.Today,
		createBookingUC,
		startReceptionUC,
		finishReceptionUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
	)

	slotsHandler := handlers.NewSlotsHandler(getAvailabilityUC)
	watchHandler := handlers.NewWatchHandler(deps.Store)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if deps.Ready != nil {
			if err := deps.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PROVEEDORES
		// ------------------------------
		api.GET("/providers", providerHandler.List)
		api.POST("/providers", providerHandler.Create)
		api.GET("/providers/:id", providerHandler.Get)
		api.PUT("/providers/:id", providerHandler.Update)
		api.DELETE("/providers/:id", providerHandler.Delete)

		// ------------------------------
		// PRODUCTOS
		// ------------------------------
		api.GET("/products", productHandler.List)
		api.POST("/products", productHandler.Create)
		api.GET("/products/:id", productHandler.Get)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		// ------------------------------
		// JAULAS
		// ------------------------------
		api.GET("/cages", cageHandler.List)
		api.GET("/cages/available", cageHandler.Available)
		api.POST("/cages", cageHandler.Create)
		api.GET("/cages/:id", cageHandler.Get)
		api.PUT("/cages/:id", cageHandler.Update)
		api.DELETE("/cages/:id", cageHandler.Delete)

		// ------------------------------
		// TURNOS + RECEPCIÓN
		// ------------------------------
		api.GET("/appointments", appointmentHandler.ListByDate)
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)
		api.PATCH("/appointments/:id/reception/start", appointmentHandler.StartReception)
		api.PATCH("/appointments/:id/reception/finish", appointmentHandler.FinishReception)

		api.GET("/slots", slotsHandler.List)

		// ------------------------------
		// STREAM
		// ------------------------------
		api.GET("/watch/:collection", watchHandler.Stream)

		if deps.DB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)
			api.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
