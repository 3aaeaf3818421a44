package appointment

import "github.com/BruksfildServices01/reception-scheduler/internal/models"

// Repository is what the appointment use cases need from the entity store.
type Repository interface {
	// -------- Catalogue --------
	Provider(id uint) (models.Provider, bool)
	Product(id uint) (models.Product, bool)
	Cage(id uint) (models.Cage, bool)

	// -------- Appointment (read) --------
	Appointment(id uint) (models.Appointment, bool)
	AppointmentsByDate(date string) []models.Appointment

	// -------- Appointment (create / conflict) --------
	ReserveAppointment(ap models.Appointment) (models.Appointment, error)

	// -------- Appointment (state change) --------
	ClaimCage(appointmentID, cageID uint) error
	FinishReception(appointmentID uint) error
	DeleteAppointment(id uint) error
}
