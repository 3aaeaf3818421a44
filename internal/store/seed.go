package store

import (
	"time"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// DemoState is the catalogue used to populate an empty installation. Three
// appointments land on today's date; the third is already being received in
// cage 3.
func DemoState(today time.Time) State {
	date := today.Format("2006-01-02")
	loc := today.Location()
	receptionStart := time.Date(today.Year(), today.Month(), today.Day(), 14, 5, 0, 0, loc)

	return State{
		Providers: []models.Provider{
			{ID: 1, Name: "Proveedor ABC S.A."},
			{ID: 2, Name: "Distribuidora XYZ"},
			{ID: 3, Name: "Suministros Del Sur"},
		},
		Products: []models.Product{
			{ID: 1, Name: "Producto A"},
			{ID: 2, Name: "Producto B"},
			{ID: 3, Name: "Producto C"},
			{ID: 4, Name: "Producto D"},
		},
		Cages: []models.Cage{
			{ID: 1, Name: "Jaula Norte 1"},
			{ID: 2, Name: "Jaula Norte 2"},
			{ID: 3, Name: "Jaula Sur 1", InUse: true},
			{ID: 4, Name: "Jaula Sur 2"},
			{ID: 5, Name: "Jaula Este 1"},
		},
		Appointments: []models.Appointment{
			{
				ID: 1, Date: date, StartTime: "08:00", EndTime: "09:00", ProviderID: 1,
				Items: []models.AppointmentItem{
					{AppointmentID: 1, ProductID: 1, Quantity: 100},
					{AppointmentID: 1, ProductID: 2, Quantity: 50},
				},
				Reception: models.Scheduled{},
			},
			{
				ID: 2, Date: date, StartTime: "10:30", EndTime: "11:30", ProviderID: 2,
				Items: []models.AppointmentItem{
					{AppointmentID: 2, ProductID: 3, Quantity: 200},
				},
				Reception: models.Scheduled{},
			},
			{
				ID: 3, Date: date, StartTime: "14:00", EndTime: "15:00", ProviderID: 3,
				Items: []models.AppointmentItem{
					{AppointmentID: 3, ProductID: 1, Quantity: 75},
					{AppointmentID: 3, ProductID: 4, Quantity: 25},
				},
				Reception: models.InReception{CageID: 3, Start: receptionStart},
			},
		},
	}
}
