package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
)

var today = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store  *store.Store
	audit  *audit.Dispatcher
	create *CreateBooking
	start  *StartReception
	finish *FinishReception
	delete *DeleteAppointment
	list   *ListAppointmentsByDate
	slots  *GetAvailability
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(store.WithClock(func() time.Time { return today }))
	st.Load(store.DemoState(today))

	d := audit.NewDispatcher(audit.NewLogSink(zap.NewNop()), 10, nil)
	t.Cleanup(d.Close)

	return &fixture{
		store:  st,
		audit:  d,
		create: NewCreateBooking(st, d),
		start:  NewStartReception(st, d),
		finish: NewFinishReception(st, d),
		delete: NewDeleteAppointment(st, d),
		list:   NewListAppointmentsByDate(st),
		slots:  NewGetAvailability(st, SlotSettings{Start: "07:00", End: "18:00", StepMinutes: 30}),
	}
}

func booking(date, start, end string) CreateBookingInput {
	return CreateBookingInput{
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		ProviderID: 2,
		Items:      []BookingItemInput{{ProductID: 1, Quantity: 5}},
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		edit func(*CreateBookingInput)
		code string
	}{
		{"missing date", func(in *CreateBookingInput) { in.Date = " " }, "missing_fields"},
		{"missing provider", func(in *CreateBookingInput) { in.ProviderID = 0 }, "missing_fields"},
		{"bad date", func(in *CreateBookingInput) { in.Date = "10/05/2024" }, "invalid_date"},
		{"bad clock", func(in *CreateBookingInput) { in.StartTime = "7h" }, "invalid_time"},
		{"start after end", func(in *CreateBookingInput) { in.StartTime, in.EndTime = "12:00", "11:00" }, "invalid_time_range"},
		{"no items", func(in *CreateBookingInput) { in.Items = nil }, "items_required"},
		{"zero quantity", func(in *CreateBookingInput) { in.Items[0].Quantity = 0 }, "invalid_items"},
		{"no product", func(in *CreateBookingInput) { in.Items[0].ProductID = 0 }, "invalid_items"},
		{"unknown provider", func(in *CreateBookingInput) { in.ProviderID = 99 }, "provider_not_found"},
		{"unknown product", func(in *CreateBookingInput) { in.Items[0].ProductID = 99 }, "product_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := booking("2024-05-11", "09:00", "10:00")
			tt.edit(&in)

			_, err := f.create.Execute(ctx, in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
	assert.Len(t, f.store.Appointments(), 3, "nothing was stored")
}

func TestCreateBooking_ConflictIsDateGlobal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := today.Format("2006-01-02")

	// demo appointment 1 runs 08:00-09:00 for another provider
	_, err := f.create.Execute(ctx, booking(date, "08:30", "09:30"))
	assert.ErrorIs(t, err, store.ErrTimeConflict)

	ap, err := f.create.Execute(ctx, booking(date, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, uint(4), ap.ID)
	assert.Equal(t, models.StatusScheduled, ap.Status())
	assert.Equal(t, []models.AppointmentItem{{AppointmentID: 4, ProductID: 1, Quantity: 5}}, ap.Items)

	_, err = f.create.Execute(ctx, booking("2024-05-11", "08:30", "09:30"))
	assert.NoError(t, err)
}

func TestReceptionFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// cage 3 is held by demo appointment 3
	_, err := f.start.Execute(ctx, 1, 3)
	assert.ErrorIs(t, err, store.ErrCageInUse)

	_, err = f.start.Execute(ctx, 1, 0)
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	_, err = f.finish.Execute(ctx, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	ap, err := f.start.Execute(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.InReception{CageID: 2, Start: today}, ap.Reception)

	_, err = f.start.Execute(ctx, 1, 4)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "already in reception")

	ap, err = f.finish.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, ap.Status())

	cage, _ := f.store.Cage(2)
	assert.False(t, cage.InUse)

	_, err = f.finish.Execute(ctx, 42)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.delete.Execute(ctx, 3))
	cage, _ := f.store.Cage(3)
	assert.False(t, cage.InUse)

	assert.ErrorIs(t, f.delete.Execute(ctx, 3), store.ErrAppointmentNotFound)
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := today.Format("2006-01-02")

	require.NoError(t, f.store.DeleteProduct(4))

	views, err := f.list.Execute(ctx, date)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Proveedor ABC S.A.", views[0].ProviderName)
	assert.Equal(t, 150, views[0].TotalQuantity)
	assert.Nil(t, views[0].CageName)

	third := views[2]
	assert.Equal(t, "IN_RECEPTION", third.Status)
	require.NotNil(t, third.CageName)
	assert.Equal(t, "Jaula Sur 1", *third.CageName)
	assert.Equal(t, "Producto #4", third.Items[1].ProductName)
	assert.Equal(t, 100, third.TotalQuantity)

	_, err = f.list.Execute(ctx, "mañana")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	views, err = f.list.Execute(ctx, "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	date := today.Format("2006-01-02")

	clocks, err := f.slots.Clocks()
	require.NoError(t, err)
	assert.Len(t, clocks, 23)

	slots, err := f.slots.Execute(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, slots, 22)

	byStart := map[string]bool{}
	for _, s := range slots {
		byStart[s.Start] = s.Available
	}
	assert.True(t, byStart["07:00"])
	assert.False(t, byStart["08:00"])
	assert.False(t, byStart["08:30"])
	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["14:30"])

	_, err = f.slots.Execute(context.Background(), "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
