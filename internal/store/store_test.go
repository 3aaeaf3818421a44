package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

var fixedNow = time.Date(2024, 1, 1, 9, 10, 0, 0, time.UTC)

func newTestStore() *Store {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestAdd_AssignsMaxPlusOne(t *testing.T) {
	s := newTestStore()

	assert.Equal(t, uint(1), s.AddProvider(models.Provider{ID: 99, Name: "ignored id"}).ID)
	assert.Equal(t, uint(2), s.AddProvider(models.Provider{Name: "b"}).ID)
	assert.Equal(t, uint(3), s.AddProvider(models.Provider{Name: "c"}).ID)

	require.NoError(t, s.DeleteProvider(2))
	assert.Equal(t, uint(4), s.AddProvider(models.Provider{Name: "d"}).ID)

	// the newest id is not handed out again after deletion
	require.NoError(t, s.DeleteProvider(4))
	assert.Equal(t, uint(5), s.AddProvider(models.Provider{Name: "e"}).ID)
}

func TestAdd_FollowsLoadedState(t *testing.T) {
	s := newTestStore()
	s.Load(State{Cages: []models.Cage{{ID: 7, Name: "x"}, {ID: 3, Name: "y"}}})

	assert.Equal(t, uint(8), s.AddCage(models.Cage{Name: "z"}).ID)
	assert.Equal(t, uint(1), s.AddProduct(models.Product{Name: "first"}).ID)
}

func TestUpdate_MissingIDLeavesCollectionUnchanged(t *testing.T) {
	s := newTestStore()
	s.AddProduct(models.Product{Name: "a"})
	s.AddProduct(models.Product{Name: "b"})
	before := s.Products()

	err := s.UpdateProduct(models.Product{ID: 42, Name: "nope"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, before, s.Products())
}

func TestUpdate_ReplacesOnlyTargetPreservingOrder(t *testing.T) {
	s := newTestStore()
	s.AddProvider(models.Provider{Name: "a"})
	s.AddProvider(models.Provider{Name: "b"})
	s.AddProvider(models.Provider{Name: "c"})

	require.NoError(t, s.UpdateProvider(models.Provider{ID: 2, Name: "B"}))

	assert.Equal(t, []models.Provider{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "c"},
	}, s.Providers())
}

func TestDelete_MissingIDFails(t *testing.T) {
	s := newTestStore()
	assert.ErrorIs(t, s.DeleteProvider(1), ErrProviderNotFound)
	assert.ErrorIs(t, s.DeleteProduct(1), ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteCage(1), ErrCageNotFound)
	assert.ErrorIs(t, s.DeleteAppointment(1), ErrAppointmentNotFound)
}

func TestDeleteProvider_CascadesToItsAppointmentsOnly(t *testing.T) {
	s := newTestStore()
	s.AddProvider(models.Provider{Name: "p1"})
	s.AddProvider(models.Provider{Name: "p2"})
	s.AddCage(models.Cage{Name: "c1"})

	a1 := s.AddAppointment(models.Appointment{Date: "2024-01-01", StartTime: "08:00", EndTime: "09:00", ProviderID: 1})
	a2 := s.AddAppointment(models.Appointment{Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00", ProviderID: 2})
	a3 := s.AddAppointment(models.Appointment{Date: "2024-01-02", StartTime: "08:00", EndTime: "09:00", ProviderID: 1})
	require.NoError(t, s.StartReception(a3.ID, 1))

	require.NoError(t, s.DeleteProvider(1))

	appts := s.Appointments()
	require.Len(t, appts, 1)
	assert.Equal(t, a2.ID, appts[0].ID)
	_, ok := s.Appointment(a1.ID)
	assert.False(t, ok)

	cage, _ := s.Cage(1)
	assert.False(t, cage.InUse, "cage held by a removed appointment is freed")
}

func TestDeleteProduct_KeepsStaleReferences(t *testing.T) {
	s := newTestStore()
	s.AddProduct(models.Product{Name: "p"})
	ap := s.AddAppointment(models.Appointment{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "09:00", ProviderID: 1,
		Items: []models.AppointmentItem{{ProductID: 1, Quantity: 3}},
	})

	require.NoError(t, s.DeleteProduct(1))

	got, ok := s.Appointment(ap.ID)
	require.True(t, ok)
	assert.Equal(t, uint(1), got.Items[0].ProductID)
	assert.Equal(t, ap.ID, got.Items[0].AppointmentID)
}

func TestSnapshotsAreNotMutatedInPlace(t *testing.T) {
	s := newTestStore()
	s.AddProvider(models.Provider{Name: "a"})

	var seen [][]models.Provider
	cancel := s.WatchProviders(func(ps []models.Provider) { seen = append(seen, ps) })
	defer cancel()

	require.NoError(t, s.UpdateProvider(models.Provider{ID: 1, Name: "renamed"}))

	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0][0].Name)
	assert.Equal(t, "renamed", seen[1][0].Name)

	// accessor copies cannot leak back into the store
	ps := s.Providers()
	ps[0].Name = "tampered"
	got, _ := s.Provider(1)
	assert.Equal(t, "renamed", got.Name)
}

func TestWatch_ReplaysLatestThenStreamsInOrder(t *testing.T) {
	s := newTestStore()
	s.AddCage(models.Cage{Name: "c1"})

	var sizes []int
	cancel := s.WatchCages(func(cs []models.Cage) { sizes = append(sizes, len(cs)) })

	s.AddCage(models.Cage{Name: "c2"})
	s.AddCage(models.Cage{Name: "c3"})
	s.AddProduct(models.Product{Name: "unrelated"})

	assert.Equal(t, []int{1, 2, 3}, sizes)

	cancel()
	cancel()
	s.AddCage(models.Cage{Name: "c4"})
	assert.Equal(t, []int{1, 2, 3}, sizes)
	assert.Equal(t, 0, s.Watchers())
}

func TestWatch_CallbackSeesConsistentState(t *testing.T) {
	s := newTestStore()
	s.AddCage(models.Cage{Name: "c1"})
	ap := s.AddAppointment(models.Appointment{Date: "2024-01-01", StartTime: "08:00", EndTime: "09:00", ProviderID: 1})
	require.NoError(t, s.StartReception(ap.ID, 1))

	var mismatches int
	cancel := s.WatchCages(func(cs []models.Cage) {
		got, _ := s.Appointment(ap.ID)
		for _, c := range cs {
			if c.ID == 1 && c.InUse != (got.Status() == models.StatusInReception) {
				mismatches++
			}
		}
	})
	defer cancel()

	require.NoError(t, s.UpdateCage(models.Cage{ID: 1, Name: "c1", InUse: false}))
	assert.Zero(t, mismatches)
}
