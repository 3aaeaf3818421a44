// Package store owns the in-memory collections of providers, products, cages
// and appointments. Every successful mutation swaps in a new immutable State
// and publishes the changed collections to their watchers.
package store

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

var (
	ErrProviderNotFound    = httperr.ErrBusiness("provider_not_found")
	ErrProductNotFound     = httperr.ErrBusiness("product_not_found")
	ErrCageNotFound        = httperr.ErrBusiness("cage_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrCageInUse           = httperr.ErrBusiness("cage_in_use")
	ErrTimeConflict        = httperr.ErrBusiness("time_conflict")
	// ErrCageNotClaimed rejects marking a cage in use outside a reception.
	ErrCageNotClaimed = httperr.ErrBusiness("cage_not_claimed")
)

// Sequences holds the highest id issued per collection.
type Sequences struct {
	Providers    uint `json:"providers"`
	Products     uint `json:"products"`
	Cages        uint `json:"cages"`
	Appointments uint `json:"appointments"`
}

// State is one consistent version of every collection. Values handed out by
// the store share their backing arrays with the store and must be treated as
// read-only.
type State struct {
	Providers    []models.Provider
	Products     []models.Product
	Cages        []models.Cage
	Appointments []models.Appointment
	Sequences    Sequences
}

// Recorder observes mutations. metrics.Metrics implements it.
type Recorder interface {
	Mutation(entity, op string, err error)
	Sizes(providers, products, cages, appointments int)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, string, error) {}
func (nopRecorder) Sizes(int, int, int, int)       {}

type Option func(*Store)

// WithClock sets the source of reception timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.rec = r }
}

type Store struct {
	// mu serializes writers and publication. Readers go through state.
	mu    sync.Mutex
	state atomic.Pointer[State]

	now func() time.Time
	log *zap.Logger
	rec Recorder

	providers    topic[models.Provider]
	products     topic[models.Product]
	cages        topic[models.Cage]
	appointments topic[models.Appointment]
}

func New(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		log: zap.NewNop(),
		rec: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(&State{})
	return s
}

type changes uint8

const (
	changedProviders changes = 1 << iota
	changedProducts
	changedCages
	changedAppointments

	changedAll = changedProviders | changedProducts | changedCages | changedAppointments
)

func (s *Store) current() *State {
	return s.state.Load()
}

// commit installs next and notifies the watchers of every changed
// collection. Callers hold s.mu.
func (s *Store) commit(next *State, changed changes) {
	s.state.Store(next)

	if changed&changedProviders != 0 {
		s.providers.publish(next.Providers)
	}
	if changed&changedProducts != 0 {
		s.products.publish(next.Products)
	}
	if changed&changedCages != 0 {
		s.cages.publish(next.Cages)
	}
	if changed&changedAppointments != 0 {
		s.appointments.publish(next.Appointments)
	}

	s.rec.Sizes(len(next.Providers), len(next.Products), len(next.Cages), len(next.Appointments))
}

// Sequences returns the highest id issued per collection.
func (s *Store) Sequences() Sequences {
	return s.current().Sequences
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	cur := s.current()
	return State{
		Providers:    slices.Clone(cur.Providers),
		Products:     slices.Clone(cur.Products),
		Cages:        slices.Clone(cur.Cages),
		Appointments: cloneAppointments(cur.Appointments),
		Sequences:    cur.Sequences,
	}
}

// Load replaces the whole state, e.g. when restoring from persistence, and
// publishes every collection.
func (s *Store) Load(st State) {
	next := State{
		Providers:    slices.Clone(st.Providers),
		Products:     slices.Clone(st.Products),
		Cages:        slices.Clone(st.Cages),
		Appointments: cloneAppointments(st.Appointments),
		Sequences:    st.Sequences,
	}
	for i := range next.Appointments {
		if next.Appointments[i].Reception == nil {
			next.Appointments[i].Reception = models.Scheduled{}
		}
	}
	next.Sequences.Providers = nextID(next.Providers, next.Sequences.Providers) - 1
	next.Sequences.Products = nextID(next.Products, next.Sequences.Products) - 1
	next.Sequences.Cages = nextID(next.Cages, next.Sequences.Cages) - 1
	next.Sequences.Appointments = nextID(next.Appointments, next.Sequences.Appointments) - 1

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(&next, changedAll)
	s.log.Info("store state loaded",
		zap.Int("providers", len(next.Providers)),
		zap.Int("products", len(next.Products)),
		zap.Int("cages", len(next.Cages)),
		zap.Int("appointments", len(next.Appointments)),
	)
}

func cloneAppointments(in []models.Appointment) []models.Appointment {
	if in == nil {
		return nil
	}
	out := make([]models.Appointment, len(in))
	for i, ap := range in {
		out[i] = ap.Clone()
	}
	return out
}

// --------------------------------------------------
// Watchers
// --------------------------------------------------

// watch registers fn and immediately replays the current snapshot to it.
// fn runs while the writer lock is held: it may call the read accessors but
// must not mutate the store or cancel a watch.
func watch[T any](s *Store, t *topic[T], pick func(*State) []T, fn func([]T)) (cancel func()) {
	s.mu.Lock()
	id := t.add(fn)
	fn(pick(s.current()))
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			t.remove(id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) WatchProviders(fn func([]models.Provider)) (cancel func()) {
	return watch(s, &s.providers, func(st *State) []models.Provider { return st.Providers }, fn)
}

func (s *Store) WatchProducts(fn func([]models.Product)) (cancel func()) {
	return watch(s, &s.products, func(st *State) []models.Product { return st.Products }, fn)
}

func (s *Store) WatchCages(fn func([]models.Cage)) (cancel func()) {
	return watch(s, &s.cages, func(st *State) []models.Cage { return st.Cages }, fn)
}

func (s *Store) WatchAppointments(fn func([]models.Appointment)) (cancel func()) {
	return watch(s, &s.appointments, func(st *State) []models.Appointment { return st.Appointments }, fn)
}

// Watchers reports the number of registered watchers.
func (s *Store) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.providers.size() + s.products.size() + s.cages.size() + s.appointments.size()
}
