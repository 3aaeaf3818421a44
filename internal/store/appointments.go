package store

import (
	"sort"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reception-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

func (s *Store) Appointments() []models.Appointment {
	return cloneAppointments(s.current().Appointments)
}

func (s *Store) Appointment(id uint) (models.Appointment, bool) {
	ap, ok := find(s.current().Appointments, id)
	if !ok {
		return models.Appointment{}, false
	}
	return ap.Clone(), true
}

// AppointmentsByDate returns the appointments of one day ordered by start.
func (s *Store) AppointmentsByDate(date string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.current().Appointments {
		if ap.Date == date {
			out = append(out, ap.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// AddAppointment stores ap as a new scheduled appointment without any
// overlap check.
func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.addAppointmentLocked(ap)
	s.rec.Mutation("appointment", "add", nil)
	return created
}

// ReserveAppointment adds ap unless its window overlaps another appointment
// on the same date. Check and insert happen under one lock.
func (s *Store) ReserveAppointment(ap models.Appointment) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conflict, err := domain.FindConflict(s.current().Appointments, ap.Date, ap.StartTime, ap.EndTime)
	if err != nil {
		s.rec.Mutation("appointment", "reserve", err)
		return models.Appointment{}, err
	}
	if conflict != nil {
		s.rec.Mutation("appointment", "reserve", ErrTimeConflict)
		s.log.Debug("reservation overlaps existing appointment",
			zap.String("date", ap.Date),
			zap.String("start", ap.StartTime),
			zap.String("end", ap.EndTime),
			zap.Uint("conflicting_id", conflict.ID),
		)
		return models.Appointment{}, ErrTimeConflict
	}

	created := s.addAppointmentLocked(ap)
	s.rec.Mutation("appointment", "reserve", nil)
	return created, nil
}

func (s *Store) addAppointmentLocked(ap models.Appointment) models.Appointment {
	cur := s.current()
	next := *cur

	ap = ap.Clone()
	ap.ID = nextID(cur.Appointments, cur.Sequences.Appointments)
	ap.Reception = domain.InitialState()
	for i := range ap.Items {
		ap.Items[i].AppointmentID = ap.ID
	}

	next.Appointments = appended(cur.Appointments, ap)
	next.Sequences.Appointments = ap.ID

	s.commit(&next, changedAppointments)
	return ap.Clone()
}

// DeleteAppointment removes the appointment and frees its cage when it is
// still in reception.
func (s *Store) DeleteAppointment(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	ap, ok := find(cur.Appointments, id)
	if !ok {
		s.rec.Mutation("appointment", "delete", ErrAppointmentNotFound)
		return ErrAppointmentNotFound
	}

	next := *cur
	next.Appointments = without(cur.Appointments, id)
	changed := changedAppointments

	if st, ok := ap.Reception.(models.InReception); ok {
		next.Cages = setCageUse(cur.Cages, st.CageID, false)
		changed |= changedCages
	}

	s.commit(&next, changed)
	s.rec.Mutation("appointment", "delete", nil)
	return nil
}

// --------------------------------------------------
// Reception
// --------------------------------------------------

// StartReception assigns the cage to the appointment and marks it in use.
// It does not check that the cage is free; ClaimCage does. A cage
// previously held by the same appointment is freed.
func (s *Store) StartReception(appointmentID, cageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.startReceptionLocked(appointmentID, cageID)
	s.rec.Mutation("appointment", "start_reception", err)
	return err
}

// ClaimCage starts the reception of a scheduled appointment on a free cage.
func (s *Store) ClaimCage(appointmentID, cageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.claimCageLocked(appointmentID, cageID)
	s.rec.Mutation("appointment", "claim_cage", err)
	return err
}

func (s *Store) claimCageLocked(appointmentID, cageID uint) error {
	cur := s.current()

	ap, ok := find(cur.Appointments, appointmentID)
	if !ok {
		return ErrAppointmentNotFound
	}
	cage, ok := find(cur.Cages, cageID)
	if !ok {
		return ErrCageNotFound
	}
	if err := domain.CanStartReception(ap.Status()); err != nil {
		return err
	}
	if cage.InUse {
		return ErrCageInUse
	}

	return s.startReceptionLocked(appointmentID, cageID)
}

func (s *Store) startReceptionLocked(appointmentID, cageID uint) error {
	cur := s.current()

	i := indexOf(cur.Appointments, appointmentID)
	if i < 0 {
		return ErrAppointmentNotFound
	}
	if indexOf(cur.Cages, cageID) < 0 {
		return ErrCageNotFound
	}

	ap := cur.Appointments[i].Clone()
	released, err := domain.StartReception(&ap, cageID, s.now())
	if err != nil {
		return err
	}

	next := *cur
	next.Appointments = replaced(cur.Appointments, i, ap)
	next.Cages = setCageUse(cur.Cages, cageID, true)
	if released != 0 {
		next.Cages = setCageUse(next.Cages, released, false)
	}

	s.commit(&next, changedAppointments|changedCages)
	s.log.Debug("reception started",
		zap.Uint("appointment_id", appointmentID),
		zap.Uint("cage_id", cageID),
		zap.Uint("released_cage_id", released),
	)
	return nil
}

// FinishReception closes the reception and frees the cage.
func (s *Store) FinishReception(appointmentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.finishReceptionLocked(appointmentID)
	s.rec.Mutation("appointment", "finish_reception", err)
	return err
}

func (s *Store) finishReceptionLocked(appointmentID uint) error {
	cur := s.current()

	i := indexOf(cur.Appointments, appointmentID)
	if i < 0 {
		return ErrAppointmentNotFound
	}

	ap := cur.Appointments[i].Clone()
	cageID, err := domain.FinishReception(&ap, s.now())
	if err != nil {
		return err
	}

	next := *cur
	next.Appointments = replaced(cur.Appointments, i, ap)
	next.Cages = setCageUse(cur.Cages, cageID, false)

	s.commit(&next, changedAppointments|changedCages)
	return nil
}

// Compile-time check
var _ domain.Repository = (*Store)(nil)
