package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil || len(hm) != len(ClockLayout) {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ValidDate(d string) bool {
	_, err := time.Parse(DateLayout, d)
	return err == nil
}

// overlaps compares half-open intervals [aStart, aEnd) and [bStart, bEnd);
// touching endpoints do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// Overlaps reports whether the candidate window collides with an existing one.
func Overlaps(candidateStart, candidateEnd, existingStart, existingEnd string) (bool, error) {
	cs, err := ParseClock(candidateStart)
	if err != nil {
		return false, err
	}
	ce, err := ParseClock(candidateEnd)
	if err != nil {
		return false, err
	}
	es, err := ParseClock(existingStart)
	if err != nil {
		return false, err
	}
	ee, err := ParseClock(existingEnd)
	if err != nil {
		return false, err
	}
	return overlaps(cs, ce, es, ee), nil
}

// ValidateWindow checks the date and clock formats and that start < end.
func ValidateWindow(date, start, end string) error {
	if !ValidDate(date) {
		return httperr.ErrBusiness("invalid_date")
	}
	s, err := ParseClock(start)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	e, err := ParseClock(end)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if s >= e {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// FindConflict returns the first appointment on the same date whose window
// overlaps [start, end). Conflicts are date-global: provider, cage and status
// are not considered.
func FindConflict(existing []models.Appointment, date, start, end string) (*models.Appointment, error) {
	cs, err := ParseClock(start)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	ce, err := ParseClock(end)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	for i := range existing {
		ap := &existing[i]
		if ap.Date != date {
			continue
		}
		es, err := ParseClock(ap.StartTime)
		if err != nil {
			continue
		}
		ee, err := ParseClock(ap.EndTime)
		if err != nil {
			continue
		}
		if overlaps(cs, ce, es, ee) {
			return ap, nil
		}
	}
	return nil, nil
}

// GenerateTimeSlots lists clocks from start to end, both inclusive, every
// step minutes.
func GenerateTimeSlots(start, end string, step int) ([]string, error) {
	if step <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", step)
	}
	s, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, (e-s)/step+1)
	for t := s; t <= e; t += step {
		out = append(out, FormatClock(t))
	}
	return out, nil
}
