package appointment

import "github.com/BruksfildServices01/reception-scheduler/internal/models"

type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Availability pairs consecutive clocks into windows and flags the ones that
// do not collide with any appointment on date.
func Availability(existing []models.Appointment, date string, clocks []string) []TimeSlot {
	if len(clocks) < 2 {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0, len(clocks)-1)
	for i := 0; i+1 < len(clocks); i++ {
		conflict, err := FindConflict(existing, date, clocks[i], clocks[i+1])
		slots = append(slots, TimeSlot{
			Start:     clocks[i],
			End:       clocks[i+1],
			Available: err == nil && conflict == nil,
		})
	}
	return slots
}
