package models

import "time"

type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusInReception Status = "IN_RECEPTION"
	StatusFinished    Status = "FINISHED"
)

// ReceptionState is the closed set of appointment states. Each variant
// carries only the fields that are meaningful for it, so an appointment in
// reception always has a cage and a start time.
type ReceptionState interface {
	Status() Status
	receptionState()
}

type Scheduled struct{}

type InReception struct {
	CageID uint
	Start  time.Time
}

type Finished struct {
	CageID uint
	Start  time.Time
	End    time.Time
}

func (Scheduled) Status() Status   { return StatusScheduled }
func (InReception) Status() Status { return StatusInReception }
func (Finished) Status() Status    { return StatusFinished }

func (Scheduled) receptionState()   {}
func (InReception) receptionState() {}
func (Finished) receptionState()    {}
