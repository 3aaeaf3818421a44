package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Appointment is a reserved delivery window ("turno") for a provider.
type Appointment struct {
	ID         uint              `json:"id"`
	Date       string            `json:"date"`       // YYYY-MM-DD
	StartTime  string            `json:"start_time"` // HH:MM
	EndTime    string            `json:"end_time"`   // HH:MM
	ProviderID uint              `json:"provider_id"`
	Items      []AppointmentItem `json:"items"`

	// Reception is never nil once the appointment is stored.
	Reception ReceptionState `json:"-"`
}

// AppointmentItem is a line item ("detalle") owned by its appointment.
type AppointmentItem struct {
	AppointmentID uint `json:"appointment_id"`
	ProductID     uint `json:"product_id"`
	Quantity      int  `json:"quantity"`
}

func (a Appointment) Key() uint { return a.ID }

func (a Appointment) Status() Status {
	if a.Reception == nil {
		return StatusScheduled
	}
	return a.Reception.Status()
}

// CageID returns the cage referenced by the reception state, if any.
func (a Appointment) CageID() (uint, bool) {
	switch st := a.Reception.(type) {
	case InReception:
		return st.CageID, true
	case Finished:
		return st.CageID, true
	}
	return 0, false
}

func (a Appointment) TotalQuantity() int {
	total := 0
	for _, it := range a.Items {
		total += it.Quantity
	}
	return total
}

// Clone copies the appointment including its line items.
func (a Appointment) Clone() Appointment {
	out := a
	if a.Items != nil {
		out.Items = make([]AppointmentItem, len(a.Items))
		copy(out.Items, a.Items)
	}
	return out
}

// --------------------------------------------------
// Wire format
// --------------------------------------------------

type appointmentWire struct {
	ID             uint              `json:"id"`
	Date           string            `json:"date"`
	StartTime      string            `json:"start_time"`
	EndTime        string            `json:"end_time"`
	ProviderID     uint              `json:"provider_id"`
	Items          []AppointmentItem `json:"items"`
	Status         Status            `json:"status"`
	CageID         *uint             `json:"cage_id,omitempty"`
	ReceptionStart *time.Time        `json:"reception_start,omitempty"`
	ReceptionEnd   *time.Time        `json:"reception_end,omitempty"`
}

func (a Appointment) MarshalJSON() ([]byte, error) {
	w := appointmentWire{
		ID:         a.ID,
		Date:       a.Date,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		ProviderID: a.ProviderID,
		Items:      a.Items,
		Status:     a.Status(),
	}
	if w.Items == nil {
		w.Items = []AppointmentItem{}
	}

	switch st := a.Reception.(type) {
	case InReception:
		w.CageID = &st.CageID
		w.ReceptionStart = &st.Start
	case Finished:
		w.CageID = &st.CageID
		w.ReceptionStart = &st.Start
		w.ReceptionEnd = &st.End
	}

	return json.Marshal(w)
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	var w appointmentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	state, err := decodeReception(w)
	if err != nil {
		return fmt.Errorf("appointment %d: %w", w.ID, err)
	}

	*a = Appointment{
		ID:         w.ID,
		Date:       w.Date,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		ProviderID: w.ProviderID,
		Items:      w.Items,
		Reception:  state,
	}
	return nil
}

func decodeReception(w appointmentWire) (ReceptionState, error) {
	switch w.Status {
	case "", StatusScheduled:
		return Scheduled{}, nil

	case StatusInReception:
		if w.CageID == nil || *w.CageID == 0 || w.ReceptionStart == nil {
			return nil, fmt.Errorf("status %s requires cage_id and reception_start", w.Status)
		}
		return InReception{CageID: *w.CageID, Start: *w.ReceptionStart}, nil

	case StatusFinished:
		if w.CageID == nil || *w.CageID == 0 || w.ReceptionStart == nil || w.ReceptionEnd == nil {
			return nil, fmt.Errorf("status %s requires cage_id, reception_start and reception_end", w.Status)
		}
		return Finished{CageID: *w.CageID, Start: *w.ReceptionStart, End: *w.ReceptionEnd}, nil
	}

	return nil, fmt.Errorf("unknown status %q", w.Status)
}
