package models

// Cage is a physical receiving bay. Only one appointment may hold it while
// goods are being received.
type Cage struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	InUse bool   `json:"in_use"`
}

func (c Cage) Key() uint { return c.ID }
