package models

// Provider is a supplier that books deliveries.
type Provider struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (p Provider) Key() uint { return p.ID }
