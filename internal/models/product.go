package models

type Product struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (p Product) Key() uint { return p.ID }
