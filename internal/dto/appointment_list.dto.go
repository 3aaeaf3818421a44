package dto

import "time"

type AppointmentListDTO struct {
	ID             uint                 `json:"id"`
	Date           string               `json:"date"`
	StartTime      string               `json:"start_time"`
	EndTime        string               `json:"end_time"`
	Status         string               `json:"status"`
	ProviderID     uint                 `json:"provider_id"`
	ProviderName   string               `json:"provider_name"`
	CageID         *uint                `json:"cage_id,omitempty"`
	CageName       *string              `json:"cage_name,omitempty"`
	ReceptionStart *time.Time           `json:"reception_start,omitempty"`
	ReceptionEnd   *time.Time           `json:"reception_end,omitempty"`
	TotalQuantity  int                  `json:"total_quantity"`
	Items          []AppointmentItemDTO `json:"items"`
}

type AppointmentItemDTO struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}
