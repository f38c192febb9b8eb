package entity

import "time"

// Laboratory es el tenant: agrupa usuarios (laboratorio, doctor) y órdenes por referencia.
type Laboratory struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     *string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
