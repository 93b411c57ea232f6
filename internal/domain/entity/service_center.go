package entity

import "time"

// ServiceCenter representa un centro de servicio que solicita y recibe repuestos
// del almacén central.
type ServiceCenter struct {
	ID        string
	Code      string // código único de centro
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
