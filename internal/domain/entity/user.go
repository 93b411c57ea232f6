package entity

import "time"

// Roles de usuario de la API.
const (
	RoleAdmin     = "admin"     // aprueba/rechaza órdenes de compra
	RoleBodeguero = "bodeguero" // opera el stock y las salidas
	RoleCentro    = "centro"    // usuario de centro de servicio (solo crea órdenes)
)

// User usuario de la aplicación.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	Role            string
	ServiceCenterID string // vacío para usuarios del almacén central
	Status          string // active | disabled
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
