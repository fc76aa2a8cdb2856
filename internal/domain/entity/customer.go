package entity

import "time"

// SystemCustomerPhone identifica al cliente sintético que agrupa las
// solicitudes de reposición de inventario (ver notificaciones de stock bajo).
const SystemCustomerPhone = "SISTEMA"

// Customer representa un cliente del taller.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	TaxID     string // CUIT/NIT, opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
