package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// CustomerWithCounts es un cliente con el número de reparaciones asociadas
// (para el listado).
type CustomerWithCounts struct {
	entity.Customer
	RepairCount int
}

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetByPhone se usa para deduplicar clientes al crear reparaciones.
	GetByPhone(phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	// Delete falla con ErrCustomerInUse si existen reparaciones del cliente.
	Delete(id string) error
	// List devuelve clientes (más recientes primero) con conteo de reparaciones.
	List(limit, offset int) ([]*CustomerWithCounts, error)
}
