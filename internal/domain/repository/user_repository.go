package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Nota: las credenciales NO viven aquí; esta tabla relaciona reparaciones y
// notas con técnicos y autores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// ListTechnicians devuelve los usuarios con rol TECHNICIAN ordenados por nombre.
	ListTechnicians() ([]*entity.User, error)
}
