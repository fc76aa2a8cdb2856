package usecase

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// Actor es la identidad autenticada que ejecuta una operación, tal como viaja
// en el token de sesión.
type Actor struct {
	UserID   string // id en la tabla users (puede venir vacío en tokens viejos)
	Username string
	Name     string
	Role     string
}

// IsAdmin indica si el actor tiene privilegios de administración (rol ADMIN,
// MANAGER o la cuenta del dueño).
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleManager || a.Username == entity.OwnerUsername
}

// IsOwner indica si el actor es el dueño o un administrador.
func (a Actor) IsOwner() bool {
	return entity.IsOwner(a.Username, a.Role)
}

// IsTechnician indica si el actor es técnico.
func (a Actor) IsTechnician() bool {
	return a.Role == entity.RoleTechnician
}
