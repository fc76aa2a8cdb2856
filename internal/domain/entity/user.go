package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
	RoleTechnician = "TECHNICIAN"
)

// Turnos de trabajo (determinan las metas mensuales de los técnicos).
const (
	ShiftFullTime = "FULL_TIME"
	ShiftHalfTime = "HALF_TIME"
)

// OwnerUsername es la cuenta del dueño: conserva privilegios de administrador
// por nombre de usuario, como en el sistema original.
const OwnerUsername = "dueño"

// User representa un usuario persistido (técnicos asignables a reparaciones).
// Las credenciales de acceso viven en el Credential Store en memoria; esta
// tabla existe para relacionar reparaciones y notas con su autor.
type User struct {
	ID        string
	Username  string
	Name      string
	Role      string // ADMIN, MANAGER, EMPLOYEE, TECHNICIAN
	WorkShift string // FULL_TIME, HALF_TIME
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner indica si el usuario tiene privilegios de dueño (rol ADMIN o la
// cuenta "dueño").
func IsOwner(username, role string) bool {
	return role == RoleAdmin || username == OwnerUsername
}

// ParseRole acepta el nombre canónico o la etiqueta legacy en español de la
// migración inconclusa del esquema. Devuelve "" si no reconoce la etiqueta.
func ParseRole(s string) string {
	switch s {
	case RoleAdmin, "ADMINISTRADOR":
		return RoleAdmin
	case RoleManager, "GERENTE":
		return RoleManager
	case RoleEmployee, "VENDEDOR", "EMPLEADO":
		return RoleEmployee
	case RoleTechnician, "TECNICO":
		return RoleTechnician
	default:
		return ""
	}
}

// RoleLabel etiqueta en español para mostrar en la interfaz.
func RoleLabel(role string) string {
	switch role {
	case RoleAdmin:
		return "Administrador"
	case RoleManager:
		return "Gerente"
	case RoleEmployee:
		return "Empleado"
	case RoleTechnician:
		return "Técnico"
	default:
		return role
	}
}

// ParseWorkShift acepta el nombre canónico o la etiqueta legacy en español.
func ParseWorkShift(s string) string {
	switch s {
	case ShiftFullTime, "TIEMPO_COMPLETO":
		return ShiftFullTime
	case ShiftHalfTime, "MEDIO_TIEMPO":
		return ShiftHalfTime
	default:
		return ""
	}
}
