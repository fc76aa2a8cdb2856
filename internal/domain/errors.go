package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUserAlreadyExists  = errors.New("el usuario ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrAccountLocked      = errors.New("cuenta bloqueada temporalmente")
	// ErrPermissionDenied cubre auto-eliminación, auto-degradación y borrado
	// de cuentas protegidas del sistema.
	ErrPermissionDenied = errors.New("operación no permitida sobre esta cuenta")
	ErrCustomerInUse    = errors.New("el cliente tiene reparaciones asociadas")
)
