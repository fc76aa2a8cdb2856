package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// UserUseCase administra los usuarios del sistema. Las credenciales viven en
// el almacén en memoria; la tabla users se mantiene sincronizada para que las
// reparaciones y notas puedan referenciar a los técnicos.
type UserUseCase struct {
	store *auth.CredentialStore
	users repository.UserRepository
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso de gestión de usuarios.
func NewUserUseCase(store *auth.CredentialStore, users repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{store: store, users: users, log: log}
}

// List devuelve los usuarios. Solo administración y dueño.
func (uc *UserUseCase) List(actor Actor) (*dto.UserListResponse, error) {
	if !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}
	creds := uc.store.List()
	out := make([]dto.UserResponse, 0, len(creds))
	for _, c := range creds {
		out = append(out, dto.UserResponse{
			Username:  c.Username,
			Name:      c.Name,
			Role:      c.Role,
			WorkShift: c.WorkShift,
		})
	}
	return &dto.UserListResponse{Users: out}, nil
}

// Create da de alta un usuario nuevo en el almacén de credenciales y lo
// refleja en la tabla users.
func (uc *UserUseCase) Create(actor Actor, req dto.CreateUserRequest) error {
	if !actor.IsOwner() {
		return domain.ErrForbidden
	}
	username := strings.TrimSpace(req.Username)
	name := strings.TrimSpace(req.Name)
	if username == "" || name == "" || len(req.Password) < 4 {
		return domain.ErrInvalidInput
	}
	role := entity.ParseRole(req.Role)
	if role == "" {
		return domain.ErrInvalidInput
	}
	shift := entity.ParseWorkShift(req.WorkShift)
	if shift == "" {
		shift = entity.ShiftFullTime
	}
	if err := uc.store.Create(username, req.Password, name, role, shift); err != nil {
		return err
	}
	uc.syncUserRow(username, name, role, shift)
	uc.log.Info().Str("username", username).Str("role", role).Str("by", actor.Username).Msg("Usuario creado")
	return nil
}

// Update cambia rol y turno. La auto-degradación de ADMIN la rechaza el
// almacén con ErrPermissionDenied.
func (uc *UserUseCase) Update(actor Actor, username string, req dto.UpdateUserRequest) error {
	if !actor.IsOwner() {
		return domain.ErrForbidden
	}
	role := entity.ParseRole(req.Role)
	if role == "" {
		return domain.ErrInvalidInput
	}
	shift := entity.ParseWorkShift(req.WorkShift)
	if err := uc.store.UpdateRoleShift(actor.Username, username, role, shift); err != nil {
		return err
	}
	if u, err := uc.users.GetByUsername(username); err == nil && u != nil {
		u.Role = role
		if shift != "" {
			u.WorkShift = shift
		}
		if err := uc.users.Update(u); err != nil {
			uc.log.Warn().Err(err).Str("username", username).Msg("No se pudo sincronizar la tabla users")
		}
	}
	uc.log.Info().Str("username", username).Str("role", role).Str("by", actor.Username).Msg("Usuario actualizado")
	return nil
}

// Delete elimina un usuario. Cuentas protegidas y auto-eliminación las
// rechaza el almacén.
func (uc *UserUseCase) Delete(actor Actor, username string) error {
	if !actor.IsOwner() {
		return domain.ErrForbidden
	}
	if err := uc.store.Remove(actor.Username, username); err != nil {
		return err
	}
	if u, err := uc.users.GetByUsername(username); err == nil && u != nil {
		if err := uc.users.Delete(u.ID); err != nil {
			uc.log.Warn().Err(err).Str("username", username).Msg("No se pudo eliminar la fila de users")
		}
	}
	uc.log.Info().Str("username", username).Str("by", actor.Username).Msg("Usuario eliminado")
	return nil
}

// syncUserRow crea o actualiza la fila en la tabla users. Si falla solo se
// registra: el login sigue funcionando, pero el usuario no podrá recibir
// reparaciones hasta que exista la fila.
func (uc *UserUseCase) syncUserRow(username, name, role, shift string) {
	existing, err := uc.users.GetByUsername(username)
	if err != nil {
		uc.log.Warn().Err(err).Str("username", username).Msg("No se pudo consultar la tabla users")
		return
	}
	if existing != nil {
		existing.Name = name
		existing.Role = role
		existing.WorkShift = shift
		err = uc.users.Update(existing)
	} else {
		err = uc.users.Create(&entity.User{
			ID:        uuid.NewString(),
			Username:  username,
			Name:      name,
			Role:      role,
			WorkShift: shift,
		})
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("username", username).Msg("No se pudo sincronizar la tabla users")
	}
}
