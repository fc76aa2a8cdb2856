package usecase

import (
	"regexp"
	"strings"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/pkg/logger"
	"github.com/tu-usuario/taller-pro/pkg/token"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ProfileUseCase gestiona el perfil del usuario autenticado.
type ProfileUseCase struct {
	store  *auth.CredentialStore
	authUC *auth.UseCase
	log    *logger.Logger
}

// NewProfileUseCase construye el caso de uso de perfil.
func NewProfileUseCase(store *auth.CredentialStore, authUC *auth.UseCase, log *logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{store: store, authUC: authUC, log: log}
}

// Get devuelve el perfil del actor.
func (uc *ProfileUseCase) Get(actor Actor) (*dto.ProfileResponse, error) {
	cred, ok := uc.store.Get(actor.Username)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &dto.ProfileResponse{
		Username:      cred.Username,
		Name:          cred.Name,
		Role:          cred.Role,
		RoleLabel:     entity.RoleLabel(cred.Role),
		RecoveryEmail: cred.RecoveryEmail,
		WorkShift:     cred.WorkShift,
	}, nil
}

// Update cambia nombre y correo de recuperación, y reemite el token de sesión
// para que el nombre nuevo viaje en la cookie. Devuelve el token nuevo.
func (uc *ProfileUseCase) Update(actor Actor, req dto.UpdateProfileRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 3 {
		return "", domain.ErrInvalidInput
	}
	email := strings.TrimSpace(req.RecoveryEmail)
	if email != "" && !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidInput
	}
	if err := uc.store.UpdateProfile(actor.Username, name, email); err != nil {
		return "", err
	}
	uc.log.Info().Str("username", actor.Username).Msg("Perfil actualizado")
	return uc.authUC.Reissue(token.Identity{
		Username: actor.Username,
		Role:     actor.Role,
		Name:     name,
		UserID:   actor.UserID,
	})
}

// ChangePassword cambia la contraseña del actor: la actual debe verificar,
// la nueva necesita al menos 4 caracteres y la confirmación debe coincidir.
func (uc *ProfileUseCase) ChangePassword(actor Actor, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrInvalidInput
	}
	if len(req.NewPassword) < 4 {
		return domain.ErrInvalidInput
	}
	if !uc.store.Verify(actor.Username, req.CurrentPassword) {
		return domain.ErrInvalidCredentials
	}
	if err := uc.store.SetPassword(actor.Username, req.NewPassword); err != nil {
		return err
	}
	uc.log.Info().Str("username", actor.Username).Msg("Contraseña cambiada")
	return nil
}
