package auth

import (
	"fmt"
	"time"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/jwt"
	"github.com/tu-usuario/taller-pro/pkg/logger"
	"github.com/tu-usuario/taller-pro/pkg/token"
)

// FailedLoginError credenciales incorrectas con el contador de intentos que
// quedan antes del bloqueo. Envuelve ErrInvalidCredentials para errors.Is.
type FailedLoginError struct {
	AttemptsRemaining int
}

func (e *FailedLoginError) Error() string {
	return fmt.Sprintf("%s (%d intentos restantes)", domain.ErrInvalidCredentials, e.AttemptsRemaining)
}

func (e *FailedLoginError) Unwrap() error { return domain.ErrInvalidCredentials }

// LockedError cuenta bloqueada, con el tiempo que falta para el desbloqueo.
// Envuelve ErrAccountLocked.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	mins := int(e.RetryAfter.Minutes()) + 1
	return fmt.Sprintf("%s, intente en %d minutos", domain.ErrAccountLocked, mins)
}

func (e *LockedError) Unwrap() error { return domain.ErrAccountLocked }

// UseCase orquesta el flujo de autenticación: credenciales en memoria,
// bloqueo por intentos, emisión del token de sesión y recuperación de
// contraseña.
type UseCase struct {
	store       *CredentialStore
	lockout     *LockoutTracker
	codec       *token.Codec
	userRepo    repository.UserRepository
	jwtSecret   string
	jwtIssuer   string
	recoveryTTL int
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(
	store *CredentialStore,
	lockout *LockoutTracker,
	codec *token.Codec,
	userRepo repository.UserRepository,
	jwtSecret, jwtIssuer string,
	recoveryTTLMinutes int,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		store:       store,
		lockout:     lockout,
		codec:       codec,
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		recoveryTTL: recoveryTTLMinutes,
		log:         log,
	}
}

// Login valida las credenciales y emite un token de sesión nuevo.
// Orden del flujo: primero el bloqueo (un intento contra una cuenta bloqueada
// NO incrementa el contador), después la verificación. El login exitoso
// limpia los intentos acumulados.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.lockout.IsLocked(req.Username) {
		uc.log.Warn().Str("username", req.Username).Msg("Intento de login sobre cuenta bloqueada")
		return nil, &LockedError{RetryAfter: uc.lockout.Remaining(req.Username)}
	}
	if !uc.store.Verify(req.Username, req.Password) {
		remaining := uc.lockout.RecordFailure(req.Username)
		if remaining < 0 {
			remaining = 0
		}
		uc.log.Warn().
			Str("username", req.Username).
			Int("attempts_remaining", remaining).
			Msg("Credenciales incorrectas")
		return nil, &FailedLoginError{AttemptsRemaining: remaining}
	}
	uc.lockout.Clear(req.Username)

	cred, _ := uc.store.Get(req.Username)
	id := token.Identity{
		Username: cred.Username,
		Role:     cred.Role,
		Name:     cred.Name,
	}
	// El id de la tabla users viaja en el token para atribuir notas y
	// asignaciones; su ausencia no bloquea el login.
	if uc.userRepo != nil {
		if u, err := uc.userRepo.GetByUsername(cred.Username); err == nil && u != nil {
			id.UserID = u.ID
		}
	}

	tok, err := uc.codec.Encode(id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", cred.Username).Str("role", cred.Role).Msg("Login exitoso")
	return &dto.LoginResponse{
		Token: tok,
		User: dto.SessionUser{
			ID:       id.UserID,
			Username: cred.Username,
			Name:     cred.Name,
			Role:     cred.Role,
		},
		RedirectTo: LandingFor(cred.Role),
	}, nil
}

// LandingFor devuelve la ruta inicial según el rol: los técnicos van directo
// a sus reparaciones y los empleados al inventario.
func LandingFor(role string) string {
	switch role {
	case entity.RoleTechnician:
		return "/reparaciones"
	case entity.RoleEmployee:
		return "/inventario"
	default:
		return "/"
	}
}

// Renew reemite el token con las marcas de tiempo actuales si su edad superó
// el umbral de renovación. Devuelve "" cuando no corresponde renovar.
func (uc *UseCase) Renew(p *token.Payload) string {
	if !uc.codec.ShouldRenew(p) {
		return ""
	}
	tok, err := uc.codec.Encode(p.Identity())
	if err != nil {
		uc.log.Error().Err(err).Msg("No se pudo renovar el token de sesión")
		return ""
	}
	return tok
}

// Reissue emite un token nuevo para la identidad dada (cambio de perfil o
// contraseña: los datos dentro del token deben reflejar el estado actual).
func (uc *UseCase) Reissue(id token.Identity) (string, error) {
	return uc.codec.Encode(id)
}

// RecoverPassword inicia el flujo de recuperación. La respuesta es neutra
// exista o no el correo: no se revela qué correos están registrados. Si el
// correo existe se emite un JWT de recuperación de vida corta; por ahora se
// registra en el log en lugar de enviarse por correo.
// TODO: enviar el token por correo cuando haya proveedor SMTP configurado.
func (uc *UseCase) RecoverPassword(email string) error {
	if email == "" {
		return domain.ErrInvalidInput
	}
	cred, found := uc.store.FindByRecoveryEmail(email)
	if !found {
		uc.log.Info().Str("email", email).Msg("Recuperación solicitada para correo no registrado")
		return nil
	}
	tok, err := jwt.GenerateRecovery(uc.jwtSecret, cred.Username, uc.jwtIssuer, uc.recoveryTTL)
	if err != nil {
		uc.log.Error().Err(err).Msg("No se pudo generar el token de recuperación")
		return nil
	}
	uc.log.Info().
		Str("username", cred.Username).
		Str("recovery_token", tok).
		Msg("Token de recuperación emitido")
	return nil
}

// ResetPassword valida el token de recuperación y fija la contraseña nueva.
func (uc *UseCase) ResetPassword(recoveryToken, newPassword string) error {
	if len(newPassword) < 4 {
		return domain.ErrInvalidInput
	}
	username, err := jwt.ParseRecovery(uc.jwtSecret, recoveryToken)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if err := uc.store.SetPassword(username, newPassword); err != nil {
		return err
	}
	uc.lockout.Clear(username)
	uc.log.Info().Str("username", username).Msg("Contraseña restablecida por recuperación")
	return nil
}

// Decode expone la verificación del token al middleware de sesión.
func (uc *UseCase) Decode(tok string) (*token.Payload, token.Failure) {
	return uc.codec.Decode(tok)
}

// TokenTTL vida del token, para el max-age de la cookie.
func (uc *UseCase) TokenTTL() time.Duration {
	return uc.codec.TTL()
}
