package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
)

// AuthHandler maneja login, logout y recuperación de contraseña.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		var locked *auth.LockedError
		if errors.As(err, &locked) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "LOCKED", Message: locked.Error(),
			})
		}
		var failed *auth.FailedLoginError
		if errors.As(err, &failed) {
			// El contador solo se muestra cuando quedan pocos intentos; antes
			// de eso el mensaje es genérico para no regalar información.
			msg := domain.ErrInvalidCredentials.Error()
			switch {
			case failed.AttemptsRemaining <= 0:
				msg = domain.ErrAccountLocked.Error()
			case failed.AttemptsRemaining <= 2:
				msg = fmt.Sprintf("%s (%d intentos restantes)",
					domain.ErrInvalidCredentials, failed.AttemptsRemaining)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_CREDENTIALS", Message: msg,
			})
		}
		return respondError(c, err)
	}
	setSessionCookie(c, out.Token, h.uc.TokenTTL())
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Recover godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecoverRequest  true  "email"
// @Success      200   {object}  dto.SuccessResponse
// @Router       /recuperar-password [post]
func (h *AuthHandler) Recover(c *fiber.Ctx) error {
	var in dto.RecoverRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RecoverPassword(in.Email); err != nil {
		return respondError(c, err)
	}
	// Respuesta neutra exista o no el correo.
	return c.JSON(dto.SuccessResponse{
		Success: true,
		Message: "Si el correo está registrado, recibirá instrucciones de recuperación",
	})
}

// Reset godoc
// @Summary      Restablecer contraseña con token de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, new_password"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /restablecer-password [post]
func (h *AuthHandler) Reset(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(in.Token, in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Contraseña restablecida"})
}
