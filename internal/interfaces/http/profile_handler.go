package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// ProfileHandler maneja el perfil del usuario autenticado.
type ProfileHandler struct {
	uc   *usecase.ProfileUseCase
	auth *auth.UseCase
}

// NewProfileHandler construye el handler de perfil.
func NewProfileHandler(uc *usecase.ProfileUseCase, authUC *auth.UseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc, auth: authUC}
}

// Get godoc
// @Summary      Perfil propio con correo de recuperación y etiqueta de rol
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(CurrentActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre y correo de recuperación
// @Description  Reemite la cookie de sesión: el nombre viaja dentro del token.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, recovery_email"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [patch]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tok, err := h.uc.Update(CurrentActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, tok, h.auth.TokenTTL())
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "actual, nueva y confirmación"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/profile/password [post]
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(CurrentActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
