package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// PartsHandler maneja el mostrador de repuestos (solo dueño/admin).
type PartsHandler struct {
	uc *usecase.PartsUseCase
}

// NewPartsHandler construye el handler de repuestos.
func NewPartsHandler(uc *usecase.PartsUseCase) *PartsHandler {
	return &PartsHandler{uc: uc}
}

// Overview godoc
// @Summary      Vista del mostrador: pendientes, comprados, recibidos y totales
// @Tags         parts
// @Produce      json
// @Success      200  {object}  dto.PartsOverviewResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/parts [get]
func (h *PartsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(CurrentActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPurchased godoc
// @Summary      Marcar repuestos como comprados con días estimados de llegada
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkPurchasedRequest  true  "repair_id y días"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/parts/purchased [post]
func (h *PartsHandler) MarkPurchased(c *fiber.Ctx) error {
	var in dto.MarkPurchasedRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.MarkPurchased(CurrentActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// SetArrival godoc
// @Summary      Registrar tiempo de llegada estimado de los repuestos
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetArrivalRequest  true  "repair_id y días"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/parts/arrival [post]
func (h *PartsHandler) SetArrival(c *fiber.Ctx) error {
	var in dto.SetArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetArrival(CurrentActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
