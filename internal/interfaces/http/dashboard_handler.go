package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// DashboardHandler maneja la pantalla de inicio.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Home godoc
// @Summary      Datos de inicio: identidad y, para el dueño, repuestos pendientes
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       / [get]
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	out, err := h.uc.Home(CurrentActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
