package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// MetricsHandler maneja las métricas de productividad de técnicos.
type MetricsHandler struct {
	uc *usecase.MetricsUseCase
}

// NewMetricsHandler construye el handler de métricas.
func NewMetricsHandler(uc *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// ForPeriod godoc
// @Summary      Métricas del período (personal para técnicos, global para el dueño)
// @Tags         metrics
// @Produce      json
// @Param        month  query  int  false  "mes 1-12 (default actual)"
// @Param        year   query  int  false  "año (default actual)"
// @Success      200  {object}  dto.MetricsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/metrics [get]
func (h *MetricsHandler) ForPeriod(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	out, err := h.uc.ForPeriod(c.Context(), CurrentActor(c), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
