package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// RepairHandler maneja las órdenes de reparación.
type RepairHandler struct {
	uc *usecase.RepairUseCase
}

// NewRepairHandler construye el handler de reparaciones.
func NewRepairHandler(uc *usecase.RepairUseCase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

// List godoc
// @Summary      Listar reparaciones (técnicos ven solo las propias sin terminar)
// @Tags         repairs
// @Produce      json
// @Success      200  {object}  dto.RepairListResponse
// @Router       /api/repairs [get]
func (h *RepairHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(CurrentActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar reparaciones terminadas (mínimo 2 caracteres, sin acentos)
// @Tags         repairs
// @Produce      json
// @Param        q      query  string  true   "término de búsqueda"
// @Param        limit  query  int     false  "máximo de resultados"
// @Success      200  {array}  dto.RepairResponse
// @Router       /api/repairs/search [get]
func (h *RepairHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	out, err := h.uc.Search(c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener una reparación con cliente, técnico y notas
// @Tags         repairs
// @Produce      json
// @Param        id  path  string  true  "id de la reparación"
// @Success      200  {object}  dto.RepairResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [get]
func (h *RepairHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(CurrentActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear reparación (crea el cliente por teléfono si no existe)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRepairRequest  true  "equipo, falla y datos del cliente"
// @Success      201   {object}  dto.RepairResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/repairs [post]
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(CurrentActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado (acepta etiquetas canónicas y legacy)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "id de la reparación"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/status [patch]
func (h *RepairHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateStatus(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// AddNote godoc
// @Summary      Agregar nota al historial
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "id de la reparación"
// @Param        body  body  dto.AddNoteRequest  true  "text"
// @Success      200   {object}  dto.SuccessResponse
// @Router       /api/repairs/{id}/notes [post]
func (h *RepairHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.AddNote(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdateCosts godoc
// @Summary      Actualizar costos (mano de obra + repuestos recalcula el final)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id de la reparación"
// @Param        body  body  dto.UpdateCostsRequest  true  "costos parciales"
// @Success      200   {object}  dto.SuccessResponse
// @Router       /api/repairs/{id}/costs [patch]
func (h *RepairHandler) UpdateCosts(c *fiber.Ctx) error {
	var in dto.UpdateCostsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateCosts(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdateLink godoc
// @Summary      Guardar link de compra del repuesto
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id de la reparación"
// @Param        body  body  dto.UpdateLinkRequest  true  "purchase_link, parts_description"
// @Success      200   {object}  dto.SuccessResponse
// @Router       /api/repairs/{id}/parts-link [patch]
func (h *RepairHandler) UpdateLink(c *fiber.Ctx) error {
	var in dto.UpdateLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateLink(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// AssignTechnician godoc
// @Summary      Asignar técnico (solo admin; SIN_ASIGNAR pasa a EN_REVISION)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "id de la reparación"
// @Param        body  body  dto.AssignTechnicianRequest  true  "technician_id"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/technician [patch]
func (h *RepairHandler) AssignTechnician(c *fiber.Ctx) error {
	var in dto.AssignTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.AssignTechnician(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Complete godoc
// @Summary      Completar reparación (trabajo realizado obligatorio)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "id de la reparación"
// @Param        body  body  dto.CompleteRepairRequest  true  "trabajo y costos finales"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/complete [post]
func (h *RepairHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Complete(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// SaveWork godoc
// @Summary      Guardar avance del trabajo sin completar
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "id de la reparación"
// @Param        body  body  dto.SaveWorkRequest  true  "diagnóstico, trabajo, progreso"
// @Success      200   {object}  dto.SuccessResponse
// @Router       /api/repairs/{id}/work [patch]
func (h *RepairHandler) SaveWork(c *fiber.Ctx) error {
	var in dto.SaveWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SaveWork(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Cancel godoc
// @Summary      Cancelar reparación (motivo obligatorio)
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "id de la reparación"
// @Param        body  body  dto.CancelRepairRequest  true  "reason"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/cancel [post]
func (h *RepairHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Cancel(CurrentActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Print godoc
// @Summary      Imprimir orden de reparación en PDF
// @Tags         repairs
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la reparación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/print [get]
func (h *RepairHandler) Print(c *fiber.Ctx) error {
	pdf, err := h.uc.PrintOrder(CurrentActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-reparacion.pdf"`)
	return c.Send(pdf)
}
