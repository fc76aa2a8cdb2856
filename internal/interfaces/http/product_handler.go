package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
)

// ProductHandler maneja el inventario de repuestos y accesorios.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de inventario.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos con categoría
// @Tags         inventory
// @Produce      json
// @Param        search     query  string  false  "código, nombre o categoría (sin acentos)"
// @Param        low_stock  query  bool    false  "solo productos en o bajo stock mínimo"
// @Param        limit      query  int     false  "máximo de filas"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/inventory [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	lowStock := c.QueryBool("low_stock")
	out, err := h.uc.List(c.Query("search"), lowStock, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos con stock (mínimo 2 caracteres)
// @Tags         inventory
// @Produce      json
// @Param        q      query  string  true   "término de búsqueda"
// @Param        limit  query  int     false  "máximo de resultados"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	out, err := h.uc.Search(c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto (código secuencial automático si no se envía)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (campos parciales)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "id del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// NotifyRestock godoc
// @Summary      Pedir reposición de stock (crea una reparación ESPERANDO_REPUESTO)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotifyRestockRequest  true  "product_id y cantidad"
// @Success      201   {object}  dto.RepairResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/notify [post]
func (h *ProductHandler) NotifyRestock(c *fiber.Ctx) error {
	var in dto.NotifyRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.NotifyRestock(CurrentActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
