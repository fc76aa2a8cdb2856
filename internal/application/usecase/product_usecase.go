package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// ProductUseCase gestiona el inventario de repuestos y accesorios.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	customers  repository.CustomerRepository
	repairs    repository.RepairRepository
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso de inventario.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	customers repository.CustomerRepository,
	repairs repository.RepairRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		customers:  customers,
		repairs:    repairs,
		log:        log,
	}
}

// List devuelve el inventario con búsqueda y filtro de stock bajo.
func (uc *ProductUseCase) List(search string, lowStock bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	f := repository.ProductFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	rows, err := uc.products.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		if lowStock && !p.LowStock() {
			continue
		}
		out = append(out, toProductResponse(p))
	}
	return &dto.ProductListResponse{Products: out}, nil
}

// Search busca productos en stock (mínimo dos caracteres, para el buscador
// del punto de venta).
func (uc *ProductUseCase) Search(term string, limit int) ([]dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := uc.products.List(repository.ProductFilter{
		Search:      term,
		OnlyInStock: true,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Create da de alta un producto. Si no viene código se genera el siguiente
// secuencial de 6 dígitos; la categoría se busca por nombre y se crea si no
// existe.
func (uc *ProductUseCase) Create(req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		var err error
		if code, err = uc.products.NextCode(); err != nil {
			return nil, err
		}
	}
	categoryID, err := uc.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Status:      "active",
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("code", p.Code).Msg("Producto creado")
	resp := toProductResponse(p)
	return &resp, nil
}

// Update modifica los campos presentes en la petición.
func (uc *ProductUseCase) Update(id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.getProduct(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		categoryID, err := uc.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Delete elimina un producto del inventario.
func (uc *ProductUseCase) Delete(id string) error {
	if _, err := uc.getProduct(id); err != nil {
		return err
	}
	if err := uc.products.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("Producto eliminado")
	return nil
}

// NotifyRestock convierte un aviso de falta de stock en una solicitud del
// mostrador de repuestos: crea (si hace falta) el cliente SISTEMA y una
// reparación ESPERANDO_REPUESTO con los detalles del pedido.
func (uc *ProductUseCase) NotifyRestock(actor Actor, req dto.NotifyRestockRequest) (*dto.RepairResponse, error) {
	p, err := uc.getProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	systemID, err := uc.resolveSystemCustomer()
	if err != nil {
		return nil, err
	}
	number, err := uc.repairs.NextNumber()
	if err != nil {
		return nil, err
	}
	r := &entity.Repair{
		ID:           uuid.NewString(),
		RepairNumber: number,
		CustomerID:   systemID,
		DeviceType:   "Inventario",
		Brand:        p.Name,
		Model:        p.Code,
		Issue:        fmt.Sprintf("Reposición de stock: %d x %s (código %s)", qty, p.Name, p.Code),
		Status:       entity.StatusWaitingParts,
		Priority:     entity.PriorityMedium,
		PartsStatus:  entity.PartsPending,
		ReceivedDate: time.Now(),
	}
	if err := uc.repairs.Create(r); err != nil {
		return nil, err
	}
	noteText := fmt.Sprintf("Solicitud de reposición generada desde inventario (stock actual: %d, mínimo: %d)",
		p.Stock, p.MinStock)
	if extra := strings.TrimSpace(req.Notes); extra != "" {
		noteText += ". " + extra
	}
	_ = uc.repairs.AddNote(&entity.RepairNote{
		ID:       uuid.NewString(),
		RepairID: r.ID,
		AuthorID: actor.UserID,
		Text:     noteText,
	})
	uc.log.Info().
		Str("product_id", p.ID).
		Str("repair_id", r.ID).
		Int("quantity", qty).
		Msg("Solicitud de reposición creada")
	full, err := uc.repairs.GetByID(r.ID)
	if err != nil || full == nil {
		resp := toRepairResponse(r)
		return &resp, nil
	}
	resp := toRepairResponse(full)
	return &resp, nil
}

func (uc *ProductUseCase) getProduct(id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// resolveCategory busca la categoría por nombre (sin distinguir mayúsculas
// ni acentos) y la crea si no existe. Nombre vacío = sin categoría.
func (uc *ProductUseCase) resolveCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if existing, err := uc.categories.GetByName(name); err != nil {
		return "", err
	} else if existing != nil {
		return existing.ID, nil
	}
	c := &entity.Category{ID: uuid.NewString(), Name: name}
	if err := uc.categories.Create(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// resolveSystemCustomer devuelve el cliente sintético SISTEMA, creándolo la
// primera vez que se necesita.
func (uc *ProductUseCase) resolveSystemCustomer() (string, error) {
	if existing, err := uc.customers.GetByPhone(entity.SystemCustomerPhone); err != nil {
		return "", err
	} else if existing != nil {
		return existing.ID, nil
	}
	c := &entity.Customer{
		ID:    uuid.NewString(),
		Name:  "Sistema - Inventario",
		Phone: entity.SystemCustomerPhone,
	}
	if err := uc.customers.Create(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}
