package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. El código se genera si viene vacío.
type CreateProductRequest struct {
	Code        string          `json:"code" form:"code"`
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Category    string          `json:"category" form:"category"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Cost        decimal.Decimal `json:"cost" form:"cost"`
	Stock       int             `json:"stock" form:"stock"`
	MinStock    int             `json:"min_stock" form:"minStock"`
}

// UpdateProductRequest modificación parcial: solo los campos presentes cambian.
type UpdateProductRequest struct {
	Name        *string          `json:"name" form:"name"`
	Description *string          `json:"description" form:"description"`
	Category    *string          `json:"category" form:"category"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Cost        *decimal.Decimal `json:"cost" form:"cost"`
	Stock       *int             `json:"stock" form:"stock"`
	MinStock    *int             `json:"min_stock" form:"minStock"`
}

// ProductResponse producto para la interfaz.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado de inventario.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// NotifyRestockRequest aviso de falta de stock: genera una solicitud de
// repuestos en el mostrador de compras.
type NotifyRestockRequest struct {
	ProductID string `json:"product_id" form:"productId"`
	Quantity  int    `json:"quantity" form:"quantity"`
	Notes     string `json:"notes" form:"notes"`
}
