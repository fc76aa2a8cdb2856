package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario de repuestos y accesorios.
type Product struct {
	ID          string
	Code        string // secuencial de 6 dígitos (000001, ...)
	Name        string
	Description string
	Brand       string
	Model       string
	CategoryID  string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Stock       int
	MinStock    int
	Status      string // active, inactive
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category
}

// LowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
