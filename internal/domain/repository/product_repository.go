package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// ProductFilter restringe el listado de inventario.
type ProductFilter struct {
	Search      string // código, nombre o categoría, sin distinguir acentos
	LowStockMax *int   // stock <= este valor
	OnlyInStock bool   // stock > 0
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// List devuelve productos con su categoría, más recientes primero.
	List(f ProductFilter) ([]*entity.Product, error)
	// NextCode devuelve el siguiente código secuencial de 6 dígitos.
	NextCode() (string, error)
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca sin distinguir mayúsculas ni acentos.
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
