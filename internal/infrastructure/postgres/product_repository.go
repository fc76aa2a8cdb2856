package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.code, p.name, p.description, p.brand, p.model,
	       COALESCE(p.category_id::text, ''), p.price, p.cost, p.stock, p.min_stock,
	       p.status, p.image_url, p.created_at, p.updated_at,
	       COALESCE(cat.id::text, ''), COALESCE(cat.name, ''), COALESCE(cat.description, '')
	FROM products p
	LEFT JOIN categories cat ON cat.id = p.category_id`

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, description, brand, model, category_id,
		                      price, cost, stock, min_stock, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.Brand, product.Model,
		nullIfEmpty(product.CategoryID), product.Price, product.Cost, product.Stock, product.MinStock,
		product.Status, product.ImageURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto con su categoría.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, brand = $4, model = $5, category_id = $6,
			price = $7, cost = $8, stock = $9, min_stock = $10, status = $11,
			image_url = $12, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Brand, product.Model,
		nullIfEmpty(product.CategoryID), product.Price, product.Cost, product.Stock,
		product.MinStock, product.Status, product.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos con su categoría, más recientes primero. La búsqueda
// cubre código, nombre y categoría sin distinguir acentos.
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+textnorm.Fold(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(unaccent(lower(p.code)) LIKE $%d
			OR unaccent(lower(p.name)) LIKE $%d
			OR unaccent(lower(COALESCE(cat.name, ''))) LIKE $%d)`, n, n, n))
	}
	if f.LowStockMax != nil {
		args = append(args, *f.LowStockMax)
		conds = append(conds, fmt.Sprintf("p.stock <= $%d", len(args)))
	}
	if f.OnlyInStock {
		conds = append(conds, "p.stock > 0")
	}
	query := productSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// NextCode devuelve el siguiente código secuencial con ceros (000001, ...).
func (r *ProductRepo) NextCode() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('product_code_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next product code: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var catID, catName, catDesc string
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Brand, &p.Model,
		&p.CategoryID, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
		&p.Status, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catDesc,
	)
	if err != nil {
		return nil, err
	}
	if catID != "" {
		p.Category = &entity.Category{ID: catID, Name: catName, Description: catDesc}
	}
	return &p, nil
}
