package entity

import "time"

// Category agrupa productos del inventario.
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
