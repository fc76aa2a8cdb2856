package dto

import "time"

// CreateCustomerRequest alta de cliente. Nombre y teléfono son obligatorios.
type CreateCustomerRequest struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
	TaxID   string `json:"tax_id" form:"taxId"`
}

// CustomerResponse cliente con conteo de reparaciones.
type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	TaxID       string    `json:"tax_id,omitempty"`
	RepairCount int       `json:"repair_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerListResponse listado de clientes.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}
