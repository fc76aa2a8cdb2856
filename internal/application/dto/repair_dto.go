package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRepairRequest ingreso de un equipo. Si CustomerID está vacío, se busca
// o crea el cliente por teléfono con los datos Customer*.
type CreateRepairRequest struct {
	CustomerID      string `json:"customer_id" form:"customerId"`
	CustomerName    string `json:"customer_name" form:"customerName"`
	CustomerPhone   string `json:"customer_phone" form:"customerPhone"`
	CustomerEmail   string `json:"customer_email" form:"customerEmail"`
	CustomerAddress string `json:"customer_address" form:"customerAddress"`

	DeviceType   string `json:"device_type" form:"deviceType"`
	Brand        string `json:"brand" form:"brand"`
	Model        string `json:"model" form:"model"`
	SerialNumber string `json:"serial_number" form:"serialNumber"`
	Issue        string `json:"issue" form:"issue"`
	Notes        string `json:"notes" form:"notes"`
	Priority     string `json:"priority" form:"priority"`
	TechnicianID string `json:"technician_id" form:"technicianId"`

	EstimatedCost decimal.Decimal `json:"estimated_cost" form:"estimatedCost"`
}

// RepairCustomer cliente embebido en una reparación.
type RepairCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// RepairTechnician técnico embebido en una reparación.
type RepairTechnician struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// RepairNoteResponse entrada del historial.
type RepairNoteResponse struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
	Author    *RepairTechnician `json:"author,omitempty"`
}

// RepairResponse reparación completa para la interfaz.
type RepairResponse struct {
	ID           string            `json:"id"`
	RepairNumber string            `json:"repair_number"`
	Customer     *RepairCustomer   `json:"customer,omitempty"`
	Technician   *RepairTechnician `json:"technician,omitempty"`
	TechnicianID string            `json:"technician_id,omitempty"`

	DeviceType   string `json:"device_type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number,omitempty"`
	Issue        string `json:"issue"`
	Diagnosis    string `json:"diagnosis,omitempty"`

	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`

	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	FinalCost     decimal.Decimal `json:"final_cost"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	PartsCost     decimal.Decimal `json:"parts_cost"`

	ReceivedDate  time.Time  `json:"received_date"`
	EstimatedDate *time.Time `json:"estimated_date,omitempty"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`

	PurchaseLink     string     `json:"purchase_link,omitempty"`
	PartsDescription string     `json:"parts_description,omitempty"`
	PartsStatus      string     `json:"parts_status,omitempty"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`

	WorkPerformed      string `json:"work_performed,omitempty"`
	FinalObservations  string `json:"final_observations,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Notes     []RepairNoteResponse `json:"notes,omitempty"`
}

// RepairListResponse listado con los técnicos disponibles para el filtro.
type RepairListResponse struct {
	Repairs     []RepairResponse   `json:"repairs"`
	Technicians []RepairTechnician `json:"technicians,omitempty"`
}

// UpdateStatusRequest cambio de estado (acepta etiquetas legacy en español).
type UpdateStatusRequest struct {
	Status   string `json:"status" form:"status"`
	Progress *int   `json:"progress" form:"progress"`
}

// AddNoteRequest nueva entrada del historial.
type AddNoteRequest struct {
	Text string `json:"text" form:"text"`
}

// UpdateCostsRequest actualización de costos.
type UpdateCostsRequest struct {
	EstimatedCost *decimal.Decimal `json:"estimated_cost" form:"estimatedCost"`
	LaborCost     *decimal.Decimal `json:"labor_cost" form:"laborCost"`
	PartsCost     *decimal.Decimal `json:"parts_cost" form:"partsCost"`
}

// UpdateLinkRequest datos de compra del repuesto.
type UpdateLinkRequest struct {
	PurchaseLink     string `json:"purchase_link" form:"purchaseLink"`
	PartsDescription string `json:"parts_description" form:"partsDescription"`
}

// AssignTechnicianRequest asignación de técnico.
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" form:"technicianId"`
}

// CompleteRepairRequest cierre de la reparación.
type CompleteRepairRequest struct {
	LaborCost         decimal.Decimal `json:"labor_cost" form:"laborCost"`
	PartsCost         decimal.Decimal `json:"parts_cost" form:"partsCost"`
	WorkPerformed     string          `json:"work_performed" form:"workPerformed"`
	FinalObservations string          `json:"final_observations" form:"finalObservations"`
}

// SaveWorkRequest guarda avance sin cerrar.
type SaveWorkRequest struct {
	Diagnosis     string `json:"diagnosis" form:"diagnosis"`
	WorkPerformed string `json:"work_performed" form:"workPerformed"`
	Progress      *int   `json:"progress" form:"progress"`
}

// CancelRepairRequest cancelación con motivo obligatorio.
type CancelRepairRequest struct {
	Reason string `json:"reason" form:"reason"`
}
