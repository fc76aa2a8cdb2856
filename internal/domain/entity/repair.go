package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reparación. Nombres canónicos en inglés; las etiquetas
// legacy en español del esquema a medio migrar se aceptan en ParseStatus.
const (
	StatusUnassigned   = "UNASSIGNED"
	StatusInReview     = "IN_REVIEW"
	StatusInRepair     = "IN_REPAIR"
	StatusWaitingParts = "WAITING_PARTS"
	StatusCompleted    = "COMPLETED"
	StatusDelivered    = "DELIVERED"
	StatusCancelled    = "CANCELLED"
	StatusPickedUp     = "PICKED_UP"
)

// Prioridades.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Estados del ciclo de repuestos de una reparación.
const (
	PartsPending   = "PENDING"
	PartsPurchased = "PURCHASED"
	PartsReceived  = "RECEIVED"
)

// legacyStatus mapea las etiquetas en español que todavía circulan en datos
// y formularios del sistema anterior.
var legacyStatus = map[string]string{
	"SIN_ASIGNAR":        StatusUnassigned,
	"EN_REVISION":        StatusInReview,
	"EN_REPARACION":      StatusInRepair,
	"ESPERANDO_REPUESTO": StatusWaitingParts,
	"COMPLETADO":         StatusCompleted,
	"ENTREGADO":          StatusDelivered,
	"CANCELADO":          StatusCancelled,
	"RETIRADO":           StatusPickedUp,
}

var validStatus = map[string]bool{
	StatusUnassigned:   true,
	StatusInReview:     true,
	StatusInRepair:     true,
	StatusWaitingParts: true,
	StatusCompleted:    true,
	StatusDelivered:    true,
	StatusCancelled:    true,
	StatusPickedUp:     true,
}

// ParseStatus normaliza una etiqueta de estado (canónica o legacy).
// Devuelve "" si no la reconoce.
func ParseStatus(s string) string {
	if validStatus[s] {
		return s
	}
	return legacyStatus[s]
}

// StatusLabel etiqueta en español para mostrar en la interfaz.
func StatusLabel(status string) string {
	switch status {
	case StatusUnassigned:
		return "Sin asignar"
	case StatusInReview:
		return "En revisión"
	case StatusInRepair:
		return "En reparación"
	case StatusWaitingParts:
		return "Esperando repuesto"
	case StatusCompleted:
		return "Completado"
	case StatusDelivered:
		return "Entregado"
	case StatusCancelled:
		return "Cancelado"
	case StatusPickedUp:
		return "Retirado"
	default:
		return status
	}
}

// IsFinished indica si la reparación terminó su ciclo de trabajo.
func IsFinished(status string) bool {
	return status == StatusCompleted || status == StatusDelivered
}

// ParsePriority normaliza una prioridad (canónica o legacy ALTA/MEDIA/BAJA).
func ParsePriority(s string) string {
	switch s {
	case PriorityHigh, "ALTA":
		return PriorityHigh
	case PriorityMedium, "MEDIA":
		return PriorityMedium
	case PriorityLow, "BAJA":
		return PriorityLow
	default:
		return ""
	}
}

// Repair representa una orden de reparación.
type Repair struct {
	ID           string
	RepairNumber string // secuencial con ceros a la izquierda (000001, ...)
	CustomerID   string
	TechnicianID string // vacío = sin asignar

	DeviceType   string
	Brand        string
	Model        string
	SerialNumber string
	Issue        string
	Diagnosis    string

	Status   string
	Priority string
	Progress int // 0-100

	EstimatedCost decimal.Decimal
	FinalCost     decimal.Decimal
	LaborCost     decimal.Decimal
	PartsCost     decimal.Decimal

	ReceivedDate  time.Time
	EstimatedDate *time.Time
	DeliveryDate  *time.Time

	// Seguimiento de repuestos
	PurchaseLink     string
	PartsDescription string
	PartsStatus      string // PENDING, PURCHASED, RECEIVED; vacío si no aplica
	EstimatedArrival *time.Time

	WorkPerformed      string
	FinalObservations  string
	CancellationReason string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relaciones cargadas bajo demanda
	Customer   *Customer
	Technician *User
	Notes      []RepairNote
}

// RepairNote es una entrada del historial de una reparación.
type RepairNote struct {
	ID        string
	RepairID  string
	AuthorID  string
	Text      string
	CreatedAt time.Time

	Author *User
}
