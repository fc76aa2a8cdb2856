package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodRepair es la proyección mínima de una reparación que necesitan los
// cálculos de métricas (sin cargar la entidad completa).
type PeriodRepair struct {
	Status       string
	DeviceType   string
	ReceivedDate time.Time
	DeliveryDate *time.Time
	LaborCost    decimal.Decimal
}

// MetricsRepository consultas de solo lectura para las métricas de técnicos.
type MetricsRepository interface {
	// RepairsByTechnician devuelve las reparaciones recibidas por el técnico
	// dentro del período [from, to].
	RepairsByTechnician(ctx context.Context, technicianID string, from, to time.Time) ([]PeriodRepair, error)
}
