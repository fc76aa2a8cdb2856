package dto

import (
	"github.com/shopspring/decimal"
)

// PartsStats totales del mostrador de repuestos.
type PartsStats struct {
	Pending   int             `json:"pending"`
	Purchased int             `json:"purchased"`
	Received  int             `json:"received"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PartsOverviewResponse vista completa del mostrador: reparaciones esperando
// repuestos agrupadas por estado de compra.
type PartsOverviewResponse struct {
	Pending   []RepairResponse `json:"pending"`
	Purchased []RepairResponse `json:"purchased"`
	Received  []RepairResponse `json:"received"`
	Stats     PartsStats       `json:"stats"`
}

// MarkPurchasedRequest marca los repuestos como comprados (solo dueño).
type MarkPurchasedRequest struct {
	RepairID             string `json:"repair_id" form:"repairId"`
	EstimatedArrivalDays int    `json:"estimated_arrival_days" form:"estimatedArrivalDays"`
}

// SetArrivalRequest registra el tiempo de llegada estimado.
type SetArrivalRequest struct {
	RepairID    string `json:"repair_id" form:"repairId"`
	ArrivalDays int    `json:"arrival_days" form:"arrivalDays"`
}
