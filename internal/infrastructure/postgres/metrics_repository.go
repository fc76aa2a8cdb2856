package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas de solo lectura para métricas de técnicos.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// RepairsByTechnician devuelve la proyección de reparaciones recibidas por el
// técnico dentro del período [from, to].
func (r *MetricsRepo) RepairsByTechnician(ctx context.Context, technicianID string, from, to time.Time) ([]repository.PeriodRepair, error) {
	query := `
		SELECT status, device_type, received_date, delivery_date, labor_cost
		FROM repairs
		WHERE technician_id = $1 AND received_date BETWEEN $2 AND $3
		ORDER BY received_date`
	rows, err := r.q.Query(ctx, query, technicianID, from, to)
	if err != nil {
		return nil, fmt.Errorf("repairs by technician: %w", err)
	}
	defer rows.Close()
	var list []repository.PeriodRepair
	for rows.Next() {
		var p repository.PeriodRepair
		if err := rows.Scan(&p.Status, &p.DeviceType, &p.ReceivedDate, &p.DeliveryDate, &p.LaborCost); err != nil {
			return nil, fmt.Errorf("scan period repair: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
