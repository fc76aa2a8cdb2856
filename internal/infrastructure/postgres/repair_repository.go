package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/textnorm"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo implementación de RepairRepository sobre PostgreSQL.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

// Columnas de repairs con el alias r, más cliente y técnico embebidos.
const repairSelect = `
	SELECT r.id, r.repair_number, r.customer_id, COALESCE(r.technician_id::text, ''),
	       r.device_type, r.brand, r.model, r.serial_number, r.issue, r.diagnosis,
	       r.status, r.priority, r.progress,
	       r.estimated_cost, r.final_cost, r.labor_cost, r.parts_cost,
	       r.received_date, r.estimated_date, r.delivery_date,
	       r.purchase_link, r.parts_description, r.parts_status, r.estimated_arrival,
	       r.work_performed, r.final_observations, r.cancellation_reason,
	       r.created_at, r.updated_at,
	       c.id, c.name, c.phone, c.email, c.address,
	       COALESCE(t.id::text, ''), COALESCE(t.username, ''), COALESCE(t.name, '')
	FROM repairs r
	JOIN customers c ON c.id = r.customer_id
	LEFT JOIN users t ON t.id = r.technician_id`

// Create persiste una reparación nueva.
func (r *RepairRepo) Create(repair *entity.Repair) error {
	query := `
		INSERT INTO repairs (
			id, repair_number, customer_id, technician_id,
			device_type, brand, model, serial_number, issue, diagnosis,
			status, priority, progress,
			estimated_cost, final_cost, labor_cost, parts_cost,
			received_date, estimated_date, delivery_date,
			purchase_link, parts_description, parts_status, estimated_arrival,
			work_performed, final_observations, cancellation_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)`
	_, err := r.q.Exec(context.Background(), query,
		repair.ID, repair.RepairNumber, repair.CustomerID, nullIfEmpty(repair.TechnicianID),
		repair.DeviceType, repair.Brand, repair.Model, repair.SerialNumber, repair.Issue, repair.Diagnosis,
		repair.Status, repair.Priority, repair.Progress,
		repair.EstimatedCost, repair.FinalCost, repair.LaborCost, repair.PartsCost,
		repair.ReceivedDate, repair.EstimatedDate, repair.DeliveryDate,
		repair.PurchaseLink, repair.PartsDescription, repair.PartsStatus, repair.EstimatedArrival,
		repair.WorkPerformed, repair.FinalObservations, repair.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	return nil
}

// GetByID carga la reparación con cliente, técnico y notas (autor incluido).
func (r *RepairRepo) GetByID(id string) (*entity.Repair, error) {
	row := r.q.QueryRow(context.Background(), repairSelect+` WHERE r.id = $1`, id)
	rep, err := scanRepair(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	notes, err := r.notesFor(id)
	if err != nil {
		return nil, err
	}
	rep.Notes = notes
	return rep, nil
}

// Update actualiza todos los campos mutables de la reparación.
func (r *RepairRepo) Update(repair *entity.Repair) error {
	query := `
		UPDATE repairs SET
			technician_id = $2, device_type = $3, brand = $4, model = $5,
			serial_number = $6, issue = $7, diagnosis = $8,
			status = $9, priority = $10, progress = $11,
			estimated_cost = $12, final_cost = $13, labor_cost = $14, parts_cost = $15,
			estimated_date = $16, delivery_date = $17,
			purchase_link = $18, parts_description = $19, parts_status = $20, estimated_arrival = $21,
			work_performed = $22, final_observations = $23, cancellation_reason = $24,
			updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		repair.ID, nullIfEmpty(repair.TechnicianID), repair.DeviceType, repair.Brand, repair.Model,
		repair.SerialNumber, repair.Issue, repair.Diagnosis,
		repair.Status, repair.Priority, repair.Progress,
		repair.EstimatedCost, repair.FinalCost, repair.LaborCost, repair.PartsCost,
		repair.EstimatedDate, repair.DeliveryDate,
		repair.PurchaseLink, repair.PartsDescription, repair.PartsStatus, repair.EstimatedArrival,
		repair.WorkPerformed, repair.FinalObservations, repair.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("update repair: %w", err)
	}
	return nil
}

// List devuelve reparaciones (más recientes primero) con cliente y técnico.
func (r *RepairRepo) List(f repository.RepairFilter) ([]*entity.Repair, error) {
	var conds []string
	var args []any
	if f.TechnicianID != "" {
		args = append(args, f.TechnicianID)
		conds = append(conds, fmt.Sprintf("r.technician_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		conds = append(conds, fmt.Sprintf("r.status = ANY($%d)", len(args)))
	}
	if len(f.ExcludeStatuses) > 0 {
		args = append(args, f.ExcludeStatuses)
		conds = append(conds, fmt.Sprintf("r.status <> ALL($%d)", len(args)))
	}
	query := repairSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.received_date DESC"
	return r.queryMany(query, args...)
}

// Search busca reparaciones terminadas por número, cliente, marca o modelo,
// sin distinguir acentos (término plegado en Go, columnas con unaccent).
func (r *RepairRepo) Search(term string, limit int) ([]*entity.Repair, error) {
	pattern := "%" + textnorm.Fold(term) + "%"
	query := repairSelect + `
		WHERE r.status IN ($1, $2)
		  AND (unaccent(lower(r.repair_number)) LIKE $3
		    OR unaccent(lower(c.name)) LIKE $3
		    OR unaccent(lower(c.phone)) LIKE $3
		    OR unaccent(lower(r.brand)) LIKE $3
		    OR unaccent(lower(r.model)) LIKE $3)
		ORDER BY r.received_date DESC
		LIMIT $4`
	return r.queryMany(query, entity.StatusCompleted, entity.StatusDelivered, pattern, limit)
}

// ListWithParts devuelve reparaciones con ciclo de repuestos activo.
func (r *RepairRepo) ListWithParts() ([]*entity.Repair, error) {
	query := repairSelect + `
		WHERE r.status = $1 OR r.parts_status <> '' OR r.parts_cost > 0
		ORDER BY r.received_date DESC`
	return r.queryMany(query, entity.StatusWaitingParts)
}

// NextNumber devuelve el siguiente número secuencial con ceros (000001, ...).
func (r *RepairRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('repair_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next repair number: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

// CountByStatus cuenta reparaciones en un estado.
func (r *RepairRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM repairs WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count repairs: %w", err)
	}
	return n, nil
}

// AddNote agrega una entrada al historial de la reparación.
func (r *RepairRepo) AddNote(note *entity.RepairNote) error {
	query := `
		INSERT INTO repair_notes (id, repair_id, author_id, text)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.RepairID, nullIfEmpty(note.AuthorID), note.Text,
	)
	if err != nil {
		return fmt.Errorf("insert repair note: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

func (r *RepairRepo) queryMany(query string, args ...any) ([]*entity.Repair, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Repair
	for rows.Next() {
		rep, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

func (r *RepairRepo) notesFor(repairID string) ([]entity.RepairNote, error) {
	query := `
		SELECT n.id, n.repair_id, COALESCE(n.author_id::text, ''), n.text, n.created_at,
		       COALESCE(u.id::text, ''), COALESCE(u.username, ''), COALESCE(u.name, '')
		FROM repair_notes n
		LEFT JOIN users u ON u.id = n.author_id
		WHERE n.repair_id = $1
		ORDER BY n.created_at`
	rows, err := r.q.Query(context.Background(), query, repairID)
	if err != nil {
		return nil, fmt.Errorf("list repair notes: %w", err)
	}
	defer rows.Close()
	var notes []entity.RepairNote
	for rows.Next() {
		var n entity.RepairNote
		var authorID, authorUsername, authorName string
		if err := rows.Scan(&n.ID, &n.RepairID, &n.AuthorID, &n.Text, &n.CreatedAt,
			&authorID, &authorUsername, &authorName); err != nil {
			return nil, fmt.Errorf("scan repair note: %w", err)
		}
		if authorID != "" {
			n.Author = &entity.User{ID: authorID, Username: authorUsername, Name: authorName}
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanRepair(row pgx.Row) (*entity.Repair, error) {
	var rep entity.Repair
	var cust entity.Customer
	var techID, techUsername, techName string
	err := row.Scan(
		&rep.ID, &rep.RepairNumber, &rep.CustomerID, &rep.TechnicianID,
		&rep.DeviceType, &rep.Brand, &rep.Model, &rep.SerialNumber, &rep.Issue, &rep.Diagnosis,
		&rep.Status, &rep.Priority, &rep.Progress,
		&rep.EstimatedCost, &rep.FinalCost, &rep.LaborCost, &rep.PartsCost,
		&rep.ReceivedDate, &rep.EstimatedDate, &rep.DeliveryDate,
		&rep.PurchaseLink, &rep.PartsDescription, &rep.PartsStatus, &rep.EstimatedArrival,
		&rep.WorkPerformed, &rep.FinalObservations, &rep.CancellationReason,
		&rep.CreatedAt, &rep.UpdatedAt,
		&cust.ID, &cust.Name, &cust.Phone, &cust.Email, &cust.Address,
		&techID, &techUsername, &techName,
	)
	if err != nil {
		return nil, err
	}
	rep.Customer = &cust
	if techID != "" {
		rep.Technician = &entity.User{ID: techID, Username: techUsername, Name: techName}
	}
	return &rep, nil
}

// nullIfEmpty convierte "" a NULL para columnas UUID opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
