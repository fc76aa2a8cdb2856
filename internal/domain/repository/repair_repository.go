package repository

import "github.com/tu-usuario/taller-pro/internal/domain/entity"

// RepairFilter restringe el listado de reparaciones.
type RepairFilter struct {
	TechnicianID    string   // solo reparaciones asignadas a este técnico
	Statuses        []string // incluir solo estos estados
	ExcludeStatuses []string // excluir estos estados
}

// RepairRepository define el puerto de persistencia para Repair (DIP).
type RepairRepository interface {
	Create(repair *entity.Repair) error
	// GetByID carga la reparación con cliente, técnico y notas (autor incluido).
	GetByID(id string) (*entity.Repair, error)
	Update(repair *entity.Repair) error
	// List devuelve reparaciones (más recientes primero) con cliente y técnico.
	List(f RepairFilter) ([]*entity.Repair, error)
	// Search busca por número, cliente, marca o modelo, sin distinguir acentos,
	// solo entre reparaciones terminadas.
	Search(term string, limit int) ([]*entity.Repair, error)
	// ListWithParts devuelve reparaciones con ciclo de repuestos activo
	// (esperando repuesto, con estado de partes o con costo de partes).
	ListWithParts() ([]*entity.Repair, error)
	// NextNumber devuelve el siguiente número secuencial con ceros (000001, ...).
	NextNumber() (string, error)
	CountByStatus(status string) (int, error)
	AddNote(note *entity.RepairNote) error
}
