package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// PartsUseCase es el mostrador de compras de repuestos: agrupa las
// reparaciones con ciclo de repuestos activo y registra compras y llegadas.
type PartsUseCase struct {
	repairs repository.RepairRepository
	log     *logger.Logger
}

// NewPartsUseCase construye el caso de uso del mostrador de repuestos.
func NewPartsUseCase(repairs repository.RepairRepository, log *logger.Logger) *PartsUseCase {
	return &PartsUseCase{repairs: repairs, log: log}
}

// Overview devuelve las reparaciones agrupadas por estado de compra y los
// totales. Solo administración y dueño.
func (uc *PartsUseCase) Overview(actor Actor) (*dto.PartsOverviewResponse, error) {
	if !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.repairs.ListWithParts()
	if err != nil {
		return nil, err
	}
	resp := &dto.PartsOverviewResponse{
		Pending:   []dto.RepairResponse{},
		Purchased: []dto.RepairResponse{},
		Received:  []dto.RepairResponse{},
	}
	total := decimal.Zero
	for _, r := range rows {
		item := toRepairResponse(r)
		switch r.PartsStatus {
		case entity.PartsPurchased:
			resp.Purchased = append(resp.Purchased, item)
		case entity.PartsReceived:
			resp.Received = append(resp.Received, item)
		default:
			// Sin estado de compra: esperando repuesto cuenta como pendiente.
			resp.Pending = append(resp.Pending, item)
		}
		total = total.Add(r.PartsCost)
	}
	resp.Stats = dto.PartsStats{
		Pending:   len(resp.Pending),
		Purchased: len(resp.Purchased),
		Received:  len(resp.Received),
		TotalCost: total,
	}
	return resp, nil
}

// MarkPurchased marca los repuestos de una reparación como comprados con los
// días estimados de llegada. Solo el dueño autoriza compras.
func (uc *PartsUseCase) MarkPurchased(actor Actor, req dto.MarkPurchasedRequest) error {
	if !actor.IsOwner() {
		return domain.ErrForbidden
	}
	if req.RepairID == "" || req.EstimatedArrivalDays <= 0 {
		return domain.ErrInvalidInput
	}
	r, err := uc.repairs.GetByID(req.RepairID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	arrival := time.Now().AddDate(0, 0, req.EstimatedArrivalDays)
	r.PartsStatus = entity.PartsPurchased
	r.EstimatedArrival = &arrival
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.note(actor, r.ID, fmt.Sprintf("Repuestos comprados, llegada estimada en %d días", req.EstimatedArrivalDays))
	uc.log.Info().
		Str("repair_id", r.ID).
		Int("arrival_days", req.EstimatedArrivalDays).
		Msg("Repuestos marcados como comprados")
	return nil
}

// SetArrival registra o corrige el tiempo de llegada estimado.
func (uc *PartsUseCase) SetArrival(actor Actor, req dto.SetArrivalRequest) error {
	if !actor.IsOwner() {
		return domain.ErrForbidden
	}
	if req.RepairID == "" || req.ArrivalDays <= 0 {
		return domain.ErrInvalidInput
	}
	r, err := uc.repairs.GetByID(req.RepairID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	arrival := time.Now().AddDate(0, 0, req.ArrivalDays)
	r.EstimatedArrival = &arrival
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.note(actor, r.ID, fmt.Sprintf("Tiempo de llegada actualizado: %d días", req.ArrivalDays))
	return nil
}

func (uc *PartsUseCase) note(actor Actor, repairID, text string) {
	err := uc.repairs.AddNote(&entity.RepairNote{
		ID:       uuid.NewString(),
		RepairID: repairID,
		AuthorID: actor.UserID,
		Text:     text,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("repair_id", repairID).Msg("No se pudo guardar la nota del mostrador")
	}
}
