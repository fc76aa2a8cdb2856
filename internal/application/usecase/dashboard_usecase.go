package usecase

import (
	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

// DashboardUseCase arma el payload de la pantalla de inicio.
type DashboardUseCase struct {
	repairs repository.RepairRepository
}

// NewDashboardUseCase construye el caso de uso del inicio.
func NewDashboardUseCase(repairs repository.RepairRepository) *DashboardUseCase {
	return &DashboardUseCase{repairs: repairs}
}

// Home devuelve la identidad del actor y, para el dueño, el contador de
// reparaciones esperando repuesto.
func (uc *DashboardUseCase) Home(actor Actor) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{
		User: dto.SessionUser{
			ID:       actor.UserID,
			Username: actor.Username,
			Name:     actor.Name,
			Role:     actor.Role,
		},
		RoleLabel: entity.RoleLabel(actor.Role),
	}
	if actor.IsOwner() {
		count, err := uc.repairs.CountByStatus(entity.StatusWaitingParts)
		if err != nil {
			return nil, err
		}
		resp.PendingPartsCount = count
	}
	return resp, nil
}
