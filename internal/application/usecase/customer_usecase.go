package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// CustomerUseCase gestiona los clientes del taller.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(customers repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, log: log}
}

// List devuelve los clientes (más recientes primero) con su conteo de
// reparaciones. El cliente sintético SISTEMA no se filtra: en el original
// también aparece en el listado.
func (uc *CustomerUseCase) List(page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	rows, err := uc.customers.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Customers: out}, nil
}

// Create da de alta un cliente. Nombre y teléfono son obligatorios; un
// teléfono repetido es conflicto (el teléfono identifica al cliente al
// crear reparaciones).
func (uc *CustomerUseCase) Create(req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.customers.GetByPhone(phone); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Customer{
		ID:      uuid.NewString(),
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		TaxID:   strings.TrimSpace(req.TaxID),
	}
	if err := uc.customers.Create(c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", c.ID).Str("name", c.Name).Msg("Cliente creado")
	resp := toCustomerResponse(&repository.CustomerWithCounts{Customer: *c})
	return &resp, nil
}

// Delete elimina un cliente. Solo administración, y solo si no tiene
// reparaciones asociadas (el repositorio responde ErrCustomerInUse).
func (uc *CustomerUseCase) Delete(actorRole, id string) error {
	if actorRole != entity.RoleAdmin && actorRole != entity.RoleManager {
		return domain.ErrForbidden
	}
	if err := uc.customers.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("customer_id", id).Msg("Cliente eliminado")
	return nil
}

func toCustomerResponse(c *repository.CustomerWithCounts) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		TaxID:       c.TaxID,
		RepairCount: c.RepairCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
