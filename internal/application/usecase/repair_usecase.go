package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// OrderRenderer genera la orden de reparación imprimible.
type OrderRenderer interface {
	RenderOrder(repair *entity.Repair) ([]byte, error)
}

// RepairUseCase gestiona el ciclo de vida de las reparaciones.
type RepairUseCase struct {
	repairs   repository.RepairRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	renderer  OrderRenderer
	log       *logger.Logger
}

// NewRepairUseCase construye el caso de uso de reparaciones.
func NewRepairUseCase(
	repairs repository.RepairRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	renderer OrderRenderer,
	log *logger.Logger,
) *RepairUseCase {
	return &RepairUseCase{
		repairs:   repairs,
		customers: customers,
		users:     users,
		renderer:  renderer,
		log:       log,
	}
}

// canManage indica si el actor puede modificar la reparación: administración
// siempre, el técnico solo si está asignado a ella.
func canManage(actor Actor, r *entity.Repair) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsTechnician() && actor.UserID != "" && r.TechnicianID == actor.UserID
}

// canView igual que canManage, pero el técnico también puede abrir
// reparaciones sin asignar (para tomarlas).
func canView(actor Actor, r *entity.Repair) bool {
	if canManage(actor, r) {
		return true
	}
	return actor.IsTechnician() && r.TechnicianID == ""
}

// List devuelve las reparaciones visibles para el actor. Los técnicos ven
// solo las propias sin terminar; administración ve todas y además recibe la
// lista de técnicos para el filtro de asignación.
func (uc *RepairUseCase) List(actor Actor) (*dto.RepairListResponse, error) {
	var f repository.RepairFilter
	if actor.IsTechnician() {
		f.TechnicianID = actor.UserID
		f.ExcludeStatuses = []string{entity.StatusCompleted, entity.StatusDelivered,
			entity.StatusCancelled, entity.StatusPickedUp}
	}
	rows, err := uc.repairs.List(f)
	if err != nil {
		return nil, err
	}
	resp := &dto.RepairListResponse{Repairs: make([]dto.RepairResponse, 0, len(rows))}
	for _, r := range rows {
		resp.Repairs = append(resp.Repairs, toRepairResponse(r))
	}
	if !actor.IsTechnician() {
		techs, err := uc.users.ListTechnicians()
		if err != nil {
			return nil, err
		}
		for _, t := range techs {
			resp.Technicians = append(resp.Technicians, dto.RepairTechnician{
				ID: t.ID, Name: t.Name, Username: t.Username,
			})
		}
	}
	return resp, nil
}

// Get carga una reparación con sus relaciones. Un técnico solo puede abrir
// las suyas o las que están sin asignar.
func (uc *RepairUseCase) Get(actor Actor, id string) (*dto.RepairResponse, error) {
	r, err := uc.getRepair(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, r) {
		return nil, domain.ErrForbidden
	}
	resp := toRepairResponse(r)
	return &resp, nil
}

// Create ingresa un equipo. Si no viene un cliente existente, se busca por
// teléfono y se crea si no existe (deduplicación del mostrador de recepción).
func (uc *RepairUseCase) Create(actor Actor, req dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if strings.TrimSpace(req.DeviceType) == "" || strings.TrimSpace(req.Issue) == "" {
		return nil, domain.ErrInvalidInput
	}
	customerID, err := uc.resolveCustomer(req)
	if err != nil {
		return nil, err
	}
	number, err := uc.repairs.NextNumber()
	if err != nil {
		return nil, err
	}
	priority := entity.ParsePriority(req.Priority)
	if priority == "" {
		priority = entity.PriorityMedium
	}
	status := entity.StatusUnassigned
	if req.TechnicianID != "" {
		status = entity.StatusInReview
	}
	r := &entity.Repair{
		ID:            uuid.NewString(),
		RepairNumber:  number,
		CustomerID:    customerID,
		TechnicianID:  req.TechnicianID,
		DeviceType:    strings.TrimSpace(req.DeviceType),
		Brand:         strings.TrimSpace(req.Brand),
		Model:         strings.TrimSpace(req.Model),
		SerialNumber:  strings.TrimSpace(req.SerialNumber),
		Issue:         strings.TrimSpace(req.Issue),
		Status:        status,
		Priority:      priority,
		EstimatedCost: req.EstimatedCost,
		ReceivedDate:  time.Now(),
	}
	if err := uc.repairs.Create(r); err != nil {
		return nil, err
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		uc.addAuditNote(actor, r.ID, notes)
	}
	uc.log.Info().
		Str("repair_id", r.ID).
		Str("number", r.RepairNumber).
		Str("status", r.Status).
		Msg("Reparación ingresada")
	return uc.Get(actor, r.ID)
}

// UpdateStatus cambia el estado y deja constancia en el historial.
func (uc *RepairUseCase) UpdateStatus(actor Actor, id string, req dto.UpdateStatusRequest) error {
	status := entity.ParseStatus(req.Status)
	if status == "" {
		return domain.ErrInvalidInput
	}
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	previous := r.Status
	r.Status = status
	if req.Progress != nil {
		r.Progress = clampProgress(*req.Progress)
	}
	if status == entity.StatusDelivered && r.DeliveryDate == nil {
		now := time.Now()
		r.DeliveryDate = &now
	}
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.addAuditNote(actor, r.ID, fmt.Sprintf("Estado cambiado de %s a %s",
		entity.StatusLabel(previous), entity.StatusLabel(status)))
	uc.log.Info().
		Str("repair_id", r.ID).
		Str("from", previous).
		Str("to", status).
		Str("by", actor.Username).
		Msg("Estado de reparación actualizado")
	return nil
}

// AddNote agrega una entrada al historial.
func (uc *RepairUseCase) AddNote(actor Actor, id string, req dto.AddNoteRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.ErrInvalidInput
	}
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	return uc.repairs.AddNote(&entity.RepairNote{
		ID:       uuid.NewString(),
		RepairID: r.ID,
		AuthorID: actor.UserID,
		Text:     text,
	})
}

// UpdateCosts actualiza los costos presentes en la petición. FinalCost se
// recalcula como mano de obra + repuestos cuando alguno de los dos cambia.
func (uc *RepairUseCase) UpdateCosts(actor Actor, id string, req dto.UpdateCostsRequest) error {
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	if req.EstimatedCost != nil {
		r.EstimatedCost = *req.EstimatedCost
	}
	if req.LaborCost != nil {
		r.LaborCost = *req.LaborCost
	}
	if req.PartsCost != nil {
		r.PartsCost = *req.PartsCost
	}
	if req.LaborCost != nil || req.PartsCost != nil {
		r.FinalCost = r.LaborCost.Add(r.PartsCost)
	}
	return uc.repairs.Update(r)
}

// UpdateLink registra el link de compra y la descripción del repuesto; si la
// reparación todavía no tenía ciclo de repuestos, arranca en PENDING.
func (uc *RepairUseCase) UpdateLink(actor Actor, id string, req dto.UpdateLinkRequest) error {
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	r.PurchaseLink = strings.TrimSpace(req.PurchaseLink)
	r.PartsDescription = strings.TrimSpace(req.PartsDescription)
	if r.PartsStatus == "" {
		r.PartsStatus = entity.PartsPending
	}
	return uc.repairs.Update(r)
}

// AssignTechnician asigna la reparación. Solo administración; una reparación
// sin asignar pasa a EN_REVISION al asignarse.
func (uc *RepairUseCase) AssignTechnician(actor Actor, id string, req dto.AssignTechnicianRequest) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if req.TechnicianID == "" {
		return domain.ErrInvalidInput
	}
	tech, err := uc.users.GetByID(req.TechnicianID)
	if err != nil {
		return err
	}
	if tech == nil || tech.Role != entity.RoleTechnician {
		return domain.ErrInvalidInput
	}
	r, err := uc.getRepair(id)
	if err != nil {
		return err
	}
	r.TechnicianID = tech.ID
	if r.Status == entity.StatusUnassigned {
		r.Status = entity.StatusInReview
	}
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.addAuditNote(actor, r.ID, "Técnico asignado: "+tech.Name)
	uc.log.Info().
		Str("repair_id", r.ID).
		Str("technician", tech.Username).
		Msg("Técnico asignado a reparación")
	return nil
}

// Complete cierra la reparación: costo final = mano de obra + repuestos,
// fecha de entrega estimada y estado COMPLETADO.
func (uc *RepairUseCase) Complete(actor Actor, id string, req dto.CompleteRepairRequest) error {
	if strings.TrimSpace(req.WorkPerformed) == "" {
		return domain.ErrInvalidInput
	}
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	if entity.IsFinished(r.Status) || r.Status == entity.StatusCancelled {
		return domain.ErrConflict
	}
	now := time.Now()
	r.LaborCost = req.LaborCost
	r.PartsCost = req.PartsCost
	r.FinalCost = req.LaborCost.Add(req.PartsCost)
	r.WorkPerformed = strings.TrimSpace(req.WorkPerformed)
	r.FinalObservations = strings.TrimSpace(req.FinalObservations)
	r.Status = entity.StatusCompleted
	r.Progress = 100
	r.DeliveryDate = &now
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.addAuditNote(actor, r.ID, "Reparación completada")
	uc.log.Info().
		Str("repair_id", r.ID).
		Str("final_cost", r.FinalCost.String()).
		Msg("Reparación completada")
	return nil
}

// SaveWork guarda el avance del técnico sin cerrar la reparación.
func (uc *RepairUseCase) SaveWork(actor Actor, id string, req dto.SaveWorkRequest) error {
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	if d := strings.TrimSpace(req.Diagnosis); d != "" {
		r.Diagnosis = d
	}
	if w := strings.TrimSpace(req.WorkPerformed); w != "" {
		r.WorkPerformed = w
	}
	if req.Progress != nil {
		r.Progress = clampProgress(*req.Progress)
	}
	return uc.repairs.Update(r)
}

// Cancel cancela la reparación con motivo obligatorio.
func (uc *RepairUseCase) Cancel(actor Actor, id string, req dto.CancelRepairRequest) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return domain.ErrInvalidInput
	}
	r, err := uc.getManaged(actor, id)
	if err != nil {
		return err
	}
	if entity.IsFinished(r.Status) {
		return domain.ErrConflict
	}
	r.Status = entity.StatusCancelled
	r.CancellationReason = reason
	if err := uc.repairs.Update(r); err != nil {
		return err
	}
	uc.addAuditNote(actor, r.ID, "Cancelada: "+reason)
	uc.log.Info().Str("repair_id", r.ID).Str("reason", reason).Msg("Reparación cancelada")
	return nil
}

// Search busca reparaciones terminadas por número, cliente, marca o modelo.
// Mínimo dos caracteres, como en el buscador del mostrador.
func (uc *RepairUseCase) Search(term string, limit int) ([]dto.RepairResponse, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := uc.repairs.Search(term, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepairResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRepairResponse(r))
	}
	return out, nil
}

// PrintOrder genera el PDF de la orden de reparación.
func (uc *RepairUseCase) PrintOrder(actor Actor, id string) ([]byte, error) {
	r, err := uc.getRepair(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, r) {
		return nil, domain.ErrForbidden
	}
	return uc.renderer.RenderOrder(r)
}

// ─────────────────────────────────────────────────────────────────────────────

func (uc *RepairUseCase) getRepair(id string) (*entity.Repair, error) {
	r, err := uc.repairs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (uc *RepairUseCase) getManaged(actor Actor, id string) (*entity.Repair, error) {
	r, err := uc.getRepair(id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, r) {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

// addAuditNote escribe una nota de auditoría; si falla solo se registra en el
// log, la operación principal ya fue persistida.
func (uc *RepairUseCase) addAuditNote(actor Actor, repairID, text string) {
	err := uc.repairs.AddNote(&entity.RepairNote{
		ID:       uuid.NewString(),
		RepairID: repairID,
		AuthorID: actor.UserID,
		Text:     text,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("repair_id", repairID).Msg("No se pudo guardar la nota de auditoría")
	}
}

// resolveCustomer devuelve el id del cliente: el indicado, uno existente con
// el mismo teléfono o uno recién creado.
func (uc *RepairUseCase) resolveCustomer(req dto.CreateRepairRequest) (string, error) {
	if req.CustomerID != "" {
		c, err := uc.customers.GetByID(req.CustomerID)
		if err != nil {
			return "", err
		}
		if c == nil {
			return "", domain.ErrNotFound
		}
		return c.ID, nil
	}
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if name == "" || phone == "" {
		return "", domain.ErrInvalidInput
	}
	if existing, err := uc.customers.GetByPhone(phone); err != nil {
		return "", err
	} else if existing != nil {
		return existing.ID, nil
	}
	c := &entity.Customer{
		ID:      uuid.NewString(),
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(req.CustomerEmail),
		Address: strings.TrimSpace(req.CustomerAddress),
	}
	if err := uc.customers.Create(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func toRepairResponse(r *entity.Repair) dto.RepairResponse {
	resp := dto.RepairResponse{
		ID:                 r.ID,
		RepairNumber:       r.RepairNumber,
		TechnicianID:       r.TechnicianID,
		DeviceType:         r.DeviceType,
		Brand:              r.Brand,
		Model:              r.Model,
		SerialNumber:       r.SerialNumber,
		Issue:              r.Issue,
		Diagnosis:          r.Diagnosis,
		Status:             r.Status,
		StatusLabel:        entity.StatusLabel(r.Status),
		Priority:           r.Priority,
		Progress:           r.Progress,
		EstimatedCost:      r.EstimatedCost,
		FinalCost:          r.FinalCost,
		LaborCost:          r.LaborCost,
		PartsCost:          r.PartsCost,
		ReceivedDate:       r.ReceivedDate,
		EstimatedDate:      r.EstimatedDate,
		DeliveryDate:       r.DeliveryDate,
		PurchaseLink:       r.PurchaseLink,
		PartsDescription:   r.PartsDescription,
		PartsStatus:        r.PartsStatus,
		EstimatedArrival:   r.EstimatedArrival,
		WorkPerformed:      r.WorkPerformed,
		FinalObservations:  r.FinalObservations,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Customer != nil {
		resp.Customer = &dto.RepairCustomer{
			ID:      r.Customer.ID,
			Name:    r.Customer.Name,
			Phone:   r.Customer.Phone,
			Email:   r.Customer.Email,
			Address: r.Customer.Address,
		}
	}
	if r.Technician != nil {
		resp.Technician = &dto.RepairTechnician{
			ID:       r.Technician.ID,
			Name:     r.Technician.Name,
			Username: r.Technician.Username,
		}
	}
	for _, n := range r.Notes {
		note := dto.RepairNoteResponse{ID: n.ID, Text: n.Text, CreatedAt: n.CreatedAt}
		if n.Author != nil {
			note.Author = &dto.RepairTechnician{
				ID:       n.Author.ID,
				Name:     n.Author.Name,
				Username: n.Author.Username,
			}
		}
		resp.Notes = append(resp.Notes, note)
	}
	return resp
}
