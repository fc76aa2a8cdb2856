package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

var (
	actorAdmin = Actor{UserID: "u-admin", Username: "admin", Name: "Administrador", Role: entity.RoleAdmin}
	actorJuan  = Actor{UserID: "t1", Username: "juan", Name: "Juan", Role: entity.RoleTechnician}
	actorOtro  = Actor{UserID: "t2", Username: "rodrigo", Name: "Rodrigo", Role: entity.RoleTechnician}
)

type repairFixture struct {
	uc        *RepairUseCase
	repairs   *memRepairRepo
	customers *memCustomerRepo
	users     *memUserRepo
}

func newRepairFixture(t *testing.T) *repairFixture {
	t.Helper()
	fx := &repairFixture{
		repairs:   newMemRepairRepo(),
		customers: newMemCustomerRepo(),
		users: newMemUserRepo(
			&entity.User{ID: "t1", Username: "juan", Name: "Juan", Role: entity.RoleTechnician},
			&entity.User{ID: "t2", Username: "rodrigo", Name: "Rodrigo", Role: entity.RoleTechnician},
			&entity.User{ID: "u-admin", Username: "admin", Name: "Administrador", Role: entity.RoleAdmin},
		),
	}
	fx.uc = NewRepairUseCase(fx.repairs, fx.customers, fx.users, nil, testLogger())
	return fx
}

func (fx *repairFixture) create(t *testing.T, req dto.CreateRepairRequest) *dto.RepairResponse {
	t.Helper()
	if req.DeviceType == "" {
		req.DeviceType = "Notebook"
	}
	if req.Issue == "" {
		req.Issue = "No enciende"
	}
	if req.CustomerID == "" && req.CustomerName == "" {
		req.CustomerName = "Carlos"
		req.CustomerPhone = "1155550000"
	}
	r, err := fx.uc.Create(actorAdmin, req)
	require.NoError(t, err)
	return r
}

func TestRepairCreate_NumeroSecuencialYCliente(t *testing.T) {
	fx := newRepairFixture(t)

	r1 := fx.create(t, dto.CreateRepairRequest{CustomerName: "Carlos", CustomerPhone: "111"})
	r2 := fx.create(t, dto.CreateRepairRequest{CustomerName: "Ana", CustomerPhone: "222"})
	assert.Equal(t, "000001", r1.RepairNumber)
	assert.Equal(t, "000002", r2.RepairNumber)
	assert.Equal(t, entity.StatusUnassigned, r1.Status)

	// Mismo teléfono: reutiliza el cliente en lugar de duplicarlo.
	r3 := fx.create(t, dto.CreateRepairRequest{CustomerName: "Carlos de nuevo", CustomerPhone: "111"})
	require.NotNil(t, r3.Customer)
	require.NotNil(t, r1.Customer)
	assert.Equal(t, r1.Customer.ID, r3.Customer.ID)
	assert.Equal(t, "Carlos", r3.Customer.Name, "se conservan los datos del cliente original")
}

func TestRepairCreate_ConTecnicoArrancaEnRevision(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})
	assert.Equal(t, entity.StatusInReview, r.Status)
}

func TestRepairCreate_DatosObligatorios(t *testing.T) {
	fx := newRepairFixture(t)
	_, err := fx.uc.Create(actorAdmin, dto.CreateRepairRequest{Issue: "x",
		CustomerName: "a", CustomerPhone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin tipo de equipo")

	_, err = fx.uc.Create(actorAdmin, dto.CreateRepairRequest{DeviceType: "Notebook", Issue: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")
}

func TestRepairList_TecnicoVeSoloLasSuyasActivas(t *testing.T) {
	fx := newRepairFixture(t)
	own := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})
	fx.create(t, dto.CreateRepairRequest{TechnicianID: "t2"})
	finished := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})
	require.NoError(t, fx.uc.UpdateStatus(actorAdmin, finished.ID,
		dto.UpdateStatusRequest{Status: entity.StatusCompleted}))

	resp, err := fx.uc.List(actorJuan)
	require.NoError(t, err)
	require.Len(t, resp.Repairs, 1, "solo la propia sin terminar")
	assert.Equal(t, own.ID, resp.Repairs[0].ID)
	assert.Empty(t, resp.Technicians, "el técnico no recibe la lista de técnicos")

	admin, err := fx.uc.List(actorAdmin)
	require.NoError(t, err)
	assert.Len(t, admin.Repairs, 3)
	assert.Len(t, admin.Technicians, 2)
}

func TestRepairGet_MatrizDePermisos(t *testing.T) {
	fx := newRepairFixture(t)
	assigned := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})
	unassigned := fx.create(t, dto.CreateRepairRequest{})

	// El técnico asignado y el admin pueden abrirla; otro técnico no.
	_, err := fx.uc.Get(actorJuan, assigned.ID)
	assert.NoError(t, err)
	_, err = fx.uc.Get(actorAdmin, assigned.ID)
	assert.NoError(t, err)
	_, err = fx.uc.Get(actorOtro, assigned.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Las sin asignar las puede abrir cualquier técnico (para tomarlas).
	_, err = fx.uc.Get(actorOtro, unassigned.ID)
	assert.NoError(t, err)

	_, err = fx.uc.Get(actorAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepairUpdateStatus_PermisosYAuditoria(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})

	// Otro técnico no puede tocarla.
	err := fx.uc.UpdateStatus(actorOtro, r.ID, dto.UpdateStatusRequest{Status: entity.StatusInRepair})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El asignado sí, y queda la nota de auditoría.
	require.NoError(t, fx.uc.UpdateStatus(actorJuan, r.ID,
		dto.UpdateStatusRequest{Status: entity.StatusInRepair}))
	notes := fx.repairs.notesFor(r.ID)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[len(notes)-1].Text, "En reparación")

	// Estado desconocido: rechazado antes de tocar nada.
	err = fx.uc.UpdateStatus(actorJuan, r.ID, dto.UpdateStatusRequest{Status: "VOLANDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRepairUpdateStatus_EtiquetaLegacy(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})

	// Los formularios viejos mandan la etiqueta en español.
	require.NoError(t, fx.uc.UpdateStatus(actorJuan, r.ID,
		dto.UpdateStatusRequest{Status: "EN_REPARACION"}))
	got, err := fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInRepair, got.Status)
}

func TestRepairAssignTechnician(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{})

	// Solo administración asigna.
	err := fx.uc.AssignTechnician(actorJuan, r.ID, dto.AssignTechnicianRequest{TechnicianID: "t1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Asignar a alguien que no es técnico es inválido.
	err = fx.uc.AssignTechnician(actorAdmin, r.ID, dto.AssignTechnicianRequest{TechnicianID: "u-admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La asignación mueve SIN_ASIGNAR → EN_REVISION.
	require.NoError(t, fx.uc.AssignTechnician(actorAdmin, r.ID,
		dto.AssignTechnicianRequest{TechnicianID: "t1"}))
	got, err := fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInReview, got.Status)
	assert.Equal(t, "t1", got.TechnicianID)
}

func TestRepairComplete(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})

	err := fx.uc.Complete(actorJuan, r.ID, dto.CompleteRepairRequest{
		LaborCost:     decimal.NewFromInt(40000),
		PartsCost:     decimal.NewFromInt(15000),
		WorkPerformed: "Cambio de fuente",
	})
	require.NoError(t, err)

	got, err := fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.True(t, got.FinalCost.Equal(decimal.NewFromInt(55000)),
		"costo final = mano de obra + repuestos")
	assert.NotNil(t, got.DeliveryDate)

	// Completar dos veces es conflicto.
	err = fx.uc.Complete(actorJuan, r.ID, dto.CompleteRepairRequest{WorkPerformed: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepairCancel_MotivoObligatorio(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})

	err := fx.uc.Cancel(actorJuan, r.ID, dto.CancelRepairRequest{Reason: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, fx.uc.Cancel(actorJuan, r.ID,
		dto.CancelRepairRequest{Reason: "El cliente desistió"}))
	got, err := fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, got.Status)
	assert.Equal(t, "El cliente desistió", got.CancellationReason)
}

func TestRepairSearch_MinimoDosCaracteres(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{Brand: "Lenovo", TechnicianID: "t1"})
	require.NoError(t, fx.uc.UpdateStatus(actorAdmin, r.ID,
		dto.UpdateStatusRequest{Status: entity.StatusDelivered}))
	fx.create(t, dto.CreateRepairRequest{Brand: "Lenovo", CustomerName: "B", CustomerPhone: "9"})

	_, err := fx.uc.Search("L", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Solo las terminadas aparecen en el buscador del mostrador.
	out, err := fx.uc.Search("lenovo", 10)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestRepairUpdateCosts(t *testing.T) {
	fx := newRepairFixture(t)
	r := fx.create(t, dto.CreateRepairRequest{TechnicianID: "t1"})

	labor := decimal.NewFromInt(20000)
	parts := decimal.NewFromInt(5000)
	require.NoError(t, fx.uc.UpdateCosts(actorAdmin, r.ID,
		dto.UpdateCostsRequest{LaborCost: &labor, PartsCost: &parts}))

	got, err := fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.True(t, got.FinalCost.Equal(decimal.NewFromInt(25000)))

	// Actualizar solo el estimado no recalcula el final.
	estimated := decimal.NewFromInt(99000)
	require.NoError(t, fx.uc.UpdateCosts(actorAdmin, r.ID,
		dto.UpdateCostsRequest{EstimatedCost: &estimated}))
	got, err = fx.uc.Get(actorAdmin, r.ID)
	require.NoError(t, err)
	assert.True(t, got.FinalCost.Equal(decimal.NewFromInt(25000)))
}
