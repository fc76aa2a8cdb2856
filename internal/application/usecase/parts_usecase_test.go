package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

var actorDueno = Actor{Username: "dueño", Name: "Dueño", Role: entity.RoleAdmin}

func seedPartsRepairs(t *testing.T, repairs *memRepairRepo) (pending, purchased string) {
	t.Helper()
	p1 := &entity.Repair{ID: "r1", RepairNumber: "000001", Status: entity.StatusWaitingParts,
		PartsCost: decimal.NewFromInt(10000)}
	p2 := &entity.Repair{ID: "r2", RepairNumber: "000002", Status: entity.StatusWaitingParts,
		PartsStatus: entity.PartsPurchased, PartsCost: decimal.NewFromInt(25000)}
	require.NoError(t, repairs.Create(p1))
	require.NoError(t, repairs.Create(p2))
	return p1.ID, p2.ID
}

func TestPartsOverview(t *testing.T) {
	repairs := newMemRepairRepo()
	seedPartsRepairs(t, repairs)
	uc := NewPartsUseCase(repairs, testLogger())

	// Un técnico no entra al mostrador de compras.
	_, err := uc.Overview(actorJuan)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := uc.Overview(actorDueno)
	require.NoError(t, err)
	assert.Len(t, resp.Pending, 1)
	assert.Len(t, resp.Purchased, 1)
	assert.Empty(t, resp.Received)
	assert.Equal(t, 1, resp.Stats.Pending)
	assert.True(t, resp.Stats.TotalCost.Equal(decimal.NewFromInt(35000)))
}

func TestPartsMarkPurchased(t *testing.T) {
	repairs := newMemRepairRepo()
	pending, _ := seedPartsRepairs(t, repairs)
	uc := NewPartsUseCase(repairs, testLogger())

	// Solo el dueño autoriza compras.
	err := uc.MarkPurchased(actorJuan, dto.MarkPurchasedRequest{RepairID: pending, EstimatedArrivalDays: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.MarkPurchased(actorDueno, dto.MarkPurchasedRequest{RepairID: pending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los días de llegada son obligatorios")

	require.NoError(t, uc.MarkPurchased(actorDueno,
		dto.MarkPurchasedRequest{RepairID: pending, EstimatedArrivalDays: 3}))

	r, err := repairs.GetByID(pending)
	require.NoError(t, err)
	assert.Equal(t, entity.PartsPurchased, r.PartsStatus)
	require.NotNil(t, r.EstimatedArrival)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), *r.EstimatedArrival, time.Minute)

	notes := repairs.notesFor(pending)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[0].Text, "3 días")

	err = uc.MarkPurchased(actorDueno, dto.MarkPurchasedRequest{RepairID: "no-existe", EstimatedArrivalDays: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartsSetArrival(t *testing.T) {
	repairs := newMemRepairRepo()
	_, purchased := seedPartsRepairs(t, repairs)
	uc := NewPartsUseCase(repairs, testLogger())

	require.NoError(t, uc.SetArrival(actorDueno,
		dto.SetArrivalRequest{RepairID: purchased, ArrivalDays: 7}))

	r, err := repairs.GetByID(purchased)
	require.NoError(t, err)
	require.NotNil(t, r.EstimatedArrival)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *r.EstimatedArrival, time.Minute)
}
