package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
)

func TestWorkDays_LunesASabado(t *testing.T) {
	// Junio 2024: 30 días, 5 domingos (2, 9, 16, 23, 30) → 25 hábiles.
	today := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	total, elapsed := WorkDays(2024, 6, today)
	assert.Equal(t, 25, total)
	assert.Equal(t, 25, elapsed, "a fin de mes todos los días hábiles transcurrieron")

	// A mitad de mes: sábado 15 de junio → 13 hábiles transcurridos
	// (15 días menos los domingos 2 y 9).
	midMonth := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	total, elapsed = WorkDays(2024, 6, midMonth)
	assert.Equal(t, 25, total)
	assert.Equal(t, 13, elapsed)

	// Mes pasado visto desde julio: todo transcurrido.
	total, elapsed = WorkDays(2024, 6, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 25, total)
	assert.Equal(t, 25, elapsed)

	// Mes futuro: nada transcurrido.
	_, elapsed = WorkDays(2024, 8, midMonth)
	assert.Equal(t, 0, elapsed)
}

func TestEvaluate_Bandas(t *testing.T) {
	// Con 10 días hábiles transcurridos de 25 y meta 100, lo esperado es 40.
	cases := []struct {
		completed int
		band      string
		label     string
	}{
		{0, "PESIMO", "Pésimo"},
		{15, "PESIMO", "Pésimo"},   // 37.5%
		{16, "MALO", "Malo"},       // 40%: el límite inferior entra en la banda siguiente
		{23, "MALO", "Malo"},       // 57.5%
		{24, "REGULAR", "Regular"}, // 60%
		{31, "REGULAR", "Regular"}, // 77.5%
		{32, "BUENO", "Bueno"},     // 80%
		{39, "BUENO", "Bueno"},     // 97.5%
		{40, "EXCELENTE", "Excelente"},
		{50, "EXCELENTE", "Excelente"},
	}
	for _, c := range cases {
		ev := Evaluate(c.completed, 100, 10, 25)
		assert.Equal(t, c.band, ev.Band, "con %d completadas", c.completed)
		assert.Equal(t, c.label, ev.Label)
	}

	ev := Evaluate(20, 100, 10, 25)
	assert.InDelta(t, 40.0, ev.Expected, 0.001)
	assert.InDelta(t, 50.0, ev.Percentage, 0.001)
}

func TestEvaluate_SinDiasTranscurridos(t *testing.T) {
	// Sin meta esperada (inicio de mes) el porcentaje es cero, no división
	// por cero.
	ev := Evaluate(5, 100, 0, 25)
	assert.Zero(t, ev.Percentage)
	assert.Equal(t, "PESIMO", ev.Band)
}

func TestAlertFor(t *testing.T) {
	assert.Equal(t, "on-track", AlertFor(80, 10))
	assert.Equal(t, "on-track", AlertFor(120, 1))
	assert.Equal(t, "warning", AlertFor(50, 10))
	assert.Equal(t, "warning", AlertFor(79.9, 1))
	assert.Equal(t, "urgent", AlertFor(30, 5))
	assert.Equal(t, "critical", AlertFor(30, 6))
	assert.Equal(t, "critical", AlertFor(0, 20))
}

func TestGoalsFor(t *testing.T) {
	full := GoalsFor(entity.ShiftFullTime)
	assert.Equal(t, 100.0, full.Monthly)
	assert.Equal(t, 25.0, full.Weekly)
	assert.True(t, full.RevenueGoal.Equal(decimal.NewFromInt(2000000)))

	half := GoalsFor(entity.ShiftHalfTime)
	assert.Equal(t, 50.0, half.Monthly)
	assert.Equal(t, 12.5, half.Weekly)
	assert.True(t, half.RevenueGoal.Equal(decimal.NewFromInt(1000000)))

	// Turno desconocido o vacío: metas de tiempo completo.
	assert.Equal(t, 100.0, GoalsFor("").Monthly)
}

func TestMetrics_VistaPersonalDelTecnico(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) // sábado
	juan := &entity.User{ID: "t1", Username: "juan", Name: "Juan",
		Role: entity.RoleTechnician, WorkShift: entity.ShiftFullTime}

	delivered := now.Add(-24 * time.Hour)
	metricsRepo := &memMetricsRepo{byTechnician: map[string][]repository.PeriodRepair{
		"t1": {
			{Status: entity.StatusCompleted, DeviceType: "Notebook",
				ReceivedDate: now.AddDate(0, 0, -10), DeliveryDate: &delivered,
				LaborCost: decimal.NewFromInt(50000)},
			{Status: entity.StatusDelivered, DeviceType: "Celular",
				ReceivedDate: now.Add(-time.Hour), LaborCost: decimal.NewFromInt(30000)},
			{Status: entity.StatusInRepair, DeviceType: "Notebook",
				ReceivedDate: now.AddDate(0, 0, -2)},
		},
	}}

	uc := NewMetricsUseCase(metricsRepo, newMemUserRepo(juan), testLogger()).
		WithClock(func() time.Time { return now })

	resp, err := uc.ForPeriod(context.Background(), Actor{UserID: "t1", Username: "juan",
		Role: entity.RoleTechnician}, 6, 2024)
	require.NoError(t, err)
	require.NotNil(t, resp.Personal)
	assert.Nil(t, resp.Technicians, "el técnico no ve el panorama general")

	p := resp.Personal
	assert.Equal(t, 2, p.CompletedMonth, "solo COMPLETADO y ENTREGADO cuentan")
	assert.Equal(t, 1, p.CompletedToday)
	assert.True(t, p.LaborRevenue.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, 25, p.WorkDays)
	assert.Equal(t, 13, p.DaysElapsed)
	require.Len(t, p.Devices, 2)
	assert.Equal(t, "Notebook", p.Devices[0].DeviceType, "el tipo más frecuente primero")
}

func TestMetrics_PanoramaParaAdministracion(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	juan := &entity.User{ID: "t1", Username: "juan", Name: "Juan",
		Role: entity.RoleTechnician, WorkShift: entity.ShiftFullTime}
	rodrigo := &entity.User{ID: "t2", Username: "rodrigo", Name: "Rodrigo",
		Role: entity.RoleTechnician, WorkShift: entity.ShiftHalfTime}

	repairs := make([]repository.PeriodRepair, 0, 30)
	for i := 0; i < 30; i++ {
		repairs = append(repairs, repository.PeriodRepair{
			Status: entity.StatusCompleted, ReceivedDate: now.AddDate(0, 0, -5),
		})
	}
	metricsRepo := &memMetricsRepo{byTechnician: map[string][]repository.PeriodRepair{
		"t2": repairs, // rodrigo rinde mejor este mes
	}}

	uc := NewMetricsUseCase(metricsRepo, newMemUserRepo(juan, rodrigo), testLogger()).
		WithClock(func() time.Time { return now })

	resp, err := uc.ForPeriod(context.Background(), Actor{Username: "dueño",
		Role: entity.RoleAdmin}, 6, 2024)
	require.NoError(t, err)
	require.Len(t, resp.Technicians, 2)
	assert.Equal(t, "rodrigo", resp.Technicians[0].Username, "ordenado por porcentaje ajustado")
	assert.Equal(t, "EXCELENTE", resp.Technicians[0].Evaluation.Band)
	assert.Equal(t, "PESIMO", resp.Technicians[1].Evaluation.Band)
}

func TestMetrics_RolSinAcceso(t *testing.T) {
	uc := NewMetricsUseCase(&memMetricsRepo{}, newMemUserRepo(), testLogger())
	_, err := uc.ForPeriod(context.Background(), Actor{Username: "vendedor",
		Role: entity.RoleEmployee}, 6, 2024)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
