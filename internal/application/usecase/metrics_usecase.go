package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// Metas por turno: las del original, sin redondear (4.17 ≈ 100/24 días hábiles).
var (
	goalsFullTime = dto.GoalSet{Monthly: 100, Weekly: 25, Daily: 4.17, RevenueGoal: decimal.NewFromInt(2000000)}
	goalsHalfTime = dto.GoalSet{Monthly: 50, Weekly: 12.5, Daily: 2.08, RevenueGoal: decimal.NewFromInt(1000000)}
)

// GoalsFor devuelve las metas según el turno del técnico.
func GoalsFor(workShift string) dto.GoalSet {
	if workShift == entity.ShiftHalfTime {
		return goalsHalfTime
	}
	return goalsFullTime
}

// WorkDays cuenta los días hábiles (lunes a sábado) del mes y cuántos ya
// transcurrieron respecto a today. En meses pasados todos los días cuentan
// como transcurridos; en meses futuros, ninguno.
func WorkDays(year, month int, today time.Time) (total, elapsed int) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 1, -1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		total++
		if !d.After(today) {
			elapsed++
		}
	}
	return total, elapsed
}

// Evaluate calcula la evaluación ajustada al tiempo transcurrido: la meta
// esperada es la proporción de la meta mensual según los días hábiles que ya
// pasaron, y el porcentaje se mide contra ella.
func Evaluate(completed int, monthlyGoal float64, daysElapsed, totalDays int) dto.Evaluation {
	var expected, pct float64
	if totalDays > 0 {
		expected = monthlyGoal / float64(totalDays) * float64(daysElapsed)
	}
	if expected > 0 {
		pct = float64(completed) / expected * 100
	}
	ev := dto.Evaluation{Expected: expected, Percentage: pct}
	switch {
	case pct < 40:
		ev.Band, ev.Label, ev.Color, ev.Emoji = "PESIMO", "Pésimo", "red", "😰"
	case pct < 60:
		ev.Band, ev.Label, ev.Color, ev.Emoji = "MALO", "Malo", "orange", "😟"
	case pct < 80:
		ev.Band, ev.Label, ev.Color, ev.Emoji = "REGULAR", "Regular", "yellow", "😐"
	case pct < 100:
		ev.Band, ev.Label, ev.Color, ev.Emoji = "BUENO", "Bueno", "green", "😊"
	default:
		ev.Band, ev.Label, ev.Color, ev.Emoji = "EXCELENTE", "Excelente", "purple", "🌟"
	}
	return ev
}

// AlertFor clasifica el estado de alerta según el porcentaje ajustado y los
// días hábiles que quedan del mes.
func AlertFor(percentage float64, daysLeft int) string {
	switch {
	case percentage >= 80:
		return "on-track"
	case percentage >= 50:
		return "warning"
	case daysLeft <= 5:
		return "urgent"
	default:
		return "critical"
	}
}

// MetricsUseCase calcula el desempeño de los técnicos contra sus metas.
type MetricsUseCase struct {
	metrics repository.MetricsRepository
	users   repository.UserRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewMetricsUseCase construye el caso de uso de métricas.
func NewMetricsUseCase(metrics repository.MetricsRepository, users repository.UserRepository, log *logger.Logger) *MetricsUseCase {
	return &MetricsUseCase{metrics: metrics, users: users, log: log, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *MetricsUseCase) WithClock(now func() time.Time) *MetricsUseCase {
	uc.now = now
	return uc
}

// ForPeriod devuelve las métricas del período. Los técnicos reciben su vista
// personal; administración y dueño, el panorama por técnico. Cualquier otro
// rol no tiene acceso.
func (uc *MetricsUseCase) ForPeriod(ctx context.Context, actor Actor, month, year int) (*dto.MetricsResponse, error) {
	now := uc.now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}
	switch {
	case actor.IsTechnician():
		personal, err := uc.technicianMetrics(ctx, actor.UserID, actor.Username, month, year)
		if err != nil {
			return nil, err
		}
		return &dto.MetricsResponse{Month: month, Year: year, Personal: personal}, nil
	case actor.IsOwner():
		overview, err := uc.overview(ctx, month, year)
		if err != nil {
			return nil, err
		}
		return &dto.MetricsResponse{Month: month, Year: year, Technicians: overview}, nil
	default:
		return nil, domain.ErrForbidden
	}
}

func (uc *MetricsUseCase) technicianMetrics(ctx context.Context, userID, username string, month, year int) (*dto.TechnicianMetrics, error) {
	u, err := uc.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if userID == "" {
		userID = u.ID
	}
	from, to := periodBounds(year, month, uc.now().Location())
	repairs, err := uc.metrics.RepairsByTechnician(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	m := uc.buildMetrics(u, repairs, month, year)
	return &m, nil
}

func (uc *MetricsUseCase) overview(ctx context.Context, month, year int) ([]dto.TechnicianMetrics, error) {
	techs, err := uc.users.ListTechnicians()
	if err != nil {
		return nil, err
	}
	from, to := periodBounds(year, month, uc.now().Location())
	out := make([]dto.TechnicianMetrics, 0, len(techs))
	for _, t := range techs {
		repairs, err := uc.metrics.RepairsByTechnician(ctx, t.ID, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, uc.buildMetrics(t, repairs, month, year))
	}
	// Ranking por porcentaje ajustado, el mejor primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Evaluation.Percentage > out[j].Evaluation.Percentage
	})
	return out, nil
}

func (uc *MetricsUseCase) buildMetrics(u *entity.User, repairs []repository.PeriodRepair, month, year int) dto.TechnicianMetrics {
	now := uc.now()
	goals := GoalsFor(u.WorkShift)
	totalDays, elapsed := WorkDays(year, month, now)
	daysLeft := totalDays - elapsed

	var completed, weekCompleted, todayCompleted int
	var revenue decimal.Decimal
	var totalRepairDays float64
	var withDelivery int
	devices := map[string]int{}

	isCurrentMonth := year == now.Year() && month == int(now.Month())
	weekStart := startOfWeek(now)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, r := range repairs {
		revenue = revenue.Add(r.LaborCost)
		if r.DeviceType != "" {
			devices[r.DeviceType]++
		}
		if !entity.IsFinished(r.Status) {
			continue
		}
		completed++
		if isCurrentMonth && !r.ReceivedDate.Before(weekStart) {
			weekCompleted++
		}
		if isCurrentMonth && !r.ReceivedDate.Before(dayStart) {
			todayCompleted++
		}
		if r.DeliveryDate != nil {
			totalRepairDays += r.DeliveryDate.Sub(r.ReceivedDate).Hours() / 24
			withDelivery++
		}
	}

	ev := Evaluate(completed, goals.Monthly, elapsed, totalDays)
	ev.AlertStatus = AlertFor(ev.Percentage, daysLeft)

	m := dto.TechnicianMetrics{
		Username:       u.Username,
		Name:           u.Name,
		WorkShift:      u.WorkShift,
		Goals:          goals,
		CompletedMonth: completed,
		CompletedWeek:  weekCompleted,
		CompletedToday: todayCompleted,
		LaborRevenue:   revenue,
		Evaluation:     ev,
		WorkDays:       totalDays,
		DaysElapsed:    elapsed,
		DaysLeft:       daysLeft,
	}
	if withDelivery > 0 {
		m.AvgRepairDays = totalRepairDays / float64(withDelivery)
	}
	for deviceType, count := range devices {
		m.Devices = append(m.Devices, dto.DeviceBreakdown{DeviceType: deviceType, Count: count})
	}
	sort.Slice(m.Devices, func(i, j int) bool {
		if m.Devices[i].Count != m.Devices[j].Count {
			return m.Devices[i].Count > m.Devices[j].Count
		}
		return m.Devices[i].DeviceType < m.Devices[j].DeviceType
	})
	return m
}

// periodBounds devuelve [primer día 00:00, último día 23:59:59.999...] del mes.
func periodBounds(year, month int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// startOfWeek devuelve el lunes de la semana de t a las 00:00.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - 1
	if offset < 0 { // domingo
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}
