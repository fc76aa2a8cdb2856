package dto

import "github.com/shopspring/decimal"

// GoalSet metas del técnico según su turno.
type GoalSet struct {
	Monthly     float64         `json:"monthly"`
	Weekly      float64         `json:"weekly"`
	Daily       float64         `json:"daily"`
	RevenueGoal decimal.Decimal `json:"revenue_goal"`
}

// Evaluation evaluación ajustada a los días hábiles transcurridos del mes.
type Evaluation struct {
	Expected    float64 `json:"expected"`
	Percentage  float64 `json:"percentage"`
	Band        string  `json:"band"`  // PESIMO, MALO, REGULAR, BUENO, EXCELENTE
	Label       string  `json:"label"` // etiqueta en español para la interfaz
	Color       string  `json:"color"`
	Emoji       string  `json:"emoji"`
	AlertStatus string  `json:"alert_status"` // on-track, warning, urgent, critical
}

// DeviceBreakdown reparaciones completadas por tipo de equipo.
type DeviceBreakdown struct {
	DeviceType string `json:"device_type"`
	Count      int    `json:"count"`
}

// TechnicianMetrics vista personal de un técnico para el período.
type TechnicianMetrics struct {
	Username         string            `json:"username"`
	Name             string            `json:"name"`
	WorkShift        string            `json:"work_shift"`
	Goals            GoalSet           `json:"goals"`
	CompletedMonth   int               `json:"completed_month"`
	CompletedWeek    int               `json:"completed_week"`
	CompletedToday   int               `json:"completed_today"`
	LaborRevenue     decimal.Decimal   `json:"labor_revenue"`
	Evaluation       Evaluation        `json:"evaluation"`
	Devices          []DeviceBreakdown `json:"devices,omitempty"`
	WorkDays         int               `json:"work_days"`
	DaysElapsed      int               `json:"days_elapsed"`
	DaysLeft         int               `json:"days_left"`
	AvgRepairDays  float64           `json:"avg_repair_days"`
}

// MetricsResponse respuesta del endpoint de métricas. Para un técnico viene
// solo Personal; para administración viene el panorama por técnico.
type MetricsResponse struct {
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	Personal    *TechnicianMetrics  `json:"personal,omitempty"`
	Technicians []TechnicianMetrics `json:"technicians,omitempty"`
}

// DashboardResponse payload de la pantalla de inicio.
type DashboardResponse struct {
	User              SessionUser `json:"user"`
	RoleLabel         string      `json:"role_label"`
	PendingPartsCount int         `json:"pending_parts_count,omitempty"`
}
