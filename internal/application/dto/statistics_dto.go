package dto

import "github.com/shopspring/decimal"

// OverviewStats resumen del panel principal.
type OverviewStats struct {
	CustomerCount        int64           `json:"customer_count"`
	PendingTaskCount     int64           `json:"pending_task_count"`
	ActiveAgreementCount int64           `json:"active_agreement_count"`
	MonthlyPayment       decimal.Decimal `json:"monthly_payment"`
	YearlyPayment        decimal.Decimal `json:"yearly_payment"`
}

// TaskStats tareas por estado.
type TaskStats struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// Total suma de tareas.
func (s TaskStats) Total() int64 {
	return s.Pending + s.InProgress + s.Completed
}

// PaymentStats importe y número de cobros en un rango.
type PaymentStats struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

// DashboardReport datos agregados para el informe PDF.
type DashboardReport struct {
	Title    string
	Range    DateRange
	Overview OverviewStats
	Tasks    TaskStats
	Payments PaymentStats
}
