package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-admin/internal/application/dto"
)

func sampleReport() *dto.DashboardReport {
	return &dto.DashboardReport{
		Title: "ERP 代账管理系统",
		Range: dto.DateRange{StartDate: "2024-01-01", EndDate: "2024-03-31"},
		Overview: dto.OverviewStats{
			CustomerCount:        12,
			PendingTaskCount:     3,
			ActiveAgreementCount: 9,
			MonthlyPayment:       decimal.RequireFromString("8000"),
			YearlyPayment:        decimal.RequireFromString("24000.5"),
		},
		Tasks:    dto.TaskStats{Pending: 3, InProgress: 2, Completed: 5},
		Payments: dto.PaymentStats{TotalAmount: decimal.RequireFromString("24000.5"), Count: 30},
	}
}

func TestMarotoReportGenerator_GeneraPDF(t *testing.T) {
	g := NewMarotoReportGenerator("", nil)
	g.now = func() time.Time { return time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC) }

	out, err := g.GenerateDashboardReport(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "debe ser un PDF")
}

func TestMarotoReportGenerator_InformeNil(t *testing.T) {
	_, err := NewMarotoReportGenerator("", nil).GenerateDashboardReport(context.Background(), nil)
	assert.Error(t, err)
}

func TestMarotoReportGenerator_FuenteInexistente(t *testing.T) {
	_, err := NewMarotoReportGenerator("/no/existe.ttf", nil).GenerateDashboardReport(context.Background(), sampleReport())
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "50%", percent(5, 10))
	assert.Equal(t, "0%", percent(0, 0))
	assert.Equal(t, "todo", rangeLabel(dto.DateRange{}))
	assert.Equal(t, "desde 2024-01-01", rangeLabel(dto.DateRange{StartDate: "2024-01-01"}))
	assert.Equal(t, "2024-01-01 a 2024-03-31", rangeLabel(dto.DateRange{StartDate: "2024-01-01", EndDate: "2024-03-31"}))
	assert.True(t, latin("Informe del año"))
	assert.False(t, latin("代账"))
}
