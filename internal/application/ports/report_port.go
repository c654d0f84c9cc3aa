package ports

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
)

// DashboardReportGenerator convierte las estadísticas del panel en un documento.
// El adaptador por defecto genera PDF con Maroto.
type DashboardReportGenerator interface {
	GenerateDashboardReport(ctx context.Context, report *dto.DashboardReport) ([]byte, error)
}
