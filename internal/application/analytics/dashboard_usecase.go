// Package analytics contiene los casos de uso del panel principal y su informe PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/internal/domain"
)

// StatsAPI estadísticas del backend.
type StatsAPI interface {
	Overview(ctx context.Context) (*dto.OverviewStats, error)
	Tasks(ctx context.Context) (*dto.TaskStats, error)
	Payments(ctx context.Context, r dto.DateRange) (*dto.PaymentStats, error)
}

// DashboardUseCase agrega las tres estadísticas del panel.
type DashboardUseCase struct {
	stats     StatsAPI
	generator ports.DashboardReportGenerator
	title     string
	now       func() time.Time
}

// NewDashboardUseCase generator puede ser nil si sólo se usa Summary.
func NewDashboardUseCase(stats StatsAPI, generator ports.DashboardReportGenerator, title string) *DashboardUseCase {
	return &DashboardUseCase{stats: stats, generator: generator, title: title, now: time.Now}
}

// Summary construye el informe del panel.
//
// Tres llamadas en paralelo:
//  1. Overview  → clientes, tareas pendientes, acuerdos vigentes, cobros mes/año
//  2. Tasks     → tareas por estado
//  3. Payments  → cobros del rango (vacío = todo)
func (uc *DashboardUseCase) Summary(ctx context.Context, r dto.DateRange) (*dto.DashboardReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	type overviewResult struct {
		v   *dto.OverviewStats
		err error
	}
	type tasksResult struct {
		v   *dto.TaskStats
		err error
	}
	type paymentsResult struct {
		v   *dto.PaymentStats
		err error
	}

	overviewCh := make(chan overviewResult, 1)
	tasksCh := make(chan tasksResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		v, err := uc.stats.Overview(ctx)
		overviewCh <- overviewResult{v, err}
	}()
	go func() {
		v, err := uc.stats.Tasks(ctx)
		tasksCh <- tasksResult{v, err}
	}()
	go func() {
		v, err := uc.stats.Payments(ctx, r)
		paymentsCh <- paymentsResult{v, err}
	}()

	overview := <-overviewCh
	tasks := <-tasksCh
	payments := <-paymentsCh

	if overview.err != nil {
		return nil, fmt.Errorf("panel: resumen: %w", overview.err)
	}
	if tasks.err != nil {
		return nil, fmt.Errorf("panel: tareas: %w", tasks.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("panel: cobros: %w", payments.err)
	}
	if overview.v == nil || tasks.v == nil || payments.v == nil {
		return nil, domain.ErrInvalidResponse
	}

	return &dto.DashboardReport{
		Title:    uc.title,
		Range:    r,
		Overview: *overview.v,
		Tasks:    *tasks.v,
		Payments: *payments.v,
	}, nil
}

// Report genera el PDF del panel y su nombre de fichero sugerido.
func (uc *DashboardUseCase) Report(ctx context.Context, r dto.DateRange) (pdf []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("panel: generador de informes no configurado")
	}
	report, err := uc.Summary(ctx, r)
	if err != nil {
		return nil, "", err
	}
	pdf, err = uc.generator.GenerateDashboardReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("panel: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("panel_%s.pdf", uc.now().Format("20060102")), nil
}
