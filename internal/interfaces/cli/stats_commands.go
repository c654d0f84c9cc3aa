package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
)

func newStatsCommand(app *App) *cobra.Command {
	var r dto.DateRange
	cmd := &cobra.Command{
		Use:         "stats",
		Short:       "Panel: resumen, tareas por estado y cobros",
		Annotations: routed(navigation.PathDashboard),
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Dashboard.Summary(cmd.Context(), r)
			if err != nil {
				return err
			}
			o, t, p := report.Overview, report.Tasks, report.Payments
			return app.renderFields(report, [][2]string{
				{"客户总数", app.Money.Int(o.CustomerCount)},
				{"待处理任务", app.Money.Int(o.PendingTaskCount)},
				{"有效协议", app.Money.Int(o.ActiveAgreementCount)},
				{"本月收款", app.Money.Currency(o.MonthlyPayment)},
				{"本年收款", app.Money.Currency(o.YearlyPayment)},
				{"任务: 待处理 / 进行中 / 已完成", app.Money.Int(t.Pending) + " / " + app.Money.Int(t.InProgress) + " / " + app.Money.Int(t.Completed)},
				{"区间收款笔数", app.Money.Int(p.Count)},
				{"区间收款金额", app.Money.Currency(p.TotalAmount)},
			})
		},
	}
	cmd.Flags().StringVar(&r.StartDate, "from", "", "cobros desde YYYY-MM-DD")
	cmd.Flags().StringVar(&r.EndDate, "to", "", "cobros hasta YYYY-MM-DD")
	cmd.AddCommand(statsReportCommand(app))
	return cmd
}

func statsReportCommand(app *App) *cobra.Command {
	var (
		r   dto.DateRange
		dir string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generar el informe PDF del panel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, name, err := app.Dashboard.Report(cmd.Context(), r)
			if err != nil {
				return err
			}
			path, err := erpapi.SaveBlob(dir, name, &dto.Blob{Filename: name, ContentType: "application/pdf", Data: data})
			if err != nil {
				return err
			}
			app.Notifier.Success("报表已生成: " + path)
			return nil
		},
	}
	wd, _ := os.Getwd()
	cmd.Flags().StringVar(&r.StartDate, "from", "", "cobros desde YYYY-MM-DD")
	cmd.Flags().StringVar(&r.EndDate, "to", "", "cobros hasta YYYY-MM-DD")
	cmd.Flags().StringVar(&dir, "dir", filepath.Clean(wd), "directorio de destino")
	return cmd
}
