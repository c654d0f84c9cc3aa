package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/application/transfer"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
)

func newTransferCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "transfer",
		Short:       "Plantillas, importación y exportación en Excel",
		Annotations: routed(navigation.PathImportExport),
	}
	cmd.AddCommand(
		transferDownloadCommand(app, "template", "Descargar la plantilla de importación", app.API.Transfer.Template),
		transferDownloadCommand(app, "export", "Exportar todos los registros", app.API.Transfer.Export),
		transferImportCommand(app),
		transferWatchCommand(app),
	)
	return cmd
}

func transferDownloadCommand(app *App, use, short string, fetch func(context.Context, dto.TransferKind) (*dto.Blob, error)) *cobra.Command {
	var dir, name string
	cmd := &cobra.Command{
		Use:       use + " people|customers",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(dto.KindPeople), string(dto.KindCustomers)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := dto.ParseTransferKind(args[0])
			if err != nil {
				return err
			}
			blob, err := fetch(cmd.Context(), kind)
			if err != nil {
				return err
			}
			path, err := erpapi.SaveBlob(dir, name, blob)
			if err != nil {
				return err
			}
			app.Notifier.Success("下载完成: " + path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directorio de destino")
	cmd.Flags().StringVar(&name, "name", "", "nombre del fichero (por defecto el del servidor)")
	return cmd
}

func transferImportCommand(app *App) *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "import people|customers FILE",
		Short: "Importar un fichero .xlsx",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := dto.ParseTransferKind(args[0])
			if err != nil {
				return err
			}
			st, err := dto.ParseImportStrategy(strategy)
			if err != nil {
				return err
			}
			res, err := app.API.Transfer.ImportFile(cmd.Context(), kind, args[1], st)
			if err != nil || res == nil {
				return err
			}
			return app.renderImport(res)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", string(dto.StrategySkip), "filas existentes: skip | update | create_new")
	return cmd
}

func (a *App) renderImport(res *dto.ImportResult) error {
	a.Notifier.Success(fmt.Sprintf("导入完成: 共 %d 条，成功 %d 条，失败 %d 条", res.Total, res.Success, res.Failed))
	if len(res.Errors) == 0 && a.output == formatTable {
		return nil
	}
	rows := make([][]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		rows = append(rows, []string{strconv.Itoa(e.Row), orDash(e.Column), e.Message})
	}
	return a.render(res, []string{"行", "列", "错误"}, rows)
}

func transferWatchCommand(app *App) *cobra.Command {
	var (
		kind, strategy string
		scan           bool
	)
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Vigilar una bandeja e importar cada .xlsx que aparezca",
		Long: `Vigila DIR y sube cada fichero .xlsx cuando sus escrituras se asientan
(WATCH_DEBOUNCE_MS, 300ms por defecto). Los ficheros importados se mueven
a DIR/` + transfer.DoneDir + `/. Ctrl+C para terminar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			w, err := transfer.NewWatcher(app.API.Transfer, transfer.Options{
				Dir:          dir,
				Kind:         dto.TransferKind(kind),
				Strategy:     dto.ImportStrategy(strategy),
				Debounce:     app.Config.Watch.Debounce,
				ScanExisting: scan,
			}, app.Notifier, app.Log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app.Notifier.Info(fmt.Sprintf("正在监听 %s (%s)", dir, kind))
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(dto.KindCustomers), "people | customers")
	cmd.Flags().StringVar(&strategy, "strategy", string(dto.StrategySkip), "skip | update | create_new")
	cmd.Flags().BoolVar(&scan, "scan", false, "importar también los .xlsx ya presentes")
	return cmd
}
