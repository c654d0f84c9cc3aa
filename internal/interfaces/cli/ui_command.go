package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/interfaces/tui"
)

// newUICommand abre la consola interactiva. No lleva ruta: la propia consola
// pasa cada pantalla por la guarda y muestra el login si hace falta.
func newUICommand(app *App) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Consola interactiva a pantalla completa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps := tui.Deps{
				Session:   app.Session,
				Guard:     app.Guard,
				API:       app.API,
				Dashboard: app.Dashboard,
				Money:     app.Money,
				Log:       app.Log.Named("tui"),
			}
			return tui.Run(cmd.Context(), deps, app.Notifier, app.Navigator, start)
		},
	}
	cmd.Flags().StringVar(&start, "start", navigation.PathRoot, "pantalla inicial, p. ej. /customers")
	return cmd
}
