package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain"
)

// annotationRoute ruta de la tabla de navegación que protege un grupo de comandos.
const annotationRoute = "route"

var (
	errNotLoggedIn    = fmt.Errorf("%w: ejecute `erpctl login`", domain.ErrNoSession)
	errMustChangePass = errors.New("debe cambiar la contraseña: ejecute `erpctl password`")
	errCopyFailed     = errors.New("复制失败")
)

// NewRootCommand árbol completo de comandos.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Consola de administración del ERP de la firma contable",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.setOutput(cmd); err != nil {
				return err
			}
			return app.guard(cmd)
		},
	}
	root.PersistentFlags().StringP("output", "o", formatTable, "formato de salida: table | json")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newPasswordCommand(app),
		newPeopleCommand(app),
		newServicePersonnelCommand(app),
		newCustomersCommand(app),
		newAgreementsCommand(app),
		newPaymentsCommand(app),
		newTasksCommand(app),
		newStatsCommand(app),
		newAuditCommand(app),
		newAdminCommand(app),
		newTransferCommand(app),
		newUICommand(app),
	)
	return root
}

// guard aplica la guarda de navegación a la ruta del grupo del comando.
func (a *App) guard(cmd *cobra.Command) error {
	route := routeOf(cmd)
	if route == "" {
		return nil
	}
	d := a.Guard.Before(route, a.Session.State())
	a.Log.Debug().Str("cmd", cmd.CommandPath()).Str("route", route).Str("to", d.Path).Str("reason", string(d.Reason)).Msg("guarda")
	if !d.Redirected {
		return nil
	}
	switch d.Reason {
	case navigation.ReasonUnauthenticated, navigation.ReasonLoop:
		return errNotLoggedIn
	case navigation.ReasonForbidden:
		return fmt.Errorf("%w: %s requiere rol manager", domain.ErrForbidden, cmd.CommandPath())
	case navigation.ReasonPasswordChange:
		return errMustChangePass
	}
	return nil
}

func routeOf(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if r, ok := c.Annotations[annotationRoute]; ok {
			return r
		}
	}
	return ""
}

func routed(path string) map[string]string {
	return map[string]string{annotationRoute: path}
}
