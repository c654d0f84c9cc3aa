package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

var auditHeaders = []string{"ID", "用户", "操作", "资源", "名称", "状态", "时间", "原因"}

func auditRow(l entity.AuditLog) []string {
	user := id(l.UserID)
	if l.User != nil {
		user = l.User.Username
	}
	resource := l.ResourceType
	if l.ResourceID != nil {
		resource = fmt.Sprintf("%s #%d", l.ResourceType, *l.ResourceID)
	}
	return []string{
		id(l.ID), user, l.ActionType, resource, orDash(l.ResourceName), string(l.Status),
		l.CreatedAt.Format("2006-01-02 15:04"), orDash(l.Reason),
	}
}

func (a *App) renderAuditLogs(res *dto.ListResult[entity.AuditLog]) error {
	rows := make([][]string, 0, len(res.Items))
	for _, l := range res.Items {
		rows = append(rows, auditRow(l))
	}
	return a.renderList(res, res.Total, auditHeaders, rows)
}

func auditStatusFlag(cmd *cobra.Command, status string, q *dto.AuditLogQuery) error {
	return changed(cmd.Flags(), "status", func() (err error) {
		q.Status, err = enumFlag("status", status, entity.AuditStatus.Valid)
		return err
	})
}

func newAuditCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "audit",
		Short:       "Registro de auditoría",
		Annotations: routed(navigation.PathAuditLogs),
	}

	var (
		q      dto.AuditLogQuery
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar registros",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := auditStatusFlag(cmd, status, &q); err != nil {
				return err
			}
			res, err := app.API.AuditLogs.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return app.renderAuditLogs(res)
		},
	}
	list.Flags().StringVar(&status, "status", "", "pending | approved | rejected")
	pageFlags(list, &q.PageRequest)

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Vaciar el registro de auditoría",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := app.confirm("确定清空全部审计日志吗？[y/N] ")
				if err != nil || !ok {
					return err
				}
			}
			if err := app.API.AuditLogs.Clear(cmd.Context()); err != nil {
				return err
			}
			app.Notifier.Success("审计日志已清空")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")

	cmd.AddCommand(list, clearCmd, app.deleteCommand("registro de auditoría", app.API.AuditLogs.Delete))
	return cmd
}

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "admin",
		Short:       "Aprobaciones, usuarios y responsables",
		Annotations: routed(navigation.PathAuditLogs),
	}
	cmd.AddCommand(
		adminApprovalsCommand(app),
		adminDecideCommand(app, true),
		adminDecideCommand(app, false),
		adminLogsCommand(app),
		adminUsersCommand(app),
		adminCreateUserCommand(app),
		app.deleteCommand("usuario", app.API.Admin.DeleteUser),
		adminServicePeopleCommand(app),
		adminSetManagerCommand(app),
	)
	return cmd
}

func adminApprovalsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approvals",
		Short: "Operaciones pendientes de aprobación",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logs, err := app.API.Admin.PendingApprovals(cmd.Context())
			if err != nil {
				return err
			}
			return app.renderAuditLogs(&dto.ListResult[entity.AuditLog]{Total: int64(len(logs)), Items: logs})
		},
	}
}

func adminDecideCommand(app *App, approve bool) *cobra.Command {
	var reason string
	use, short := "approve LOG_ID", "Aprobar una operación pendiente"
	if !approve {
		use, short = "reject LOG_ID", "Rechazar una operación pendiente"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := dto.ApprovalRequest{LogID: logID, Reason: reason}
			decide := app.API.Admin.Approve
			if !approve {
				decide = app.API.Admin.Reject
			}
			res, err := decide(cmd.Context(), req)
			if err != nil {
				return err
			}
			msg := "已批准"
			if !approve {
				msg = "已拒绝"
			}
			if res != nil && res.Message != "" {
				msg = res.Message
			}
			app.Notifier.Success(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "motivo de la decisión")
	if !approve {
		_ = cmd.MarkFlagRequired("reason")
	}
	return cmd
}

func adminLogsCommand(app *App) *cobra.Command {
	var (
		q      dto.AuditLogQuery
		status string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Registro de auditoría de administración",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := auditStatusFlag(cmd, status, &q); err != nil {
				return err
			}
			res, err := app.API.Admin.AdminLogs(cmd.Context(), q)
			if err != nil {
				return err
			}
			return app.renderAuditLogs(res)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending | approved | rejected")
	pageFlags(cmd, &q.PageRequest)
	return cmd
}

var adminUserHeaders = []string{"ID", "用户名", "角色", "人员", "需修改密码", "创建时间"}

func adminUserRow(u entity.AdminUser) []string {
	person := "-"
	switch {
	case u.Person != nil:
		person = u.Person.Name
	case u.PersonID != nil:
		person = id(*u.PersonID)
	}
	return []string{id(u.ID), u.Username, u.Role, person, yesNo(u.MustChangePassword), date(u.CreatedAt)}
}

func adminUsersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Cuentas de acceso",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := app.API.Admin.Users(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, adminUserRow(u))
			}
			return app.render(users, adminUserHeaders, rows)
		},
	}
}

func adminCreateUserCommand(app *App) *cobra.Command {
	var req dto.CreateAdminUserRequest
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Crear cuenta de acceso para una persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				p, err := app.ReadPassword("初始密码: ")
				if err != nil {
					return err
				}
				req.Password = p
			}
			u, err := app.API.Admin.CreateUser(cmd.Context(), req)
			if err != nil || u == nil {
				return err
			}
			app.Notifier.Success("用户创建成功")
			return app.render(u, adminUserHeaders, [][]string{adminUserRow(*u)})
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "usuario")
	cmd.Flags().StringVar(&req.Password, "password", "", "contraseña inicial (se pide si falta)")
	cmd.Flags().UintVar(&req.PersonID, "person", 0, "ID de persona")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func adminServicePeopleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "service-people",
		Short: "Personal de servicio candidato a responsable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			people, err := app.API.Admin.ServicePeople(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(people))
			for _, p := range people {
				rows = append(rows, personRow(p))
			}
			return app.render(people, personHeaders, rows)
		},
	}
}

func adminSetManagerCommand(app *App) *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "set-manager PERSON_ID",
		Short: "Otorgar (o retirar con --revoke) el rol manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := app.API.Admin.SetManager(cmd.Context(), dto.SetManagerRequest{PersonID: pid, IsManager: !revoke})
			if err != nil {
				return err
			}
			msg := "设置成功"
			if res != nil && res.Message != "" {
				msg = res.Message
			}
			app.Notifier.Success(msg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "retirar el rol")
	return cmd
}
