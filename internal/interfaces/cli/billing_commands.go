package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// ── Acuerdos ──────────────────────────────────────────────────────────────────

var agreementHeaders = []string{"ID", "协议编号", "客户", "开始", "结束", "收费方式", "金额", "状态"}

func (a *App) agreementRow(ag entity.Agreement) []string {
	customer := id(ag.CustomerID)
	if ag.Customer != nil {
		customer = ag.Customer.Name
	}
	return []string{
		id(ag.ID), ag.AgreementNumber, customer, date(ag.StartDate), date(ag.EndDate),
		string(ag.FeeType), a.Money.Currency(ag.Amount), string(ag.Status),
	}
}

func newAgreementsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "agreements",
		Short:       "Acuerdos de honorarios",
		Annotations: routed(navigation.PathAgreements),
	}

	var (
		q      dto.AgreementQuery
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar acuerdos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := changed(cmd.Flags(), "status", func() (err error) {
				q.Status, err = enumFlag("status", status, entity.AgreementStatus.Valid)
				return err
			}); err != nil {
				return err
			}
			res, err := app.API.Agreements.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, ag := range res.Items {
				rows = append(rows, app.agreementRow(ag))
			}
			return app.renderList(res, res.Total, agreementHeaders, rows)
		},
	}
	list.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "número de acuerdo o cliente")
	list.Flags().StringVar(&status, "status", "", "有效 | 已过期 | 已取消")
	list.Flags().UintVar(&q.CustomerID, "customer", 0, "ID de cliente")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Detalle de un acuerdo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aid, err := parseID(args[0])
			if err != nil {
				return err
			}
			ag, err := app.API.Agreements.Get(cmd.Context(), aid)
			if err != nil {
				return err
			}
			return app.render(ag, agreementHeaders, [][]string{app.agreementRow(*ag)})
		},
	}

	cmd.AddCommand(list, get,
		agreementSaveCommand(app, false),
		agreementSaveCommand(app, true),
		app.deleteCommand("acuerdo", app.API.Agreements.Delete),
	)
	return cmd
}

func agreementSaveCommand(app *App, update bool) *cobra.Command {
	var (
		customer                                uint
		number, start, end, fee, amount, status string
	)
	use, short, args := "create", "Alta de acuerdo", cobra.NoArgs
	if update {
		use, short, args = "update ID", "Modificar acuerdo (sólo los flags indicados)", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ag := &entity.Agreement{Status: entity.AgreementActive, FeeType: entity.FeeMonthly}
			var aid uint
			if update {
				var err error
				if aid, err = parseID(args[0]); err != nil {
					return err
				}
				if ag, err = app.API.Agreements.Get(ctx, aid); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			for _, err := range []error{
				changed(fs, "customer", func() error { ag.CustomerID = customer; return nil }),
				changed(fs, "number", func() error { ag.AgreementNumber = number; return nil }),
				changed(fs, "start", func() (err error) { ag.StartDate, err = parseDate(start); return err }),
				changed(fs, "end", func() (err error) { ag.EndDate, err = parseDate(end); return err }),
				changed(fs, "fee-type", func() (err error) {
					ag.FeeType, err = enumFlag("fee-type", fee, entity.FeeType.Valid)
					return err
				}),
				changed(fs, "amount", func() (err error) { ag.Amount, err = parseAmount(amount); return err }),
				changed(fs, "status", func() (err error) {
					ag.Status, err = enumFlag("status", status, entity.AgreementStatus.Valid)
					return err
				}),
			} {
				if err != nil {
					return err
				}
			}

			var saved *entity.Agreement
			var err error
			if update {
				saved, err = app.API.Agreements.Update(ctx, aid, ag)
			} else {
				saved, err = app.API.Agreements.Create(ctx, ag)
			}
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("保存成功")
			return app.render(saved, agreementHeaders, [][]string{app.agreementRow(*saved)})
		},
	}
	f := cmd.Flags()
	f.UintVar(&customer, "customer", 0, "ID de cliente")
	f.StringVar(&number, "number", "", "número de acuerdo")
	f.StringVar(&start, "start", "", "fecha de inicio YYYY-MM-DD")
	f.StringVar(&end, "end", "", "fecha de fin YYYY-MM-DD")
	f.StringVar(&fee, "fee-type", "", "月度 | 季度 | 年度")
	f.StringVar(&amount, "amount", "", "importe")
	f.StringVar(&status, "status", "", "有效 | 已过期 | 已取消")
	if !update {
		for _, name := range []string{"customer", "number", "start", "end", "amount"} {
			_ = cmd.MarkFlagRequired(name)
		}
	}
	return cmd
}

// ── Cobros ────────────────────────────────────────────────────────────────────

var paymentHeaders = []string{"ID", "客户", "协议", "金额", "收款日期", "方式", "所属期间", "备注"}

func (a *App) paymentRow(p entity.Payment) []string {
	customer := id(p.CustomerID)
	if p.Customer != nil {
		customer = p.Customer.Name
	}
	agreement := "-"
	switch {
	case p.Agreement != nil:
		agreement = p.Agreement.AgreementNumber
	case p.AgreementID != nil:
		agreement = id(*p.AgreementID)
	}
	return []string{
		id(p.ID), customer, agreement, a.Money.Currency(p.Amount), date(p.PaymentDate),
		string(p.PaymentMethod), orDash(p.Period), orDash(p.Remark),
	}
}

func newPaymentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "payments",
		Short:       "Cobros",
		Annotations: routed(navigation.PathPayments),
	}

	var q dto.PaymentQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar cobros",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := (dto.DateRange{StartDate: q.StartDate, EndDate: q.EndDate}).Validate(); err != nil {
				return err
			}
			res, err := app.API.Payments.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, p := range res.Items {
				rows = append(rows, app.paymentRow(p))
			}
			return app.renderList(res, res.Total, paymentHeaders, rows)
		},
	}
	list.Flags().UintVar(&q.CustomerID, "customer", 0, "ID de cliente")
	list.Flags().StringVar(&q.StartDate, "from", "", "desde YYYY-MM-DD")
	list.Flags().StringVar(&q.EndDate, "to", "", "hasta YYYY-MM-DD")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Detalle de un cobro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.API.Payments.Get(cmd.Context(), pid)
			if err != nil {
				return err
			}
			return app.render(p, paymentHeaders, [][]string{app.paymentRow(*p)})
		},
	}

	cmd.AddCommand(list, get,
		paymentSaveCommand(app, false),
		paymentSaveCommand(app, true),
		app.deleteCommand("cobro", app.API.Payments.Delete),
	)
	return cmd
}

func paymentSaveCommand(app *App, update bool) *cobra.Command {
	var (
		customer, agreement                 uint
		amount, day, method, period, remark string
	)
	use, short, args := "create", "Registrar cobro", cobra.NoArgs
	if update {
		use, short, args = "update ID", "Modificar cobro (sólo los flags indicados)", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := &entity.Payment{PaymentMethod: entity.PaymentTransfer, PaymentDate: today()}
			var pid uint
			if update {
				var err error
				if pid, err = parseID(args[0]); err != nil {
					return err
				}
				if p, err = app.API.Payments.Get(ctx, pid); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			for _, err := range []error{
				changed(fs, "customer", func() error { p.CustomerID = customer; return nil }),
				changed(fs, "agreement", func() error {
					if agreement == 0 {
						p.AgreementID = nil
					} else {
						p.AgreementID = &agreement
					}
					return nil
				}),
				changed(fs, "amount", func() (err error) { p.Amount, err = parseAmount(amount); return err }),
				changed(fs, "date", func() (err error) { p.PaymentDate, err = parseDate(day); return err }),
				changed(fs, "method", func() (err error) {
					p.PaymentMethod, err = enumFlag("method", method, entity.PaymentMethod.Valid)
					return err
				}),
				changed(fs, "period", func() error { p.Period = period; return nil }),
				changed(fs, "remark", func() error { p.Remark = remark; return nil }),
			} {
				if err != nil {
					return err
				}
			}

			var saved *entity.Payment
			var err error
			if update {
				saved, err = app.API.Payments.Update(ctx, pid, p)
			} else {
				saved, err = app.API.Payments.Create(ctx, p)
			}
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("保存成功")
			return app.render(saved, paymentHeaders, [][]string{app.paymentRow(*saved)})
		},
	}
	f := cmd.Flags()
	f.UintVar(&customer, "customer", 0, "ID de cliente")
	f.UintVar(&agreement, "agreement", 0, "ID de acuerdo (0 = ninguno)")
	f.StringVar(&amount, "amount", "", "importe")
	f.StringVar(&day, "date", "", "fecha de cobro YYYY-MM-DD (hoy por defecto)")
	f.StringVar(&method, "method", "", "转账 | 现金 | 支票 | 其他")
	f.StringVar(&period, "period", "", "periodo facturado, p. ej. 2024-01")
	f.StringVar(&remark, "remark", "", "observaciones")
	if !update {
		_ = cmd.MarkFlagRequired("customer")
		_ = cmd.MarkFlagRequired("amount")
	}
	return cmd
}

// ── Tareas ────────────────────────────────────────────────────────────────────

var taskHeaders = []string{"ID", "客户", "标题", "状态", "截止日期", "完成时间"}

func (a *App) taskRow(t entity.Task) []string {
	customer := id(t.CustomerID)
	if t.Customer != nil {
		customer = t.Customer.Name
	}
	status := string(t.Status)
	if t.Overdue(time.Now()) {
		status += " (逾期)"
	}
	return []string{id(t.ID), customer, t.Title, status, datePtr(t.DueDate), datePtr(t.CompletedAt)}
}

func newTasksCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "tasks",
		Short:       "Tareas",
		Annotations: routed(navigation.PathTasks),
	}

	var (
		q      dto.TaskQuery
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar tareas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := changed(cmd.Flags(), "status", func() (err error) {
				q.Status, err = enumFlag("status", status, entity.TaskStatus.Valid)
				return err
			}); err != nil {
				return err
			}
			res, err := app.API.Tasks.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, t := range res.Items {
				rows = append(rows, app.taskRow(t))
			}
			return app.renderList(res, res.Total, taskHeaders, rows)
		},
	}
	list.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "título o cliente")
	list.Flags().StringVar(&status, "status", "", "待处理 | 进行中 | 已完成")
	list.Flags().UintVar(&q.CustomerID, "customer", 0, "ID de cliente")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Detalle de una tarea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := app.API.Tasks.Get(cmd.Context(), tid)
			if err != nil {
				return err
			}
			return app.render(t, taskHeaders, [][]string{app.taskRow(*t)})
		},
	}

	complete := &cobra.Command{
		Use:   "complete ID",
		Short: "Marcar tarea como completada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := app.API.Tasks.Get(cmd.Context(), tid)
			if err != nil {
				return err
			}
			now := time.Now()
			t.Status, t.CompletedAt = entity.TaskCompleted, &now
			saved, err := app.API.Tasks.Update(cmd.Context(), tid, t)
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("任务已完成")
			return nil
		},
	}

	cmd.AddCommand(list, get, complete,
		taskSaveCommand(app, false),
		taskSaveCommand(app, true),
		app.deleteCommand("tarea", app.API.Tasks.Delete),
	)
	return cmd
}

func taskSaveCommand(app *App, update bool) *cobra.Command {
	var (
		customer                        uint
		title, description, due, status string
	)
	use, short, args := "create", "Alta de tarea", cobra.NoArgs
	if update {
		use, short, args = "update ID", "Modificar tarea (sólo los flags indicados)", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t := &entity.Task{Status: entity.TaskPending}
			var tid uint
			if update {
				var err error
				if tid, err = parseID(args[0]); err != nil {
					return err
				}
				if t, err = app.API.Tasks.Get(ctx, tid); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			for _, err := range []error{
				changed(fs, "customer", func() error { t.CustomerID = customer; return nil }),
				changed(fs, "title", func() error { t.Title = title; return nil }),
				changed(fs, "description", func() error { t.Description = description; return nil }),
				changed(fs, "due", func() error {
					d, err := parseDate(due)
					t.DueDate = &d
					return err
				}),
				changed(fs, "status", func() (err error) {
					t.Status, err = enumFlag("status", status, entity.TaskStatus.Valid)
					return err
				}),
			} {
				if err != nil {
					return err
				}
			}

			var saved *entity.Task
			var err error
			if update {
				saved, err = app.API.Tasks.Update(ctx, tid, t)
			} else {
				saved, err = app.API.Tasks.Create(ctx, t)
			}
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("保存成功")
			return app.render(saved, taskHeaders, [][]string{app.taskRow(*saved)})
		},
	}
	f := cmd.Flags()
	f.UintVar(&customer, "customer", 0, "ID de cliente")
	f.StringVar(&title, "title", "", "título")
	f.StringVar(&description, "description", "", "descripción")
	f.StringVar(&due, "due", "", "fecha límite YYYY-MM-DD")
	f.StringVar(&status, "status", "", "待处理 | 进行中 | 已完成")
	if !update {
		_ = cmd.MarkFlagRequired("customer")
		_ = cmd.MarkFlagRequired("title")
	}
	return cmd
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
