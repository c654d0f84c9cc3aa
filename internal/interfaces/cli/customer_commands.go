package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

func newCustomersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "customers",
		Short:       "Clientes corporativos",
		Annotations: routed(navigation.PathCustomers),
	}
	cmd.AddCommand(
		customerListCommand(app),
		customerGetCommand(app),
		customerSaveCommand(app, false),
		customerSaveCommand(app, true),
		app.deleteCommand("cliente", app.API.Customers.Delete),
		customerCopyCommand(app),
		customerTasksCommand(app),
		customerPaymentsCommand(app),
		customerOptionsCommand(app),
	)
	return cmd
}

var customerHeaders = []string{"ID", "企业名称", "类型", "税号", "电话", "纳税人类型", "信用等级"}

func customerRow(c entity.Customer) []string {
	return []string{
		id(c.ID), c.Name, orDash(string(c.Type)), orDash(c.TaxNumber), orDash(c.Phone),
		orDash(string(c.TaxpayerType)), orDash(string(c.CreditRating)),
	}
}

func customerListCommand(app *App) *cobra.Command {
	var q dto.CustomerQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar clientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.API.Customers.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, c := range res.Items {
				rows = append(rows, customerRow(c))
			}
			return app.renderList(res, res.Total, customerHeaders, rows)
		},
	}
	cmd.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "nombre, teléfono o número fiscal")
	cmd.Flags().StringVar(&q.Representative, "representative", "", "nombre del representante legal")
	cmd.Flags().StringVar(&q.Investor, "investor", "", "nombre del inversor")
	cmd.Flags().StringVar(&q.ServicePerson, "service-person", "", "nombre de la persona de servicio")
	pageFlags(cmd, &q.PageRequest)
	return cmd
}

func customerGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Detalle de un cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.API.Customers.Get(cmd.Context(), cid)
			if err != nil {
				return err
			}
			fields := [][2]string{
				{"ID", id(c.ID)},
				{"企业名称", c.Name},
				{"类型", orDash(string(c.Type))},
				{"税号", orDash(c.TaxNumber)},
				{"电话", orDash(c.Phone)},
				{"地址", orDash(c.Address)},
				{"纳税人类型", orDash(string(c.TaxpayerType))},
				{"信用等级", orDash(string(c.CreditRating))},
				{"税务局", orDash(c.TaxOffice)},
				{"专管员", orDash(c.TaxAdministrator)},
				{"经营范围", orDash(c.BusinessScope)},
				{"投资人", orDash(c.InvestorIDs.String())},
				{"服务人员", orDash(c.ServicePersonIDs.String())},
			}
			if c.RegisteredCap != nil {
				fields = append(fields, [2]string{"注册资本", app.Money.Currency(*c.RegisteredCap)})
			}
			if c.Representative != nil {
				fields = append(fields, [2]string{"法人代表", c.Representative.Name})
			}
			for _, b := range c.BankAccounts {
				fields = append(fields, [2]string{"银行账户", fmt.Sprintf("%s %s (%s)", b.BankName, b.AccountNumber, b.AccountType)})
			}
			return app.renderFields(c, fields)
		},
	}
}

func customerSaveCommand(app *App, update bool) *cobra.Command {
	var (
		name, phone, address, taxNumber, typ      string
		taxpayer, rating, scope, taxOffice, admin string
		representative                            uint
		investors, servicePersons, agents         string
	)
	use, short, args := "create", "Alta de cliente", cobra.NoArgs
	if update {
		use, short, args = "update ID", "Modificar cliente (sólo los flags indicados)", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := &entity.Customer{}
			var cid uint
			if update {
				var err error
				if cid, err = parseID(args[0]); err != nil {
					return err
				}
				if c, err = app.API.Customers.Get(ctx, cid); err != nil {
					return err
				}
			}

			fs := cmd.Flags()
			str := func(flag string, dst *string, v string) error {
				return changed(fs, flag, func() error { *dst = strings.TrimSpace(v); return nil })
			}
			ids := func(flag string, dst *entity.IDList, v string) error {
				return changed(fs, flag, func() (err error) { *dst, err = idListFlag(v); return err })
			}
			for _, err := range []error{
				str("name", &c.Name, name),
				str("phone", &c.Phone, phone),
				str("address", &c.Address, address),
				str("tax-number", &c.TaxNumber, taxNumber),
				str("business-scope", &c.BusinessScope, scope),
				str("tax-office", &c.TaxOffice, taxOffice),
				str("tax-administrator", &c.TaxAdministrator, admin),
				changed(fs, "type", func() (err error) {
					c.Type, err = enumFlag("type", typ, entity.CustomerType.Valid)
					return err
				}),
				changed(fs, "taxpayer-type", func() (err error) {
					c.TaxpayerType, err = enumFlag("taxpayer-type", taxpayer, entity.TaxpayerType.Valid)
					return err
				}),
				changed(fs, "credit-rating", func() (err error) {
					c.CreditRating, err = enumFlag("credit-rating", rating, entity.CreditRating.Valid)
					return err
				}),
				changed(fs, "representative", func() error { c.RepresentativeID = &representative; return nil }),
				ids("investors", &c.InvestorIDs, investors),
				ids("service-persons", &c.ServicePersonIDs, servicePersons),
				ids("tax-agents", &c.TaxAgentIDs, agents),
			} {
				if err != nil {
					return err
				}
			}
			if c.Name == "" {
				return fmt.Errorf("%w: --name es obligatorio", domain.ErrInvalidInput)
			}

			var saved *entity.Customer
			var err error
			if update {
				saved, err = app.API.Customers.Update(ctx, cid, c)
			} else {
				saved, err = app.API.Customers.Create(ctx, c)
			}
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("保存成功")
			return app.render(saved, customerHeaders, [][]string{customerRow(*saved)})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "razón social")
	f.StringVar(&phone, "phone", "", "teléfono")
	f.StringVar(&address, "address", "", "dirección")
	f.StringVar(&taxNumber, "tax-number", "", "número de identificación fiscal")
	f.StringVar(&typ, "type", "", "forma jurídica (有限公司, 个人独资企业, 合伙企业, 个体工商户)")
	f.StringVar(&taxpayer, "taxpayer-type", "", "一般纳税人 | 小规模纳税人")
	f.StringVar(&rating, "credit-rating", "", "A | B | C | D | M")
	f.StringVar(&scope, "business-scope", "", "objeto social")
	f.StringVar(&taxOffice, "tax-office", "", "oficina tributaria")
	f.StringVar(&admin, "tax-administrator", "", "gestor tributario asignado")
	f.UintVar(&representative, "representative", 0, "ID de la persona representante legal")
	f.StringVar(&investors, "investors", "", "IDs de inversores (1,5,8)")
	f.StringVar(&servicePersons, "service-persons", "", "IDs del personal de servicio")
	f.StringVar(&agents, "tax-agents", "", "IDs de los gestores de impuestos")
	return cmd
}

func customerCopyCommand(app *App) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "copy ID",
		Short: "Copiar un campo del cliente al portapapeles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.API.Customers.Get(cmd.Context(), cid)
			if err != nil {
				return err
			}
			values := map[string]string{
				"tax_number": c.TaxNumber,
				"name":       c.Name,
				"phone":      c.Phone,
				"address":    c.Address,
			}
			v, ok := values[field]
			if !ok {
				return fmt.Errorf("%w: campo %q (tax_number|name|phone|address)", domain.ErrInvalidInput, field)
			}
			if v == "" {
				return fmt.Errorf("%w: el campo %s está vacío", domain.ErrInvalidInput, field)
			}
			if !app.Copier.SmartCopy(v) {
				return errCopyFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "tax_number", "campo a copiar: tax_number | name | phone | address")
	return cmd
}

func customerTasksCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks ID",
		Short: "Tareas del cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := parseID(args[0])
			if err != nil {
				return err
			}
			tasks, err := app.API.Customers.Tasks(cmd.Context(), cid)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, app.taskRow(t))
			}
			return app.render(tasks, taskHeaders, rows)
		},
	}
}

func customerPaymentsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "payments ID",
		Short: "Cobros del cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := parseID(args[0])
			if err != nil {
				return err
			}
			payments, err := app.API.Customers.Payments(cmd.Context(), cid)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(payments))
			for _, p := range payments {
				rows = append(rows, app.paymentRow(p))
			}
			return app.render(payments, paymentHeaders, rows)
		},
	}
}

func customerOptionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Valores admitidos: tipos de cliente, niveles de crédito y tipos de cuenta",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			types, err := app.API.Customers.Types(ctx)
			if err != nil {
				return err
			}
			ratings, err := app.API.Customers.CreditRatings(ctx)
			if err != nil {
				return err
			}
			accounts, err := app.API.Customers.AccountTypes(ctx)
			if err != nil {
				return err
			}
			join := func(n int, at func(int) string) string {
				parts := make([]string, n)
				for i := range parts {
					parts[i] = at(i)
				}
				return strings.Join(parts, ", ")
			}
			v := map[string]any{"types": types, "credit_ratings": ratings, "account_types": accounts}
			return app.renderFields(v, [][2]string{
				{"客户类型", join(len(types), func(i int) string { return string(types[i]) })},
				{"信用等级", join(len(ratings), func(i int) string { return string(ratings[i]) })},
				{"账户类型", join(len(accounts), func(i int) string { return string(accounts[i]) })},
			})
		},
	}
}
