package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

func newPeopleCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "people",
		Short:       "Personas: personal, representantes, inversores y personal de servicio",
		Annotations: routed(navigation.PathPeople),
	}
	cmd.AddCommand(
		peopleListCommand(app),
		peopleGetCommand(app),
		peopleCreateCommand(app),
		peopleUpdateCommand(app),
		app.deleteCommand("persona", app.API.People.Delete),
		peopleCustomersCommand(app),
	)
	return cmd
}

func peopleListCommand(app *App) *cobra.Command {
	var (
		q           dto.PeopleQuery
		serviceOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar personas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("service") {
				q.IsServicePerson = &serviceOnly
			}
			res, err := app.API.People.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, p := range res.Items {
				rows = append(rows, personRow(p))
			}
			return app.renderList(res, res.Total, personHeaders, rows)
		},
	}
	cmd.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "nombre, teléfono o documento")
	cmd.Flags().BoolVar(&serviceOnly, "service", false, "sólo personal de servicio (--service=false para excluirlo)")
	pageFlags(cmd, &q.PageRequest)
	return cmd
}

var personHeaders = []string{"ID", "姓名", "电话", "身份证", "服务人员", "法人企业", "投资企业", "服务企业"}

func personRow(p entity.Person) []string {
	return []string{
		id(p.ID), p.Name, orDash(p.Phone), orDash(p.IDCard), yesNo(p.IsServicePerson),
		orDash(p.RepresentativeCustomerIDs.String()), orDash(p.InvestorCustomerIDs.String()), orDash(p.ServiceCustomerIDs.String()),
	}
}

func peopleGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Detalle de una persona",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.API.People.Get(cmd.Context(), pid)
			if err != nil {
				return err
			}
			return app.render(p, personHeaders, [][]string{personRow(*p)})
		},
	}
}

// personFlags flags comunes de alta y modificación.
type personFlags struct {
	name, phone, idCard, password string
	service                       bool
	representative, investor      string
	serviceCustomers              string
}

func (f *personFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "nombre")
	cmd.Flags().StringVar(&f.phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&f.idCard, "id-card", "", "documento de identidad")
	cmd.Flags().StringVar(&f.password, "password", "", "contraseña de acceso (personal de servicio)")
	cmd.Flags().BoolVar(&f.service, "service", false, "es personal de servicio")
	cmd.Flags().StringVar(&f.representative, "representative-of", "", "IDs de empresas donde es representante legal (1,5,8)")
	cmd.Flags().StringVar(&f.investor, "investor-of", "", "IDs de empresas donde es inversor")
	cmd.Flags().StringVar(&f.serviceCustomers, "serves", "", "IDs de empresas que atiende")
}

func (f *personFlags) apply(cmd *cobra.Command, p *entity.Person) error {
	fs := cmd.Flags()
	set := func(name string, dst *string, v string) error {
		return changed(fs, name, func() error { *dst = v; return nil })
	}
	ids := func(name string, dst *entity.IDList, v string) error {
		return changed(fs, name, func() (err error) { *dst, err = idListFlag(v); return err })
	}
	for _, err := range []error{
		set("name", &p.Name, f.name),
		set("phone", &p.Phone, f.phone),
		set("id-card", &p.IDCard, f.idCard),
		set("password", &p.Password, f.password),
		changed(fs, "service", func() error { p.IsServicePerson = f.service; return nil }),
		ids("representative-of", &p.RepresentativeCustomerIDs, f.representative),
		ids("investor-of", &p.InvestorCustomerIDs, f.investor),
		ids("serves", &p.ServiceCustomerIDs, f.serviceCustomers),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func peopleCreateCommand(app *App) *cobra.Command {
	var f personFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Alta de persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &entity.Person{}
			if err := f.apply(cmd, p); err != nil {
				return err
			}
			created, err := app.API.People.Create(cmd.Context(), p)
			if err != nil || created == nil {
				return err
			}
			app.Notifier.Success("创建成功")
			return app.render(created, personHeaders, [][]string{personRow(*created)})
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func peopleUpdateCommand(app *App) *cobra.Command {
	var f personFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Modificar persona (sólo los flags indicados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.API.People.Get(cmd.Context(), pid)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, p); err != nil {
				return err
			}
			updated, err := app.API.People.Update(cmd.Context(), pid, p)
			if err != nil || updated == nil {
				return err
			}
			app.Notifier.Success("更新成功")
			return app.render(updated, personHeaders, [][]string{personRow(*updated)})
		},
	}
	f.register(cmd)
	return cmd
}

func peopleCustomersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "customers ID",
		Short: "Empresas relacionadas con una persona, por papel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseID(args[0])
			if err != nil {
				return err
			}
			pc, err := app.API.People.Customers(cmd.Context(), pid)
			if err != nil {
				return err
			}
			if app.output == formatJSON {
				return app.render(pc, nil, nil)
			}
			for _, group := range []struct {
				title string
				items []entity.Customer
			}{
				{"法人企业", pc.Representative},
				{"投资企业", pc.Investor},
				{"服务企业", pc.Service},
			} {
				app.section(group.title)
				rows := make([][]string, 0, len(group.items))
				for _, c := range group.items {
					rows = append(rows, []string{id(c.ID), c.Name, orDash(c.TaxNumber)})
				}
				if err := app.render(nil, []string{"ID", "企业名称", "税号"}, rows); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newServicePersonnelCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "service-personnel",
		Aliases:     []string{"sp"},
		Short:       "Personal de servicio",
		Annotations: routed(navigation.PathPeople),
	}

	var q dto.ServicePersonnelQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar personal de servicio con su número de clientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.API.ServicePersonnel.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, sp := range res.Items {
				rows = append(rows, servicePersonRow(sp))
			}
			return app.renderList(res, res.Total, servicePersonHeaders, rows)
		},
	}
	list.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "nombre o teléfono")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Detalle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := parseID(args[0])
			if err != nil {
				return err
			}
			sp, err := app.API.ServicePersonnel.Get(cmd.Context(), sid)
			if err != nil {
				return err
			}
			return app.render(sp, servicePersonHeaders, [][]string{servicePersonRow(*sp)})
		},
	}

	cmd.AddCommand(list, get,
		servicePersonSaveCommand(app, false),
		servicePersonSaveCommand(app, true),
		app.deleteCommand("persona de servicio", app.API.ServicePersonnel.Delete),
	)
	return cmd
}

var servicePersonHeaders = []string{"ID", "姓名", "电话", "身份证", "服务企业", "客户数"}

func servicePersonRow(sp entity.ServicePersonnel) []string {
	return []string{id(sp.ID), sp.Name, orDash(sp.Phone), orDash(sp.IDCard), orDash(sp.ServiceCustomerIDs.String()), strconv.Itoa(sp.CustomerCount)}
}

func servicePersonSaveCommand(app *App, update bool) *cobra.Command {
	var name, phone, idCard, password, serves string
	use, short, args := "create", "Alta de persona de servicio", cobra.NoArgs
	if update {
		use, short, args = "update ID", "Modificar persona de servicio", cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sp := &entity.ServicePersonnel{Type: entity.ServicePersonType}
			var sid uint
			if update {
				var err error
				if sid, err = parseID(args[0]); err != nil {
					return err
				}
				if sp, err = app.API.ServicePersonnel.Get(ctx, sid); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			_ = changed(fs, "name", func() error { sp.Name = name; return nil })
			_ = changed(fs, "phone", func() error { sp.Phone = phone; return nil })
			_ = changed(fs, "id-card", func() error { sp.IDCard = idCard; return nil })
			_ = changed(fs, "password", func() error { sp.Password = password; return nil })
			if err := changed(fs, "serves", func() (err error) { sp.ServiceCustomerIDs, err = idListFlag(serves); return err }); err != nil {
				return err
			}

			var saved *entity.ServicePersonnel
			var err error
			if update {
				saved, err = app.API.ServicePersonnel.Update(ctx, sid, sp)
			} else {
				saved, err = app.API.ServicePersonnel.Create(ctx, sp)
			}
			if err != nil || saved == nil {
				return err
			}
			app.Notifier.Success("保存成功")
			return app.render(saved, servicePersonHeaders, [][]string{servicePersonRow(*saved)})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nombre")
	cmd.Flags().StringVar(&phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&idCard, "id-card", "", "documento de identidad")
	cmd.Flags().StringVar(&password, "password", "", "contraseña de acceso")
	cmd.Flags().StringVar(&serves, "serves", "", "IDs de empresas que atiende (1,5,8)")
	if !update {
		_ = cmd.MarkFlagRequired("name")
	}
	return cmd
}
