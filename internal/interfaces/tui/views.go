package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
	"github.com/jhoicas/erp-admin/internal/infrastructure/notify"
)

// searchDelay espera tras la última tecla antes de consultar al backend.
const searchDelay = 300 * time.Millisecond

// ownedMsg mensaje asíncrono dirigido a una vista concreta aunque ya no sea la activa.
type ownedMsg interface {
	owner() view
}

func (m *Model) build(path string) view {
	ctx, api, money := m.ctx, m.deps.API, m.deps.Money
	switch path {
	case navigation.PathLogin:
		return newLoginView(ctx, m.deps)
	case navigation.PathChangePassword:
		return newPasswordView(ctx, m.deps)
	case navigation.PathDashboard:
		return newDashboardView(ctx, m.deps, m.styles)
	case navigation.PathImportExport:
		return newTransferView(ctx, api, m.styles)
	case navigation.PathCustomers:
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "名称", Width: 28}, {Title: "税号", Width: 20},
			{Title: "类型", Width: 12}, {Title: "电话", Width: 14},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.Customers.List(ctx, dto.CustomerQuery{Keyword: kw, PageRequest: dto.PageRequest{Limit: 100}})
			if err != nil || res == nil {
				return nil, 0, err
			}
			rows := make([]table.Row, 0, len(res.Items))
			for _, c := range res.Items {
				rows = append(rows, table.Row{uitoa(c.ID), c.Name, c.TaxNumber, string(c.Type), c.Phone})
			}
			return rows, res.Total, nil
		})
	case navigation.PathPeople:
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "姓名", Width: 16}, {Title: "电话", Width: 14},
			{Title: "身份证", Width: 20}, {Title: "服务人员", Width: 8},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.People.List(ctx, dto.PeopleQuery{Keyword: kw, PageRequest: dto.PageRequest{Limit: 100}})
			if err != nil || res == nil {
				return nil, 0, err
			}
			rows := make([]table.Row, 0, len(res.Items))
			for _, p := range res.Items {
				rows = append(rows, table.Row{uitoa(p.ID), p.Name, p.Phone, p.IDCard, yesNo(p.IsServicePerson)})
			}
			return rows, res.Total, nil
		})
	case navigation.PathTasks:
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "客户", Width: 24}, {Title: "标题", Width: 24},
			{Title: "状态", Width: 8}, {Title: "截止日期", Width: 16},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.Tasks.List(ctx, dto.TaskQuery{Keyword: kw})
			if err != nil || res == nil {
				return nil, 0, err
			}
			now := time.Now()
			rows := make([]table.Row, 0, len(res.Items))
			for _, t := range res.Items {
				due := "-"
				if t.DueDate != nil {
					due = t.DueDate.Format(dto.DateLayout)
					if t.Overdue(now) {
						due += " (逾期)"
					}
				}
				customer := "-"
				if t.Customer != nil {
					customer = t.Customer.Name
				}
				rows = append(rows, table.Row{uitoa(t.ID), customer, t.Title, string(t.Status), due})
			}
			return rows, res.Total, nil
		})
	case navigation.PathAgreements:
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "协议编号", Width: 16}, {Title: "客户", Width: 24},
			{Title: "收费方式", Width: 8}, {Title: "金额", Width: 14}, {Title: "状态", Width: 8},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.Agreements.List(ctx, dto.AgreementQuery{Keyword: kw})
			if err != nil || res == nil {
				return nil, 0, err
			}
			rows := make([]table.Row, 0, len(res.Items))
			for _, a := range res.Items {
				customer := "-"
				if a.Customer != nil {
					customer = a.Customer.Name
				}
				rows = append(rows, table.Row{uitoa(a.ID), a.AgreementNumber, customer, string(a.FeeType), money.Currency(a.Amount), string(a.Status)})
			}
			return rows, res.Total, nil
		})
	case navigation.PathPayments:
		// /payments no filtra por texto: la búsqueda se aplica sobre las filas recibidas.
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "客户", Width: 24}, {Title: "金额", Width: 14},
			{Title: "收款日期", Width: 12}, {Title: "方式", Width: 6}, {Title: "所属期间", Width: 10},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.Payments.List(ctx, dto.PaymentQuery{})
			if err != nil || res == nil {
				return nil, 0, err
			}
			rows := make([]table.Row, 0, len(res.Items))
			for _, p := range res.Items {
				customer := "-"
				if p.Customer != nil {
					customer = p.Customer.Name
				}
				rows = append(rows, table.Row{uitoa(p.ID), customer, money.Currency(p.Amount), p.PaymentDate.Format(dto.DateLayout), string(p.PaymentMethod), p.Period})
			}
			rows = filterRows(rows, kw)
			return rows, int64(len(rows)), nil
		})
	case navigation.PathAuditLogs:
		return newTableView(ctx, m.styles, []table.Column{
			{Title: "ID", Width: 6}, {Title: "用户类型", Width: 14}, {Title: "操作", Width: 8},
			{Title: "资源", Width: 10}, {Title: "名称", Width: 20}, {Title: "状态", Width: 10}, {Title: "时间", Width: 16},
		}, func(ctx context.Context, kw string) ([]table.Row, int64, error) {
			res, err := api.AuditLogs.List(ctx, dto.AuditLogQuery{PageRequest: dto.PageRequest{Limit: 100}})
			if err != nil || res == nil {
				return nil, 0, err
			}
			rows := make([]table.Row, 0, len(res.Items))
			for _, l := range res.Items {
				rows = append(rows, table.Row{uitoa(l.ID), l.UserType, l.ActionType, l.ResourceType, l.ResourceName, string(l.Status), l.CreatedAt.Format("2006-01-02 15:04")})
			}
			filtered := filterRows(rows, kw)
			if kw == "" {
				return filtered, res.Total, nil
			}
			return filtered, int64(len(filtered)), nil
		})
	}
	return emptyView{}
}

// ── Tabla con búsqueda ────────────────────────────────────────────────────────

type loader func(ctx context.Context, keyword string) ([]table.Row, int64, error)

type loadedMsg struct {
	view  *tableView
	req   int
	rows  []table.Row
	total int64
	err   error
}

func (m loadedMsg) owner() view { return m.view }

type searchTickMsg struct {
	view *tableView
	seq  int
}

func (m searchTickMsg) owner() view { return m.view }

type tableView struct {
	ctx       context.Context
	load      loader
	table     table.Model
	search    textinput.Model
	searching bool
	typed     int // pulsaciones en el buscador; el tick sólo consulta si sigue siendo la última
	req       int // consulta en curso; las respuestas anteriores se descartan
	loading   bool
	total     int64
	err       error
	styles    styles
}

func newTableView(ctx context.Context, st styles, cols []table.Column, load loader) *tableView {
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(15))
	ts := table.DefaultStyles()
	ts.Header = ts.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	t.SetStyles(ts)

	si := textinput.New()
	si.Placeholder = "搜索..."
	si.Prompt = "/ "
	si.CharLimit = 50
	si.Width = 40

	return &tableView{ctx: ctx, load: load, table: t, search: si, styles: st}
}

func (v *tableView) Init() tea.Cmd { return v.fetch() }

func (v *tableView) Capturing() bool { return v.searching }

func (v *tableView) fetch() tea.Cmd {
	v.req++
	v.loading = true
	req, kw := v.req, strings.TrimSpace(v.search.Value())
	return func() tea.Msg {
		rows, total, err := v.load(v.ctx, kw)
		return loadedMsg{view: v, req: req, rows: rows, total: total, err: err}
	}
}

func (v *tableView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.req != v.req {
			return nil
		}
		v.loading, v.err = false, msg.err
		if msg.err == nil {
			v.table.SetRows(msg.rows)
			v.total = msg.total
		}
		return nil
	case searchTickMsg:
		if msg.seq != v.typed {
			return nil
		}
		return v.fetch()
	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			v.searching = true
			return v.search.Focus()
		case "r":
			return v.fetch()
		}
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

func (v *tableView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.searching = false
		v.search.Blur()
		return nil
	case "enter":
		v.searching = false
		v.search.Blur()
		v.typed++
		return v.fetch()
	}
	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() == before {
		return cmd
	}
	v.typed++
	seq := v.typed
	return tea.Batch(cmd, tea.Tick(searchDelay, func(time.Time) tea.Msg {
		return searchTickMsg{view: v, seq: seq}
	}))
}

func (v *tableView) View() string {
	status := fmt.Sprintf("共 %d 条", v.total)
	switch {
	case v.loading:
		status = "加载中..."
	case v.err != nil:
		status = "加载失败: " + v.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.search.View(),
		v.table.View(),
		v.styles.muted.Render(status),
	)
}

// ── Panel ─────────────────────────────────────────────────────────────────────

type dashboardMsg struct {
	view   *dashboardView
	report *dto.DashboardReport
	err    error
}

func (m dashboardMsg) owner() view { return m.view }

type dashboardView struct {
	ctx     context.Context
	deps    Deps
	report  *dto.DashboardReport
	loading bool
	err     error
	styles  styles
}

func newDashboardView(ctx context.Context, deps Deps, st styles) *dashboardView {
	return &dashboardView{ctx: ctx, deps: deps, styles: st}
}

func (v *dashboardView) Init() tea.Cmd { return v.fetch() }

func (v *dashboardView) Capturing() bool { return false }

func (v *dashboardView) fetch() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		report, err := v.deps.Dashboard.Summary(v.ctx, dto.DateRange{})
		return dashboardMsg{view: v, report: report, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardMsg:
		v.loading, v.err = false, msg.err
		if msg.err == nil {
			v.report = msg.report
		}
	case tea.KeyMsg:
		if msg.String() == "r" {
			return v.fetch()
		}
	}
	return nil
}

func (v *dashboardView) View() string {
	switch {
	case v.loading && v.report == nil:
		return v.styles.muted.Render("加载中...")
	case v.err != nil:
		return v.styles.muted.Render("加载失败: " + v.err.Error())
	case v.report == nil:
		return ""
	}
	r, money := v.report, v.deps.Money
	card := func(label, value string) string {
		return v.styles.card.Render(v.styles.label.Render(label) + "\n" + v.styles.value.Render(value))
	}
	overview := lipgloss.JoinHorizontal(lipgloss.Top,
		card("客户总数", money.Int(r.Overview.CustomerCount)),
		card("待处理任务", money.Int(r.Overview.PendingTaskCount)),
		card("有效协议", money.Int(r.Overview.ActiveAgreementCount)),
		card("本月收款", money.Currency(r.Overview.MonthlyPayment)),
		card("本年收款", money.Currency(r.Overview.YearlyPayment)),
	)
	tasks := lipgloss.JoinHorizontal(lipgloss.Top,
		card("待处理", money.Int(r.Tasks.Pending)),
		card("进行中", money.Int(r.Tasks.InProgress)),
		card("已完成", money.Int(r.Tasks.Completed)),
		card("收款笔数", money.Int(r.Payments.Count)),
		card("收款总额", money.Currency(r.Payments.TotalAmount)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, overview, tasks)
}

// ── Formularios ───────────────────────────────────────────────────────────────

// form campos de texto con foco rotatorio; enter en el último envía.
type form struct {
	inputs []textinput.Model
	focus  int
	busy   bool
}

func newForm(prompts ...string) form {
	f := form{inputs: make([]textinput.Model, len(prompts))}
	for i, p := range prompts {
		in := textinput.New()
		in.Prompt = p + ": "
		in.CharLimit = 64
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) secret(i int) {
	f.inputs[i].EchoMode = textinput.EchoPassword
	f.inputs[i].EchoCharacter = '•'
}

func (f *form) value(i int) string { return f.inputs[i].Value() }

func (f *form) move(step int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + step + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// update devuelve submit=true cuando se pulsa enter en el último campo.
func (f *form) update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.move(1), false
		case "shift+tab", "up":
			return f.move(-1), false
		case "enter":
			if f.focus < len(f.inputs)-1 {
				return f.move(1), false
			}
			return nil, !f.busy
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *form) view() string {
	lines := make([]string, len(f.inputs))
	for i := range f.inputs {
		lines[i] = f.inputs[i].View()
	}
	return strings.Join(lines, "\n")
}

type formFailedMsg struct {
	view view
	err  error
}

func (m formFailedMsg) owner() view { return m.view }

type loginView struct {
	ctx  context.Context
	deps Deps
	form form
}

func newLoginView(ctx context.Context, deps Deps) *loginView {
	v := &loginView{ctx: ctx, deps: deps, form: newForm("用户名", "密码")}
	v.form.secret(1)
	return v
}

func (v *loginView) Init() tea.Cmd { return textinput.Blink }

func (v *loginView) Capturing() bool { return true }

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(formFailedMsg); ok {
		v.form.busy = false
		return noticeCmd(notify.LevelError, msg.err.Error())
	}
	cmd, submit := v.form.update(msg)
	if !submit {
		return cmd
	}
	username, password := strings.TrimSpace(v.form.value(0)), v.form.value(1)
	if username == "" || password == "" {
		return noticeCmd(notify.LevelWarning, "请输入用户名和密码")
	}
	v.form.busy = true
	return func() tea.Msg {
		user, err := v.deps.Session.Login(v.ctx, dto.LoginRequest{Username: username, Password: password})
		if err != nil {
			return formFailedMsg{view: v, err: err}
		}
		return sessionChangedMsg{next: navigation.PathDashboard, notice: "登录成功，欢迎 " + user.Username}
	}
}

func (v *loginView) View() string {
	return v.form.view() + "\n\n" + "enter 登录 · tab 切换 · ctrl+c 退出"
}

type passwordView struct {
	ctx  context.Context
	deps Deps
	form form
}

func newPasswordView(ctx context.Context, deps Deps) *passwordView {
	v := &passwordView{ctx: ctx, deps: deps, form: newForm("当前密码", "新密码", "确认新密码")}
	for i := range v.form.inputs {
		v.form.secret(i)
	}
	return v
}

func (v *passwordView) Init() tea.Cmd { return textinput.Blink }

func (v *passwordView) Capturing() bool { return true }

func (v *passwordView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(formFailedMsg); ok {
		v.form.busy = false
		return noticeCmd(notify.LevelError, msg.err.Error())
	}
	cmd, submit := v.form.update(msg)
	if !submit {
		return cmd
	}
	oldPass, newPass := v.form.value(0), v.form.value(1)
	if newPass != v.form.value(2) {
		return noticeCmd(notify.LevelWarning, "两次输入的密码不一致")
	}
	v.form.busy = true
	return func() tea.Msg {
		if err := v.deps.Session.ChangePassword(v.ctx, oldPass, newPass); err != nil {
			return formFailedMsg{view: v, err: err}
		}
		return sessionChangedMsg{next: navigation.PathDashboard, notice: "密码修改成功"}
	}
}

func (v *passwordView) View() string {
	return v.form.view() + "\n\n" + "enter 提交 · tab 切换 · ctrl+c 退出"
}

// ── Importar / exportar ───────────────────────────────────────────────────────

type transferAction struct {
	label    string
	kind     dto.TransferKind
	template bool
}

type transferView struct {
	ctx     context.Context
	api     *erpapi.API
	dir     string
	actions []transferAction
	cursor  int
	styles  styles
}

func newTransferView(ctx context.Context, api *erpapi.API, st styles) *transferView {
	return &transferView{
		ctx: ctx, api: api, dir: ".", styles: st,
		actions: []transferAction{
			{label: "下载人员导入模板", kind: dto.KindPeople, template: true},
			{label: "下载客户导入模板", kind: dto.KindCustomers, template: true},
			{label: "导出人员", kind: dto.KindPeople},
			{label: "导出客户", kind: dto.KindCustomers},
		},
	}
}

func (v *transferView) Init() tea.Cmd { return nil }

func (v *transferView) Capturing() bool { return false }

func (v *transferView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.actions)-1 {
			v.cursor++
		}
	case "enter":
		return v.run(v.actions[v.cursor])
	}
	return nil
}

func (v *transferView) run(a transferAction) tea.Cmd {
	return func() tea.Msg {
		var blob *dto.Blob
		var err error
		if a.template {
			blob, err = v.api.Transfer.Template(v.ctx, a.kind)
		} else {
			blob, err = v.api.Transfer.Export(v.ctx, a.kind)
		}
		if err != nil {
			return noticeMsg{level: notify.LevelError, text: err.Error()}
		}
		dst, err := erpapi.SaveBlob(v.dir, "", blob)
		if err != nil {
			return noticeMsg{level: notify.LevelError, text: err.Error()}
		}
		return noticeMsg{level: notify.LevelSuccess, text: "已保存到 " + dst}
	}
}

func (v *transferView) View() string {
	var b strings.Builder
	for i, a := range v.actions {
		cursor := "  "
		style := v.styles.menuItem
		if i == v.cursor {
			cursor = "> "
			style = v.styles.value
		}
		b.WriteString(cursor + style.Render(a.label) + "\n")
	}
	b.WriteString("\n" + v.styles.muted.Render("enter 下载到当前目录 · 导入请使用 erpctl transfer import"))
	return b.String()
}

type emptyView struct{}

func (emptyView) Init() tea.Cmd          { return nil }
func (emptyView) Update(tea.Msg) tea.Cmd { return nil }
func (emptyView) View() string           { return "" }
func (emptyView) Capturing() bool        { return false }

// ── Utilidades ────────────────────────────────────────────────────────────────

func noticeCmd(level notify.Level, text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{level: level, text: text} }
}

func filterRows(rows []table.Row, kw string) []table.Row {
	if kw == "" {
		return rows
	}
	var out []table.Row
	for _, r := range rows {
		for _, cell := range r {
			if strings.Contains(cell, kw) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func uitoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
