// Package tui es la consola interactiva: menú lateral sobre la tabla de rutas,
// vistas construidas la primera vez que se visitan y barra de estado con los avisos.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/erp-admin/internal/application/analytics"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/application/session"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
	"github.com/jhoicas/erp-admin/internal/infrastructure/notify"
	"github.com/jhoicas/erp-admin/pkg/amount"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

// Deps colaboradores de la consola.
type Deps struct {
	Session   *session.Service
	Guard     *navigation.Guard
	API       *erpapi.API
	Dashboard *analytics.DashboardUseCase
	Money     *amount.Formatter
	Log       *logger.Logger
}

// ── Mensajes ──────────────────────────────────────────────────────────────────

type navigateMsg struct{ path string }

type noticeMsg struct {
	level notify.Level
	text  string
}

// sessionChangedMsg login o logout: las vistas cacheadas ya no valen.
type sessionChangedMsg struct {
	next   string
	notice string
}

// view pantalla asociada a una ruta.
type view interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
	// Capturing indica que un campo de texto tiene el foco y las teclas globales no aplican.
	Capturing() bool
}

// Model raíz del programa bubbletea.
type Model struct {
	ctx  context.Context
	deps Deps

	width, height int
	decision      navigation.Decision
	menu          []navigation.Route
	views         map[string]view
	notice        noticeMsg
	styles        styles
}

// New modelo inicial; start es la primera ruta a visitar.
func New(ctx context.Context, deps Deps, start string) *Model {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	m := &Model{ctx: ctx, deps: deps, views: map[string]view{}, styles: defaultStyles()}
	m.decision = navigation.Decision{Requested: start}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.navigate(m.decision.Requested)
}

// navigate pasa por la guarda y construye la vista de destino si aún no existe.
func (m *Model) navigate(to string) tea.Cmd {
	st := m.deps.Session.State()
	d := m.deps.Guard.Before(to, st)
	m.decision = d
	m.menu = m.deps.Guard.Table().Menu(st.Role)
	m.deps.Log.Debug().Str("to", to).Str("path", d.Path).Str("reason", string(d.Reason)).Msg("tui: navegación")

	cmds := []tea.Cmd{tea.SetWindowTitle(d.Title)}
	if _, ok := m.views[d.Path]; !ok {
		v := m.build(d.Path)
		m.views[d.Path] = v
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) current() view {
	return m.views[m.decision.Path]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case navigateMsg:
		return m, m.navigate(msg.path)
	case sessionChangedMsg:
		m.views = map[string]view{}
		if msg.notice != "" {
			m.notice = noticeMsg{level: notify.LevelSuccess, text: msg.notice}
		}
		return m, m.navigate(msg.next)
	case noticeMsg:
		m.notice = msg
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case ownedMsg:
		return m, msg.owner().Update(msg)
	}
	if v := m.current(); v != nil {
		return m, v.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if v := m.current(); v != nil && v.Capturing() {
		return nil, false
	}
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "tab":
		return m.cycle(1), true
	case "shift+tab":
		return m.cycle(-1), true
	case "L":
		if !m.deps.Session.IsLoggedIn() {
			return nil, true
		}
		return func() tea.Msg {
			if err := m.deps.Session.Logout(); err != nil {
				return noticeMsg{level: notify.LevelError, text: err.Error()}
			}
			return sessionChangedMsg{next: navigation.PathLogin}
		}, true
	}
	return nil, false
}

// cycle salta a la entrada siguiente (o anterior) del menú.
func (m *Model) cycle(step int) tea.Cmd {
	if len(m.menu) == 0 {
		return nil
	}
	i := 0
	for k, r := range m.menu {
		if r.Path == m.decision.Path {
			i = k
			break
		}
	}
	i = (i + step + len(m.menu)) % len(m.menu)
	return m.navigate(m.menu[i].Path)
}

func (m *Model) View() string {
	body := ""
	if v := m.current(); v != nil {
		body = v.View()
	}
	if m.decision.Path == navigation.PathLogin {
		return lipgloss.JoinVertical(lipgloss.Left, m.styles.title.Render(m.decision.Title), body, m.statusBar())
	}

	var menu strings.Builder
	for _, r := range m.menu {
		style := m.styles.menuItem
		if r.Path == m.decision.Path {
			style = m.styles.menuActive
		}
		menu.WriteString(style.Render(r.Title) + "\n")
	}
	side := m.styles.sidebar.Render(menu.String())
	main := lipgloss.JoinVertical(lipgloss.Left, m.styles.title.Render(m.decision.Title), body)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, side, main),
		m.statusBar(),
	)
}

func (m *Model) statusBar() string {
	help := m.styles.muted.Render("tab 切换 · / 搜索 · r 刷新 · L 退出登录 · q 退出")
	if m.notice.text == "" {
		return help
	}
	return fmt.Sprintf("%s  %s", m.styles.notice.Render(m.notice.level, m.notice.text), help)
}

// ── Arranque ──────────────────────────────────────────────────────────────────

// Redirector recibe las redirecciones del cliente HTTP (401 → /login).
type Redirector interface {
	OnRedirect(func(string))
}

// Run arranca el programa a pantalla completa hasta que el operador sale.
func Run(ctx context.Context, deps Deps, notifier *notify.TerminalNotifier, nav Redirector, start string) error {
	p := tea.NewProgram(New(ctx, deps, start), tea.WithAltScreen(), tea.WithContext(ctx))

	// Send bloquea mientras el bucle procesa; los avisos llegan desde los comandos.
	notifier.OnShow(func(l notify.Level, text string) {
		go p.Send(noticeMsg{level: l, text: text})
	})
	nav.OnRedirect(func(path string) {
		go p.Send(sessionChangedMsg{next: path})
	})
	defer notifier.OnShow(nil)
	defer nav.OnRedirect(nil)

	_, err := p.Run()
	return err
}
