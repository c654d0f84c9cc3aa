// Package cli expone la consola de administración como comandos cobra.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/jhoicas/erp-admin/internal/application/analytics"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/internal/application/session"
	"github.com/jhoicas/erp-admin/internal/infrastructure/clipboard"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
	"github.com/jhoicas/erp-admin/internal/infrastructure/notify"
	"github.com/jhoicas/erp-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-admin/internal/infrastructure/sessionstore"
	"github.com/jhoicas/erp-admin/pkg/amount"
	"github.com/jhoicas/erp-admin/pkg/config"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

// App dependencias compartidas por todos los comandos.
type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Store     ports.SessionStore
	API       *erpapi.API
	Session   *session.Service
	Guard     *navigation.Guard
	Notifier  *notify.TerminalNotifier
	Navigator *Navigator
	Copier    ports.Clipboard
	Money     *amount.Formatter
	Dashboard *analytics.DashboardUseCase

	Out io.Writer
	Err io.Writer
	In  io.Reader

	// ReadPassword lee una contraseña sin eco cuando In es una terminal.
	ReadPassword func(prompt string) (string, error)

	output string // table | json
	lines  *bufio.Reader
	once   sync.Once
}

// Options permite sustituir la E/S y el transporte (tests).
type Options struct {
	Out        io.Writer
	Err        io.Writer
	In         io.Reader
	Store      ports.SessionStore
	HTTPClient *http.Client
}

// NewApp conecta configuración, sesión local, cliente HTTP y casos de uso.
func NewApp(cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}

	store := opts.Store
	if store == nil {
		fs, err := sessionstore.Open(cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("abrir sesión local: %w", err)
		}
		store = fs
	}

	notifier := notify.New(opts.Err)
	nav := &Navigator{out: opts.Err}
	client := erpapi.NewClient(cfg.API, erpapi.Deps{
		Session:    store,
		Notifier:   notifier,
		Navigator:  nav,
		Logger:     log.Named("erpapi"),
		HTTPClient: opts.HTTPClient,
	})
	api := erpapi.New(client)
	money := amount.New(cfg.App.Locale)

	a := &App{
		Config:    cfg,
		Log:       log,
		Store:     store,
		API:       api,
		Session:   session.NewService(api.Auth, store, nav, log.Named("session")),
		Guard:     navigation.NewGuard(navigation.NewTable(navigation.DefaultRoutes()), cfg.App.Title),
		Notifier:  notifier,
		Navigator: nav,
		Copier:    clipboard.New(opts.Err, notifier, log.Named("clipboard")),
		Money:     money,
		Dashboard: analytics.NewDashboardUseCase(api.Statistics, pdf.NewMarotoReportGenerator(cfg.Report.FontPath, money), cfg.App.Title),
		Out:       opts.Out,
		Err:       opts.Err,
		In:        opts.In,
		output:    formatTable,
	}
	a.ReadPassword = a.readPassword
	return a, nil
}

// readLine lee una línea de In mostrando prompt en Err.
func (a *App) readLine(prompt string) (string, error) {
	a.once.Do(func() { a.lines = bufio.NewReader(a.In) })
	fmt.Fprint(a.Err, prompt)
	s, err := a.lines.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (a *App) readPassword(prompt string) (string, error) {
	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.Err, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Err)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return a.readLine(prompt)
}

// Navigator registra las redirecciones que pide el cliente HTTP (401 → /login).
type Navigator struct {
	mu   sync.Mutex
	out  io.Writer
	last string
	hook func(string)
}

var _ ports.Navigator = (*Navigator)(nil)

func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	n.last = path
	hook := n.hook
	n.mu.Unlock()

	if hook != nil {
		hook(path)
		return
	}
	if path == navigation.PathLogin && n.out != nil {
		fmt.Fprintln(n.out, "请先登录: erpctl login")
	}
}

// OnRedirect entrega las redirecciones a fn (la vista del TUI) en lugar de imprimirlas.
func (n *Navigator) OnRedirect(fn func(string)) {
	n.mu.Lock()
	n.hook = fn
	n.mu.Unlock()
}

// Last última redirección pedida ("" si ninguna).
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
