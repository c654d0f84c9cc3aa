package navigation

import (
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// maxHops límite de redirecciones encadenadas antes de rendirse.
const maxHops = 8

// Reason motivo de una redirección.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonAlias           Reason = "alias"           // "/" o ruta desconocida
	ReasonUnauthenticated Reason = "unauthenticated" // sin token
	ReasonAuthenticated   Reason = "authenticated"   // /login con sesión
	ReasonForbidden       Reason = "forbidden"       // rol insuficiente
	ReasonPasswordChange  Reason = "password_change" // cambio de contraseña obligatorio
	ReasonLoop            Reason = "loop"
)

// State lo que la guarda necesita saber de la sesión.
type State struct {
	Token              string
	Role               string
	MustChangePassword bool
}

// LoggedIn indica si hay token.
func (s State) LoggedIn() bool { return s.Token != "" }

// Decision resultado de evaluar una navegación.
type Decision struct {
	Requested  string
	Route      Route
	Path       string
	Title      string
	Redirected bool
	Reason     Reason // motivo de la última redirección
}

// Guard evalúa cada navegación antes de entrar a la vista.
type Guard struct {
	table    *Table
	appTitle string
}

// NewGuard crea la guarda con el título de la aplicación.
func NewGuard(table *Table, appTitle string) *Guard {
	return &Guard{table: table, appTitle: appTitle}
}

// Table tabla de rutas de la guarda.
func (g *Guard) Table() *Table { return g.table }

// Before resuelve el destino final de navegar a `to`. Cada redirección se
// vuelve a evaluar hasta llegar a una ruta estable.
func (g *Guard) Before(to string, st State) Decision {
	d := Decision{Requested: Normalize(to)}
	path := d.Requested
	for hop := 0; hop < maxHops; hop++ {
		r := g.table.Resolve(path)
		next, reason := g.check(r, st)
		if next == "" {
			d.Route = r
			d.Path = r.Path
			d.Title = g.title(r)
			return d
		}
		d.Redirected = true
		d.Reason = reason
		path = next
	}
	r := g.table.Resolve(PathLogin)
	d.Route, d.Path, d.Title, d.Reason = r, r.Path, g.title(r), ReasonLoop
	return d
}

// Allowed indica si `to` se puede visitar sin redirección.
func (g *Guard) Allowed(to string, st State) bool {
	return !g.Before(to, st).Redirected
}

func (g *Guard) check(r Route, st State) (string, Reason) {
	if r.Redirect != "" {
		return r.Redirect, ReasonAlias
	}
	if r.NeedsAuth() && !st.LoggedIn() {
		return PathLogin, ReasonUnauthenticated
	}
	if r.Path == PathLogin && st.LoggedIn() {
		return PathDashboard, ReasonAuthenticated
	}
	if !roleSatisfies(st.Role, r.RequiresRole) {
		return PathDashboard, ReasonForbidden
	}
	if st.MustChangePassword && r.NeedsAuth() && r.Path != PathChangePassword {
		return PathChangePassword, ReasonPasswordChange
	}
	return "", ReasonNone
}

func (g *Guard) title(r Route) string {
	if r.Title == "" {
		return g.appTitle
	}
	return r.Title + " - " + g.appTitle
}

func roleSatisfies(role, required string) bool {
	return entity.HasRole(role, required)
}
