package navigation

import "strings"

// Rutas con significado propio para la guarda.
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathDashboard      = "/dashboard"
	PathPeople         = "/people"
	PathCustomers      = "/customers"
	PathTasks          = "/tasks"
	PathAgreements     = "/agreements"
	PathPayments       = "/payments"
	PathImportExport   = "/import-export"
	PathAuditLogs      = "/audit-logs"
	PathChangePassword = "/change-password"
)

// Route metadatos de una vista. Es configuración: no contiene lógica de vista.
type Route struct {
	Path         string
	Name         string
	Title        string
	Icon         string
	RequiresAuth *bool  // nil equivale a true
	RequiresRole string // "" sin requisito; "manager" lo cumplen manager y super_admin
	Redirect     string // alias: la guarda salta a este destino
	Hidden       bool   // no aparece en el menú
}

// NeedsAuth indica si la ruta exige sesión.
func (r Route) NeedsAuth() bool {
	return r.RequiresAuth == nil || *r.RequiresAuth
}

func public() *bool {
	f := false
	return &f
}

// DefaultRoutes tabla de rutas de la consola.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathRoot, Redirect: PathDashboard, Hidden: true},
		{Path: PathLogin, Name: "Login", Title: "登录", RequiresAuth: public(), Hidden: true},
		{Path: PathDashboard, Name: "Dashboard", Title: "首页", Icon: "Odometer"},
		{Path: PathPeople, Name: "People", Title: "人员管理", Icon: "User"},
		{Path: PathCustomers, Name: "Customers", Title: "客户管理", Icon: "OfficeBuilding"},
		{Path: PathTasks, Name: "Tasks", Title: "任务管理", Icon: "List"},
		{Path: PathAgreements, Name: "Agreements", Title: "协议管理", Icon: "Document"},
		{Path: PathPayments, Name: "Payments", Title: "收款管理", Icon: "Money"},
		{Path: PathImportExport, Name: "ImportExport", Title: "导入导出", Icon: "Download"},
		{Path: PathAuditLogs, Name: "AuditLogs", Title: "审计日志", Icon: "Tickets", RequiresRole: "manager"},
		{Path: PathChangePassword, Name: "ChangePassword", Title: "修改密码", Icon: "Lock", Hidden: true},
	}
}

// Table resuelve rutas por path. Lo que no está en la tabla cae en Fallback.
type Table struct {
	routes   []Route
	byPath   map[string]Route
	fallback string
}

// NewTable indexa las rutas; las rutas desconocidas redirigen a /dashboard.
func NewTable(routes []Route) *Table {
	t := &Table{routes: routes, byPath: make(map[string]Route, len(routes)), fallback: PathDashboard}
	for _, r := range routes {
		t.byPath[r.Path] = r
	}
	return t
}

// Normalize deja el path con una barra inicial, sin barra final ni query.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// Resolve devuelve la ruta para path. Un path desconocido produce una ruta
// comodín que redirige al destino por defecto.
func (t *Table) Resolve(path string) Route {
	path = Normalize(path)
	if r, ok := t.byPath[path]; ok {
		return r
	}
	return Route{Path: path, Redirect: t.fallback, Hidden: true}
}

// Lookup busca la ruta exacta.
func (t *Table) Lookup(path string) (Route, bool) {
	r, ok := t.byPath[Normalize(path)]
	return r, ok
}

// Routes devuelve las rutas en orden de declaración.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Menu entradas visibles para el rol dado.
func (t *Table) Menu(role string) []Route {
	var out []Route
	for _, r := range t.routes {
		if r.Hidden || r.Redirect != "" {
			continue
		}
		if !roleSatisfies(role, r.RequiresRole) {
			continue
		}
		out = append(out, r)
	}
	return out
}
