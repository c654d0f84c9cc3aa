package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const appTitle = "ERP 代账管理系统"

func newGuard() *Guard {
	return NewGuard(NewTable(DefaultRoutes()), appTitle)
}

func TestGuard_SinTokenRedirigeALogin(t *testing.T) {
	g := newGuard()
	for _, p := range []string{"/dashboard", "/people", "/customers", "/tasks", "/agreements", "/payments", "/import-export", "/audit-logs", "/change-password"} {
		d := g.Before(p, State{})
		assert.Equal(t, PathLogin, d.Path, p)
		assert.True(t, d.Redirected, p)
		assert.Equal(t, ReasonUnauthenticated, d.Reason, p)
		assert.Equal(t, "登录 - "+appTitle, d.Title, p)
	}
}

func TestGuard_LoginSinTokenSePermite(t *testing.T) {
	d := newGuard().Before("/login", State{})
	assert.Equal(t, PathLogin, d.Path)
	assert.False(t, d.Redirected)
}

func TestGuard_LoginConTokenRedirigeADashboard(t *testing.T) {
	d := newGuard().Before("/login", State{Token: "t", Role: "manager"})
	assert.Equal(t, PathDashboard, d.Path)
	assert.Equal(t, ReasonAuthenticated, d.Reason)
	assert.Equal(t, "首页 - "+appTitle, d.Title)
}

func TestGuard_RolRequerido(t *testing.T) {
	g := newGuard()

	tests := []struct {
		role string
		want string
	}{
		{"super_admin", PathAuditLogs},
		{"manager", PathAuditLogs},
		{"service_person", PathDashboard},
		{"", PathDashboard},
	}
	for _, tt := range tests {
		d := g.Before("/audit-logs", State{Token: "t", Role: tt.role})
		assert.Equal(t, tt.want, d.Path, tt.role)
	}
}

func TestGuard_AliasYComodin(t *testing.T) {
	g := newGuard()
	st := State{Token: "t", Role: "service_person"}

	d := g.Before("/", st)
	assert.Equal(t, PathDashboard, d.Path)
	assert.Equal(t, ReasonAlias, d.Reason)

	d = g.Before("/no/existe", st)
	assert.Equal(t, PathDashboard, d.Path)

	// El comodín también pasa por la guarda.
	d = g.Before("/no/existe", State{})
	assert.Equal(t, PathLogin, d.Path)
}

func TestGuard_CambioDeContraseñaObligatorio(t *testing.T) {
	g := newGuard()
	st := State{Token: "t", Role: "manager", MustChangePassword: true}

	d := g.Before("/customers", st)
	assert.Equal(t, PathChangePassword, d.Path)
	assert.Equal(t, ReasonPasswordChange, d.Reason)

	d = g.Before("/change-password", st)
	assert.False(t, d.Redirected)
	assert.Equal(t, "修改密码 - "+appTitle, d.Title)
}

func TestGuard_PathNormalizado(t *testing.T) {
	d := newGuard().Before("customers/?keyword=x", State{Token: "t"})
	assert.Equal(t, PathCustomers, d.Path)
	assert.False(t, d.Redirected)
}

func TestGuard_BucleAcotado(t *testing.T) {
	routes := []Route{
		{Path: "/a", Redirect: "/b"},
		{Path: "/b", Redirect: "/a"},
		{Path: PathLogin, Title: "登录", RequiresAuth: public()},
	}
	d := NewGuard(NewTable(routes), appTitle).Before("/a", State{})
	assert.Equal(t, PathLogin, d.Path)
	assert.Equal(t, ReasonLoop, d.Reason)
}

func TestTable_Menu(t *testing.T) {
	table := NewTable(DefaultRoutes())

	paths := func(rs []Route) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Path)
		}
		return out
	}
	assert.NotContains(t, paths(table.Menu("service_person")), PathAuditLogs)
	assert.Contains(t, paths(table.Menu("manager")), PathAuditLogs)
	assert.NotContains(t, paths(table.Menu("manager")), PathLogin)
}
