package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi/erpapitest"
	"github.com/jhoicas/erp-admin/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type console struct {
	srv   *erpapitest.Server
	app   *App
	store *erpapitest.Session
	out   *bytes.Buffer
	err   *bytes.Buffer
}

func newConsole(t *testing.T, srv *erpapitest.Server, role, stdin string) *console {
	t.Helper()
	token := ""
	switch role {
	case entity.RoleSuperAdmin:
		token = srv.Token(t, 1, erpapitest.AdminUsername, role)
	case entity.RoleServicePerson:
		token = srv.Token(t, erpapitest.ServicePersonID, "李华", role)
	}
	c := &console{srv: srv, store: erpapitest.NewSession(token), out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	cfg := &config.Config{
		App: config.AppConfig{Title: "ERP", Locale: "zh-CN"},
		API: config.APIConfig{BaseURL: srv.URL, BasePath: "/api", Timeout: 5 * time.Second},
	}
	app, err := NewApp(cfg, nil, Options{Out: c.out, Err: c.err, In: strings.NewReader(stdin), Store: c.store})
	require.NoError(t, err)
	c.app = app
	return c
}

func (c *console) run(args ...string) error {
	c.out.Reset()
	c.err.Reset()
	root := NewRootCommand(c.app)
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.err)
	return root.ExecuteContext(context.Background())
}

// ──────────────────────────────────────────────────────────────────────────────
// Guarda
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_SinSesionPideLogin(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), "", "")

	err := c.run("customers", "list")
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, c.srv.Requests(), "no se llama al backend")
}

func TestGuard_RolInsuficiente(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleServicePerson, "")

	assert.ErrorIs(t, c.run("audit", "list"), domain.ErrForbidden)
	assert.ErrorIs(t, c.run("admin", "approvals"), domain.ErrForbidden)
	assert.NoError(t, c.run("customers", "list"))
}

func TestGuard_CambioDeContrasenaObligatorio(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), "", erpapitest.ManagerPassword+"\n")

	require.NoError(t, c.run("login", "-u", erpapitest.ManagerUsername))
	assert.Contains(t, c.err.String(), "首次登录请修改密码")

	assert.ErrorIs(t, c.run("customers", "list"), errMustChangePass)
}

func TestPassword_LevantaElCambioObligatorio(t *testing.T) {
	stdin := erpapitest.ManagerPassword + "\n" + erpapitest.ManagerPassword + "\nnueva123\nnueva123\n"
	c := newConsole(t, erpapitest.New(t), "", stdin)

	require.NoError(t, c.run("login", "-u", erpapitest.ManagerUsername))
	require.NoError(t, c.run("password"))
	assert.Contains(t, c.err.String(), "密码修改成功")
	assert.NoError(t, c.run("customers", "list"))
}

func TestPassword_ConfirmacionDistinta(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "admin123\nuno111\ndos222\n")

	assert.ErrorIs(t, c.run("password"), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_LeeContrasenaDeLaEntrada(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), "", erpapitest.AdminUsername+"\n"+erpapitest.AdminPassword+"\n")

	require.NoError(t, c.run("login"))
	assert.NotEmpty(t, c.store.Token())
	assert.Contains(t, c.err.String(), "登录成功")

	u, err := c.store.User()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleSuperAdmin, u.Role)
}

func TestLogin_PersonaDeServicio(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), "", "")

	require.NoError(t, c.run("login", "--person", "3"))
	st := c.app.Session.State()
	assert.Equal(t, entity.RoleServicePerson, st.Role)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), "", "mala\n")

	err := c.run("login", "-u", erpapitest.AdminUsername)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, c.store.Token())
}

func TestWhoami_ReclamosDelToken(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("whoami"))
	assert.Contains(t, c.out.String(), "令牌用户")
	assert.Contains(t, c.out.String(), erpapitest.AdminUsername)
	assert.NotContains(t, c.out.String(), "需修改密码", "sin usuario en caché")

	require.NoError(t, c.run("whoami", "--refresh"))
	assert.Contains(t, c.out.String(), "需修改密码")
	assert.Contains(t, c.out.String(), entity.RoleSuperAdmin)
}

func TestLogout(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("logout"))
	assert.Empty(t, c.store.Token())
	assert.Contains(t, c.err.String(), "已退出登录")
}

func TestSesionCaducadaRedirigeAlLogin(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")
	c.srv.FailNext(401, "")

	err := c.run("customers", "list")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, c.store.Token())
	assert.Equal(t, "/login", c.app.Navigator.Last())
	assert.Contains(t, c.err.String(), "请先登录")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_ListaEnTabla(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("customers", "list"))
	out := c.out.String()
	assert.Contains(t, out, "重庆星辰科技有限公司")
	assert.Contains(t, out, "渝北区老李餐馆")
	assert.Contains(t, out, "共 2 条")
}

func TestCustomers_GetEnJSON(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("-o", "json", "customers", "get", "1"))
	var got entity.Customer
	require.NoError(t, json.Unmarshal(c.out.Bytes(), &got))
	assert.Equal(t, "重庆星辰科技有限公司", got.Name)
	assert.Equal(t, entity.CreditRatingB, got.CreditRating)
}

func TestSalidaDesconocida(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	assert.ErrorIs(t, c.run("-o", "xml", "customers", "list"), domain.ErrInvalidInput)
}

func TestCustomers_CreateValidaEnumerados(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	err := c.run("customers", "create", "--name", "新客户", "--credit-rating", "Z")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, c.run("customers", "create", "--name", "新客户", "--type", "有限公司", "--service-persons", "3"))
	assert.Contains(t, c.err.String(), "保存成功")
	assert.Len(t, c.srv.Customers.All(nil), 3)
}

func TestCustomers_CopyCampoDesconocido(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	assert.ErrorIs(t, c.run("customers", "copy", "1", "--field", "email"), domain.ErrInvalidInput)
}

type fixedCopier struct {
	ok     bool
	copied []string
}

func (f *fixedCopier) SmartCopy(text string) bool {
	f.copied = append(f.copied, text)
	return f.ok
}

func TestCustomers_CopyInformaDelFallo(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	ok := &fixedCopier{ok: true}
	c.app.Copier = ok
	require.NoError(t, c.run("customers", "copy", "1", "--field", "name"))
	assert.Equal(t, []string{"重庆星辰科技有限公司"}, ok.copied)

	c.app.Copier = &fixedCopier{}
	assert.ErrorIs(t, c.run("customers", "copy", "1"), errCopyFailed)
}

func TestDelete_PideConfirmacion(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "n\ny\n")

	require.NoError(t, c.run("people", "delete", "2"))
	_, found := c.srv.People.Get(2)
	assert.True(t, found, "respuesta n: no se borra")

	require.NoError(t, c.run("people", "delete", "2"))
	_, found = c.srv.People.Get(2)
	assert.False(t, found)
	assert.Contains(t, c.err.String(), "删除成功")
}

func TestPayments_RangoInvertido(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	err := c.run("payments", "list", "--from", "2024-03-10", "--to", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTasks_Complete(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("tasks", "complete", "1"))
	task, found := c.srv.Tasks.Get(1)
	require.True(t, found)
	assert.Equal(t, entity.TaskCompleted, task.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAprobacion_CambioDePersonaDeServicio(t *testing.T) {
	srv := erpapitest.New(t)
	sp := newConsole(t, srv, entity.RoleServicePerson, "")
	admin := newConsole(t, srv, entity.RoleSuperAdmin, "")

	require.NoError(t, sp.run("customers", "update", "2", "--phone", "023-60000000"))
	assert.Contains(t, sp.err.String(), "等待管理员审批")
	assert.NotContains(t, sp.err.String(), "保存成功")
	cu, _ := srv.Customers.Get(2)
	assert.Equal(t, "023-67654321", cu.Phone, "no se aplica hasta aprobar")

	require.NoError(t, admin.run("-o", "json", "admin", "approvals"))
	var pending dto.ListResult[entity.AuditLog]
	require.NoError(t, json.Unmarshal(admin.out.Bytes(), &pending))
	require.Len(t, pending.Items, 1)

	require.NoError(t, admin.run("admin", "approve", id(pending.Items[0].ID)))
	cu, _ = srv.Customers.Get(2)
	assert.Equal(t, "023-60000000", cu.Phone)
}

func TestAprobacion_BorradoDePersonaDeServicio(t *testing.T) {
	srv := erpapitest.New(t)
	sp := newConsole(t, srv, entity.RoleServicePerson, "")

	require.NoError(t, sp.run("customers", "delete", "2", "-y"))
	assert.Contains(t, sp.err.String(), "等待管理员审批")
	assert.NotContains(t, sp.err.String(), "删除成功")
	_, found := srv.Customers.Get(2)
	assert.True(t, found, "pendiente de aprobación")
}

func TestAprobacion_RechazoExigeMotivo(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	assert.Error(t, c.run("admin", "reject", "1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestStats_Resumen(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")

	require.NoError(t, c.run("stats"))
	assert.Contains(t, c.out.String(), "客户总数")
	assert.Contains(t, c.out.String(), "¥")
}

func TestStats_Report(t *testing.T) {
	c := newConsole(t, erpapitest.New(t), entity.RoleSuperAdmin, "")
	dir := t.TempDir()

	require.NoError(t, c.run("stats", "report", "--dir", dir))
	assert.Contains(t, c.err.String(), dir)
}
