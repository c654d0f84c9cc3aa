package erpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi/erpapitest"
	"github.com/jhoicas/erp-admin/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	srv     *erpapitest.Server
	api     *erpapi.API
	session *erpapitest.Session
	notify  *erpapitest.Notifier
	nav     *erpapitest.Navigator
}

func newHarness(t *testing.T, role string) *harness {
	t.Helper()
	srv := erpapitest.New(t)
	return connect(t, srv, tokenFor(t, srv, role))
}

func tokenFor(t *testing.T, srv *erpapitest.Server, role string) string {
	switch role {
	case "":
		return ""
	case entity.RoleServicePerson:
		return srv.Token(t, erpapitest.ServicePersonID, "李华", role)
	case entity.RoleManager:
		return srv.Token(t, 2, erpapitest.ManagerUsername, role)
	default:
		return srv.Token(t, 1, erpapitest.AdminUsername, role)
	}
}

func connect(t *testing.T, srv *erpapitest.Server, token string) *harness {
	t.Helper()
	h := &harness{
		srv:     srv,
		session: erpapitest.NewSession(token),
		notify:  &erpapitest.Notifier{},
		nav:     &erpapitest.Navigator{},
	}
	c := erpapi.NewClient(config.APIConfig{BaseURL: srv.URL, BasePath: "/api", Timeout: 5 * time.Second}, erpapi.Deps{
		Session:   h.session,
		Notifier:  h.notify,
		Navigator: h.nav,
	})
	h.api = erpapi.New(c)
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Sobre
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_CodeCeroDevuelveData(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)

	ov, err := h.api.Statistics.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), ov.CustomerCount)
	assert.Equal(t, int64(1), ov.PendingTaskCount)
	assert.Equal(t, int64(1), ov.ActiveAgreementCount)
	assert.True(t, decimal.NewFromInt(800).Equal(ov.MonthlyPayment), ov.MonthlyPayment.String())
	assert.True(t, decimal.RequireFromString("2000.5").Equal(ov.YearlyPayment), ov.YearlyPayment.String())
	assert.Empty(t, h.notify.Notices())
}

func TestClient_CodeDistintoDeCeroRechazaYNotifica(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)

	_, err := h.api.Customers.Get(context.Background(), 99)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Code)
	assert.Equal(t, "customer not found", apiErr.Message)
	assert.Equal(t, erpapitest.Notice{Level: "error", Message: "customer not found"}, h.notify.Last())
}

func TestClient_CodeSinMensajeUsaElPorDefecto(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)
	h.srv.FailNextCode(500, "")

	_, err := h.api.Tasks.List(context.Background(), dto.TaskQuery{})
	assert.True(t, domain.IsAPICode(err, 500))
	assert.Equal(t, "请求失败", h.notify.Last().Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cabeceras
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_TokenEnCadaPeticion(t *testing.T) {
	h := newHarness(t, entity.RoleManager)
	ctx := context.Background()

	_, err := h.api.Customers.List(ctx, dto.CustomerQuery{Keyword: "科技"})
	require.NoError(t, err)
	_, err = h.api.Statistics.Tasks(ctx)
	require.NoError(t, err)

	for _, r := range h.srv.Requests() {
		assert.Equal(t, "Bearer "+h.session.Token(), r.Authorization, r.Path)
		assert.NotEmpty(t, r.RequestID, r.Path)
	}
	assert.Equal(t, "keyword=%E7%A7%91%E6%8A%80", h.srv.Requests()[0].Query)
}

func TestClient_SinTokenOmiteLaCabecera(t *testing.T) {
	h := newHarness(t, "")

	types, err := h.api.Customers.Types(context.Background())
	require.NoError(t, err)
	assert.Contains(t, types, entity.CustomerTypeLimited)
	assert.Empty(t, h.srv.LastRequest().Authorization)
}

func TestClient_CuerpoJSON(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)

	task, err := h.api.Tasks.Create(context.Background(), &entity.Task{CustomerID: 2, Title: "发票认证", Status: entity.TaskPending})
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.NotZero(t, task.ID)
	require.NotNil(t, task.Customer)
	assert.Equal(t, "渝北区老李餐馆", task.Customer.Name)
	assert.Equal(t, "application/json;charset=UTF-8", h.srv.LastRequest().ContentType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de transporte
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_401LimpiaSesionYRedirige(t *testing.T) {
	calls := map[string]func(api *erpapi.API) error{
		"people": func(api *erpapi.API) error {
			_, err := api.People.List(context.Background(), dto.PeopleQuery{})
			return err
		},
		"me": func(api *erpapi.API) error {
			_, err := api.Auth.Me(context.Background())
			return err
		},
		"payments": func(api *erpapi.API) error {
			_, err := api.Payments.Create(context.Background(), &entity.Payment{CustomerID: 1})
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			srv := erpapitest.New(t)
			h := connect(t, srv, "token-caducado")
			require.NoError(t, h.session.SetUser(&entity.UserInfo{ID: 1, Role: entity.RoleManager}))

			err := call(h.api)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)

			var te *domain.TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, http.StatusUnauthorized, te.Status)

			assert.Empty(t, h.session.Token(), "el token debe borrarse")
			u, _ := h.session.User()
			assert.Nil(t, u, "el usuario cacheado debe borrarse")
			assert.Equal(t, []string{"/login"}, h.nav.Paths())
			assert.Equal(t, "warning", h.notify.Last().Level)
		})
	}
}

func TestClient_OtroEstadoHTTP(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)
	h.srv.FailNext(http.StatusBadGateway, "upstream caído")

	_, err := h.api.Agreements.List(context.Background(), dto.AgreementQuery{})
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Equal(t, "upstream caído", te.Message)
	assert.Equal(t, "error", h.notify.Last().Level)
	assert.NotEmpty(t, h.session.Token(), "sólo un 401 cierra la sesión")
	assert.Empty(t, h.nav.Paths())
}

func TestClient_RolInsuficiente(t *testing.T) {
	h := newHarness(t, entity.RoleManager)

	err := h.api.Customers.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClient_ErrorDeRed(t *testing.T) {
	srv := erpapitest.New(t)
	h := connect(t, srv, "t")
	srv.Close()

	_, err := h.api.Statistics.Overview(context.Background())
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Status)
	assert.Equal(t, erpapitest.Notice{Level: "error", Message: "网络错误"}, h.notify.Last())
}

func TestClient_ContextoCancelado(t *testing.T) {
	h := newHarness(t, entity.RoleSuperAdmin)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.api.Statistics.Overview(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_OperacionPendienteDeAprobacion(t *testing.T) {
	srv := erpapitest.New(t)
	sp := connect(t, srv, tokenFor(t, srv, entity.RoleServicePerson))
	admin := connect(t, srv, tokenFor(t, srv, entity.RoleSuperAdmin))
	ctx := context.Background()

	queued, notice := erpapi.WithApproval(ctx)
	created, err := sp.api.Customers.Create(queued, &entity.Customer{Name: "南岸区新客户", TaxNumber: "91500108MA5U000009", Type: entity.CustomerTypeLimited})
	require.NoError(t, err, "la aprobación no es un error")
	assert.Nil(t, created)
	assert.True(t, notice.RequiresApproval)
	assert.Equal(t, "操作已提交，等待管理员审批", notice.Message)
	assert.Equal(t, erpapitest.Notice{Level: "warning", Message: "操作已提交，等待管理员审批"}, sp.notify.Last())

	pending, err := admin.api.Admin.PendingApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "customer", pending[0].ResourceType)
	assert.Equal(t, entity.AuditPending, pending[0].Status)

	_, err = admin.api.Admin.Approve(ctx, dto.ApprovalRequest{LogID: pending[0].ID})
	require.NoError(t, err)

	list, err := admin.api.Customers.List(ctx, dto.CustomerQuery{Keyword: "南岸"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	direct, notice := erpapi.WithApproval(ctx)
	_, err = admin.api.Customers.Get(direct, list.Items[0].ID)
	require.NoError(t, err)
	assert.False(t, notice.RequiresApproval, "sin aprobación no se registra nada")
}

func TestClient_RechazoConMotivo(t *testing.T) {
	srv := erpapitest.New(t)
	sp := connect(t, srv, tokenFor(t, srv, entity.RoleServicePerson))
	admin := connect(t, srv, tokenFor(t, srv, entity.RoleSuperAdmin))
	ctx := context.Background()

	_, err := sp.api.Tasks.Update(ctx, 1, &entity.Task{CustomerID: 1, Title: "改名", Status: entity.TaskCompleted})
	require.NoError(t, err)

	pending, err := admin.api.Admin.PendingApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = admin.api.Admin.Reject(ctx, dto.ApprovalRequest{LogID: pending[0].ID, Reason: "资料不全"})
	require.NoError(t, err)

	logs, err := admin.api.AuditLogs.List(ctx, dto.AuditLogQuery{Status: entity.AuditRejected})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "资料不全", logs.Items[0].Reason)

	task, err := admin.api.Tasks.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "三月增值税申报", task.Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ficheros
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_DescargaConNombre(t *testing.T) {
	h := newHarness(t, entity.RoleManager)

	blob, err := h.api.Transfer.Template(context.Background(), dto.KindPeople)
	require.NoError(t, err)
	assert.Equal(t, "people_模板.xlsx", blob.Filename)
	assert.Equal(t, []byte("PK-people-template"), blob.Data)

	dir := t.TempDir()
	path, err := erpapi.SaveBlob(dir, "", blob)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "people_模板.xlsx"))
}

func TestTransfer_DescargaConSobreDeError(t *testing.T) {
	h := newHarness(t, entity.RoleManager)
	h.srv.FailNextCode(400, "Invalid type")

	_, err := h.api.Transfer.Export(context.Background(), dto.KindCustomers)
	assert.True(t, domain.IsAPICode(err, 400))
	assert.Equal(t, "Invalid type", h.notify.Last().Message)
}

// streaming sirve n bytes en trozos con el content type dado.
func streaming(t *testing.T, contentType, prefix string, n int, suffix string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(prefix))
		chunk := []byte(strings.Repeat("a", 4096))
		for sent := 0; sent < n; sent += len(chunk) {
			if rest := n - sent; rest < len(chunk) {
				chunk = chunk[:rest]
			}
			if _, err := w.Write(chunk); err != nil {
				return
			}
		}
		_, _ = w.Write([]byte(suffix))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_DescargaMayorQueElTopeFalla(t *testing.T) {
	const limit = 1024
	notify := &erpapitest.Notifier{}
	cfg := config.APIConfig{BasePath: "/api", Timeout: 5 * time.Second, MaxDownloadBytes: limit}

	cfg.BaseURL = streaming(t, "application/octet-stream", "", limit+10, "").URL
	c := erpapi.NewClient(cfg, erpapi.Deps{Notifier: notify})
	blob, err := c.Download(context.Background(), "/export/customers")
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Nil(t, blob, "nunca se entrega un fichero truncado")
	assert.Equal(t, erpapitest.Notice{Level: "error", Message: "服务器响应过大"}, notify.Last())

	cfg.BaseURL = streaming(t, "application/octet-stream", "", limit, "").URL
	c = erpapi.NewClient(cfg, erpapi.Deps{Notifier: notify})
	blob, err = c.Download(context.Background(), "/export/customers")
	require.NoError(t, err)
	assert.Len(t, blob.Data, limit)
}

func TestClient_SobreMayorQueElTopeFalla(t *testing.T) {
	notify := &erpapitest.Notifier{}
	srv := streaming(t, "application/json", `{"code":0,"data":"`, 8<<20, `"}`)
	c := erpapi.NewClient(config.APIConfig{BaseURL: srv.URL, BasePath: "/api", Timeout: 5 * time.Second}, erpapi.Deps{Notifier: notify})

	_, err := erpapi.Get[string](context.Background(), c, "/statistics/overview", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Contains(t, err.Error(), "supera")
	assert.Equal(t, erpapitest.Notice{Level: "error", Message: "服务器响应过大"}, notify.Last())
}

func TestTransfer_ImportMultipart(t *testing.T) {
	h := newHarness(t, entity.RoleManager)

	res, err := h.api.Transfer.Import(context.Background(), dto.KindCustomers, "/tmp/客户.xlsx", strings.NewReader("xlsx-bytes"), dto.StrategyUpdate)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)

	files := h.srv.ImportedFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "customers", files[0].Kind)
	assert.Equal(t, "update", files[0].Strategy)
	assert.Equal(t, "客户.xlsx", files[0].Filename)
	assert.Equal(t, []byte("xlsx-bytes"), files[0].Data)
	assert.True(t, strings.HasPrefix(h.srv.LastRequest().ContentType, "multipart/form-data"))
}

func TestTransfer_ValidaAntesDeEnviar(t *testing.T) {
	h := newHarness(t, entity.RoleManager)
	ctx := context.Background()

	_, err := h.api.Transfer.Template(ctx, "tasks")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.api.Transfer.Import(ctx, dto.KindPeople, "a.xlsx", strings.NewReader("x"), "merge")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, h.srv.Requests())
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

func TestPeople_CustomersPorPapel(t *testing.T) {
	h := newHarness(t, entity.RoleManager)

	rel, err := h.api.People.Customers(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, rel.Service, 2)
	assert.Empty(t, rel.Representative)
}

func TestPayments_FiltroPorFechas(t *testing.T) {
	h := newHarness(t, entity.RoleManager)
	ctx := context.Background()

	list, err := h.api.Payments.List(ctx, dto.PaymentQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2024-03", list.Items[0].Period)

	st, err := h.api.Statistics.Payments(ctx, dto.DateRange{StartDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Count)
}

func TestAuth_LoginYCambioDeContrasena(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	resp, err := h.api.Auth.Login(ctx, dto.LoginRequest{Username: erpapitest.ManagerUsername, Password: erpapitest.ManagerPassword})
	require.NoError(t, err)
	assert.True(t, resp.MustChangePassword)
	assert.Equal(t, entity.RoleManager, resp.Role)
	require.NoError(t, h.session.SetToken(resp.Token))

	_, err = h.api.Auth.ChangePassword(ctx, dto.ChangePasswordRequest{OldPassword: erpapitest.ManagerPassword, NewPassword: "nuevo123"})
	require.NoError(t, err)

	me, err := h.api.Auth.Me(ctx)
	require.NoError(t, err)
	assert.False(t, me.MustChangePassword)
	assert.Equal(t, "王芳", me.Name)
}

func TestAuth_LoginIncorrecto(t *testing.T) {
	h := newHarness(t, "")

	_, err := h.api.Auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "x"})
	assert.True(t, domain.IsAPICode(err, 401))
	assert.Empty(t, h.nav.Paths(), "un code 401 del sobre no es un 401 HTTP")
}
