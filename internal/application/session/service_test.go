package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/application/session"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi"
	"github.com/jhoicas/erp-admin/internal/infrastructure/erpapi/erpapitest"
	"github.com/jhoicas/erp-admin/pkg/config"
)

func newService(t *testing.T) (*session.Service, *erpapitest.Session, *erpapitest.Navigator, *erpapitest.Server) {
	t.Helper()
	srv := erpapitest.New(t)
	store := erpapitest.NewSession("")
	nav := &erpapitest.Navigator{}
	client := erpapi.NewClient(config.APIConfig{BaseURL: srv.URL, BasePath: "/api", Timeout: 5 * time.Second}, erpapi.Deps{Session: store, Navigator: nav})
	return session.NewService(erpapi.New(client).Auth, store, nav, nil), store, nav, srv
}

func TestService_LoginGuardaTokenYUsuario(t *testing.T) {
	svc, store, _, _ := newService(t)

	u, err := svc.Login(context.Background(), dto.LoginRequest{Username: erpapitest.AdminUsername, Password: erpapitest.AdminPassword})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, u.Role)
	assert.True(t, u.IsManager)
	assert.True(t, svc.IsLoggedIn())
	assert.NotEmpty(t, store.Token())

	cached, err := svc.StoredUser()
	require.NoError(t, err)
	assert.Equal(t, erpapitest.AdminUsername, cached.Username)

	claims, err := svc.Claims()
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, claims.Role)
}

func TestService_LoginPersonaDeServicio(t *testing.T) {
	svc, _, _, _ := newService(t)
	pid := erpapitest.ServicePersonID

	u, err := svc.Login(context.Background(), dto.LoginRequest{PersonID: &pid})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleServicePerson, u.Role)
	assert.Equal(t, "李华", u.DisplayName())
}

func TestService_LoginSinCredenciales(t *testing.T) {
	svc, _, _, srv := newService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, srv.Requests())
}

// fullDisk no puede guardar el usuario.
type fullDisk struct{ *erpapitest.Session }

func (fullDisk) SetUser(*entity.UserInfo) error { return errors.New("disk full") }

func TestService_LoginFallidoNoDejaToken(t *testing.T) {
	srv := erpapitest.New(t)
	store := fullDisk{erpapitest.NewSession("")}
	client := erpapi.NewClient(config.APIConfig{BaseURL: srv.URL, BasePath: "/api", Timeout: 5 * time.Second}, erpapi.Deps{Session: store})
	svc := session.NewService(erpapi.New(client).Auth, store, &erpapitest.Navigator{}, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: erpapitest.AdminUsername, Password: erpapitest.AdminPassword})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, store.Token())
	assert.False(t, svc.IsLoggedIn())
}

func TestService_LogoutRedirige(t *testing.T) {
	svc, store, nav, _ := newService(t)
	require.NoError(t, store.SetToken("t"))

	require.NoError(t, svc.Logout())
	assert.False(t, svc.IsLoggedIn())
	assert.Equal(t, []string{navigation.PathLogin}, nav.Paths())
}

func TestService_StateParaLaGuarda(t *testing.T) {
	svc, store, _, srv := newService(t)
	assert.Equal(t, navigation.State{}, svc.State())

	// Sin usuario cacheado el rol sale del token.
	require.NoError(t, store.SetToken(srv.Token(t, 2, "wangfang", entity.RoleManager)))
	assert.Equal(t, entity.RoleManager, svc.State().Role)

	require.NoError(t, store.SetUser(&entity.UserInfo{ID: 2, Role: entity.RoleManager, MustChangePassword: true}))
	st := svc.State()
	assert.True(t, st.MustChangePassword)

	g := navigation.NewGuard(navigation.NewTable(navigation.DefaultRoutes()), "ERP")
	assert.Equal(t, navigation.PathChangePassword, g.Before("/customers", st).Path)
}

func TestService_ChangePasswordLevantaLaMarca(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Login(ctx, dto.LoginRequest{Username: erpapitest.ManagerUsername, Password: erpapitest.ManagerPassword})
	require.NoError(t, err)
	require.True(t, u.MustChangePassword)

	require.NoError(t, svc.ChangePassword(ctx, erpapitest.ManagerPassword, "otra-clave"))
	assert.False(t, svc.State().MustChangePassword)

	err = svc.ChangePassword(ctx, "x", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_RefreshSinSesion(t *testing.T) {
	svc, _, _, _ := newService(t)
	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
