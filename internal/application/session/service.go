package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/internal/domain"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/erp-admin/pkg/jwt"
	"github.com/jhoicas/erp-admin/pkg/logger"
)

// AuthAPI endpoints de autenticación que usa la sesión.
type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context) (*entity.UserInfo, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.MessageResponse, error)
}

// Service sesión del operador: token y usuario cacheado.
type Service struct {
	api   AuthAPI
	store ports.SessionStore
	nav   ports.Navigator
	log   *logger.Logger
}

// NewService construye el servicio. nav puede ser nil.
func NewService(api AuthAPI, store ports.SessionStore, nav ports.Navigator, log *logger.Logger) *Service {
	if nav == nil {
		nav = ports.NopNavigator{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, store: store, nav: nav, log: log}
}

// Login autentica y guarda token y usuario. Si /user/me falla se guarda el
// usuario mínimo de la respuesta de login.
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*entity.UserInfo, error) {
	if req.PersonID == nil && (strings.TrimSpace(req.Username) == "" || req.Password == "") {
		return nil, fmt.Errorf("%w: usuario y contraseña requeridos", domain.ErrInvalidInput)
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("%w: login sin token", domain.ErrInvalidResponse)
	}
	if err := s.store.SetToken(resp.Token); err != nil {
		return nil, fmt.Errorf("guardar token: %w", err)
	}

	user := resp.UserInfo()
	if me, err := s.api.Me(ctx); err == nil && me != nil {
		user = *me
		user.MustChangePassword = user.MustChangePassword || resp.MustChangePassword
	} else if err != nil {
		s.log.Warn().Err(err).Msg("session: /user/me falló tras el login")
	}
	if err := s.store.SetUser(&user); err != nil {
		// Sin usuario no queda sesión a medias.
		if cerr := s.store.Clear(); cerr != nil {
			s.log.Error().Err(cerr).Msg("session: no se pudo deshacer el login")
		}
		return nil, fmt.Errorf("guardar usuario: %w", err)
	}
	s.log.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("session: login")
	return &user, nil
}

// Logout borra la sesión local y redirige a /login.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	s.nav.Redirect(navigation.PathLogin)
	return nil
}

// IsLoggedIn indica si hay token guardado.
func (s *Service) IsLoggedIn() bool {
	return s.store.Token() != ""
}

// StoredUser usuario cacheado (nil si no hay).
func (s *Service) StoredUser() (*entity.UserInfo, error) {
	return s.store.User()
}

// Refresh vuelve a pedir /user/me y actualiza la caché.
func (s *Service) Refresh(ctx context.Context) (*entity.UserInfo, error) {
	if !s.IsLoggedIn() {
		return nil, domain.ErrNoSession
	}
	me, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if me == nil {
		return nil, fmt.Errorf("%w: /user/me vacío", domain.ErrInvalidResponse)
	}
	if err := s.store.SetUser(me); err != nil {
		return nil, fmt.Errorf("guardar usuario: %w", err)
	}
	return me, nil
}

// ChangePassword cambia la contraseña y levanta la marca de cambio obligatorio.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: contraseñas requeridas", domain.ErrInvalidInput)
	}
	if oldPassword == newPassword {
		return fmt.Errorf("%w: la nueva contraseña debe ser distinta", domain.ErrInvalidInput)
	}
	if _, err := s.api.ChangePassword(ctx, dto.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}); err != nil {
		return err
	}
	u, err := s.store.User()
	if err != nil || u == nil {
		return err
	}
	u.MustChangePassword = false
	return s.store.SetUser(u)
}

// Claims claims del token guardado, sin verificar firma.
func (s *Service) Claims() (*pkgjwt.Claims, error) {
	token := s.store.Token()
	if token == "" {
		return nil, domain.ErrNoSession
	}
	return pkgjwt.Inspect(token)
}

// State estado para la guarda de navegación. El rol sale del usuario cacheado
// y, si no hay, de los claims del token.
func (s *Service) State() navigation.State {
	st := navigation.State{Token: s.store.Token()}
	if st.Token == "" {
		return st
	}
	if u, err := s.store.User(); err == nil && u != nil {
		st.Role = u.Role
		st.MustChangePassword = u.MustChangePassword
	}
	if st.Role == "" {
		if claims, err := pkgjwt.Inspect(st.Token); err == nil {
			st.Role = claims.Role
		} else {
			s.log.Debug().Err(err).Msg("session: token ilegible")
		}
	}
	return st
}
