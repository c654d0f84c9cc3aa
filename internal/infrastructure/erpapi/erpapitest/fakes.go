package erpapitest

import (
	"sync"

	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// Session almacén de sesión en memoria.
type Session struct {
	mu    sync.Mutex
	token string
	user  *entity.UserInfo
}

// NewSession sesión con token inicial (vacío = sin sesión).
func NewSession(token string) *Session { return &Session{token: token} }

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *Session) User() (*entity.UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

func (s *Session) SetUser(u *entity.UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

// Notice aviso registrado por Notifier.
type Notice struct {
	Level   string // success, info, warning, error
	Message string
}

// Notifier registra los avisos en orden.
type Notifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *Notifier) add(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Level: level, Message: msg})
}

func (n *Notifier) Success(msg string) { n.add("success", msg) }
func (n *Notifier) Info(msg string)    { n.add("info", msg) }
func (n *Notifier) Warning(msg string) { n.add("warning", msg) }
func (n *Notifier) Error(msg string)   { n.add("error", msg) }

// Notices copia de los avisos.
func (n *Notifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

// Last último aviso o vacío.
func (n *Notifier) Last() Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return Notice{}
	}
	return n.notices[len(n.notices)-1]
}

// Navigator registra las redirecciones.
type Navigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// Paths redirecciones en orden.
func (n *Navigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.paths))
	copy(out, n.paths)
	return out
}
