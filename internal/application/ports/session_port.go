package ports

import "github.com/jhoicas/erp-admin/internal/domain/entity"

// Claves del almacén de sesión; coinciden con las que usa la consola web.
const (
	KeyToken = "erp_token"
	KeyUser  = "erp_user"
)

// TokenSource entrega el token de portador vigente ("" si no hay sesión).
// El cliente HTTP lo consulta en cada petición.
type TokenSource interface {
	Token() string
}

// SessionStore almacén persistente de token y usuario cacheado.
// Las escrituras reemplazan el valor completo; son idempotentes.
type SessionStore interface {
	TokenSource
	SetToken(token string) error
	User() (*entity.UserInfo, error)
	SetUser(user *entity.UserInfo) error
	// Clear elimina token y usuario.
	Clear() error
}
