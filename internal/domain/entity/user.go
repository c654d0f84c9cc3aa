package entity

import "time"

// Roles válidos de AdminUser.
const (
	RoleSuperAdmin    = "super_admin"
	RoleManager       = "manager"
	RoleServicePerson = "service_person"
)

// AdminUser cuenta de acceso ligada a una Person.
type AdminUser struct {
	ID                 uint       `json:"id"`
	Username           string     `json:"username"`
	Role               string     `json:"role"`
	PersonID           *uint      `json:"person_id,omitempty"`
	MustChangePassword bool       `json:"must_change_password"`
	LastPasswordChange *time.Time `json:"last_password_change,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Person *Person `json:"person,omitempty"`
}

// UserInfo usuario de la sesión actual, tal como lo devuelve /user/me y se guarda localmente.
type UserInfo struct {
	ID                 uint    `json:"id"`
	Username           string  `json:"username,omitempty"`
	Name               string  `json:"name,omitempty"`
	Role               string  `json:"role"`
	MustChangePassword bool    `json:"must_change_password,omitempty"`
	IsManager          bool    `json:"is_manager,omitempty"`
	IsServicePerson    bool    `json:"is_service_person,omitempty"`
	Person             *Person `json:"person,omitempty"`
}

// DisplayName nombre a mostrar: nombre de la persona o usuario.
func (u *UserInfo) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Person != nil && u.Person.Name != "" {
		return u.Person.Name
	}
	return u.Username
}

// HasRole indica si el rol del usuario satisface required.
// manager lo satisfacen manager y super_admin; super_admin sólo super_admin.
func HasRole(role, required string) bool {
	switch required {
	case "":
		return true
	case RoleManager:
		return role == RoleManager || role == RoleSuperAdmin
	default:
		return role == required
	}
}
