package dto

import "github.com/jhoicas/erp-admin/internal/domain/entity"

// LoginRequest credenciales. Las personas de servicio pueden entrar con PersonID.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	PersonID *uint  `json:"person_id,omitempty"`
}

// LoginResponse token emitido por el backend.
type LoginResponse struct {
	Token              string `json:"token"`
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

// UserInfo construye el usuario a cachear a partir de la respuesta de login.
func (r *LoginResponse) UserInfo() entity.UserInfo {
	return entity.UserInfo{
		ID:                 r.UserID,
		Username:           r.Username,
		Role:               r.Role,
		MustChangePassword: r.MustChangePassword,
		IsManager:          entity.HasRole(r.Role, entity.RoleManager),
		IsServicePerson:    r.Role == entity.RoleServicePerson,
	}
}

// LoginUser usuario elegible en la pantalla de acceso.
type LoginUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	PersonID *uint  `json:"person_id,omitempty"`
}

// ChangePasswordRequest cambio de contraseña del usuario actual.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
