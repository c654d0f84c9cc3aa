package dto

// ApprovalRequest decisión sobre un registro de auditoría pendiente.
type ApprovalRequest struct {
	LogID  uint   `json:"log_id"`
	Reason string `json:"reason,omitempty"`
}

// SetManagerRequest otorga o retira el rol manager a una persona.
type SetManagerRequest struct {
	PersonID  uint `json:"person_id"`
	IsManager bool `json:"is_manager"`
}

// CreateAdminUserRequest alta de cuenta de acceso.
type CreateAdminUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	PersonID uint   `json:"person_id"`
}
