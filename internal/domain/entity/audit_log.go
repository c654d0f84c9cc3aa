package entity

import "time"

// AuditLog registro de una acción que modifica datos; puede requerir aprobación.
type AuditLog struct {
	ID           uint        `json:"id"`
	UserID       uint        `json:"user_id"`
	UserType     string      `json:"user_type"`     // admin, service_person
	ActionType   string      `json:"action_type"`   // create, update, delete
	ResourceType string      `json:"resource_type"` // customer, task, agreement, payment, person
	ResourceID   *uint       `json:"resource_id,omitempty"`
	ResourceName string      `json:"resource_name,omitempty"`
	OldValue     string      `json:"old_value"` // instantánea JSON previa
	NewValue     string      `json:"new_value"` // instantánea JSON posterior
	Status       AuditStatus `json:"status"`
	ApprovedBy   *uint       `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time  `json:"approved_at,omitempty"`
	Reason       string      `json:"reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	User *AdminUser `json:"user,omitempty"`
}

// Pending indica si el registro espera una decisión.
func (l *AuditLog) Pending() bool {
	return l.Status == AuditPending
}
