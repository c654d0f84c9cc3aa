package entity

import "time"

// Task tarea pendiente ligada a un cliente.
type Task struct {
	ID          uint       `json:"id"`
	CustomerID  uint       `json:"customer_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Customer *CustomerRef `json:"customer,omitempty"`
}

// Overdue indica si la tarea sigue abierta pasada su fecha límite.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status != TaskCompleted && t.DueDate != nil && now.After(*t.DueDate)
}
