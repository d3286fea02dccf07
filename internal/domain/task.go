package domain

import "time"

// TaskStatus enumerates work task states.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskPriority enumerates work task priorities. Tasks use "urgent" as
// their top tier where the other domains use "critical".
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of work, optionally bound to a piece of equipment.
type Task struct {
	ID          int          `json:"id"`
	EquipmentID string       `json:"equipment_id,omitempty"`
	Title       string       `json:"title" validate:"required"`
	Status      TaskStatus   `json:"status" validate:"required,oneof=pending in_progress completed"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=low medium high urgent"`
	DueDate     *ISOTime     `json:"due_date,omitempty"`
}

// Overdue reports whether the task's due date has passed without the
// task being completed. Tasks without a due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == TaskCompleted || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(now)
}
