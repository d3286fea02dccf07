package domain

import "fmt"

// MaintenanceStatus enumerates maintenance record states.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenancePostponed  MaintenanceStatus = "postponed"
)

// MaintenancePriority enumerates maintenance priorities.
type MaintenancePriority string

const (
	MaintenancePriorityLow      MaintenancePriority = "low"
	MaintenancePriorityMedium   MaintenancePriority = "medium"
	MaintenancePriorityHigh     MaintenancePriority = "high"
	MaintenancePriorityCritical MaintenancePriority = "critical"
)

// MaintenanceRecord is a scheduled or performed maintenance action.
// EquipmentID may reference a deleted Equipment; consumers must
// tolerate the dangling reference and skip the record.
type MaintenanceRecord struct {
	ID              int                 `json:"id"`
	EquipmentID     string              `json:"equipment_id" validate:"required"`
	MaintenanceType string              `json:"maintenance_type" validate:"required"`
	ScheduledDate   ISOTime             `json:"scheduled_date"`
	CompletedDate   *ISOTime            `json:"completed_date,omitempty"`
	Status          MaintenanceStatus   `json:"status" validate:"required,oneof=scheduled in_progress completed postponed"`
	Priority        MaintenancePriority `json:"priority" validate:"required,oneof=low medium high critical"`
}

// CheckCompletion enforces the invariant that a completed date is set
// if and only if the record is completed.
func (r MaintenanceRecord) CheckCompletion() error {
	hasDate := r.CompletedDate != nil && !r.CompletedDate.IsZero()
	if hasDate != (r.Status == MaintenanceCompleted) {
		return fmt.Errorf("completed_date must be set exactly when status is %q (status=%q, date set=%t)",
			MaintenanceCompleted, r.Status, hasDate)
	}
	return nil
}
