package domain

import (
	"fmt"
	"time"
)

// NotificationKind enumerates the alert categories the aggregator emits.
type NotificationKind string

const (
	KindMaintenanceDue     NotificationKind = "maintenance_due"
	KindMaintenanceOverdue NotificationKind = "maintenance_overdue"
	KindRemark             NotificationKind = "remark"
	KindTask               NotificationKind = "task"
	KindEquipmentWarning   NotificationKind = "equipment_warning"
)

// NotificationPriority enumerates alert priorities.
type NotificationPriority string

const (
	NotificationHigh   NotificationPriority = "high"
	NotificationMedium NotificationPriority = "medium"
	NotificationLow    NotificationPriority = "low"
)

// Weight returns the sort weight of a priority: high=3, medium=2, low=1.
func (p NotificationPriority) Weight() int {
	switch p {
	case NotificationHigh:
		return 3
	case NotificationMedium:
		return 2
	case NotificationLow:
		return 1
	default:
		return 0
	}
}

// Notification is a derived alert. It is never persisted: the whole
// feed is recomputed from the current domain snapshots on every
// aggregation, so the set is always consistent with whatever the
// stores currently hold.
type Notification struct {
	ID                 string               `json:"id"`
	Kind               NotificationKind     `json:"kind"`
	Priority           NotificationPriority `json:"priority"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	RelatedEquipmentID string               `json:"related_equipment_id,omitempty"`
	CreatedAt          time.Time            `json:"created_at"` // tie-break ordering only, not identity
}

// NotificationID derives the deterministic id for an alert from its
// source record. Re-aggregation therefore never yields duplicate
// alerts for the same underlying record.
func NotificationID(kind NotificationKind, sourceDomain string, sourceID any) string {
	return fmt.Sprintf("%s-%s-%v", kind, sourceDomain, sourceID)
}
