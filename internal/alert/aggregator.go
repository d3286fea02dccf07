// Package alert derives the prioritized notification feed from the
// five domain snapshots. Aggregate is a pure function: no state, no
// I/O, no hidden counters. The whole feed is rebuilt from scratch on
// every call, which makes re-aggregation idempotent and trivially
// consistent with whatever the stores currently hold.
package alert

import (
	"fmt"
	"sort"
	"time"

	"fleetpulse.io/fleetpulse/internal/domain"
)

// dueWindow is how far ahead a scheduled maintenance produces a
// maintenance_due alert; dueSoon is the cutoff below which the alert
// escalates to high priority.
const (
	dueWindow = 7 * 24 * time.Hour
	dueSoon   = 3 * 24 * time.Hour
)

// Inputs are the current snapshots of all five domains. Any of them
// may be empty or carry dangling cross-domain references; aggregation
// degrades to fewer notifications instead of failing.
type Inputs struct {
	Equipment   []domain.Equipment
	Maintenance []domain.MaintenanceRecord
	Inspections []domain.InspectionRecord
	Remarks     []domain.Remark
	Tasks       []domain.Task
}

// Aggregate recomputes the ordered notification list for the given
// snapshots at the given instant. Identical inputs and now yield an
// identical list, ids included.
func Aggregate(in Inputs, now time.Time) []domain.Notification {
	equipmentByID := make(map[string]domain.Equipment, len(in.Equipment))
	for _, e := range in.Equipment {
		equipmentByID[e.ID] = e
	}

	var out []domain.Notification
	out = append(out, maintenanceAlerts(in.Maintenance, equipmentByID, now)...)
	out = append(out, remarkAlerts(in.Remarks)...)
	out = append(out, taskAlerts(in.Tasks, now)...)
	out = append(out, equipmentAlerts(in.Equipment, now)...)

	sortNotifications(out)
	return out
}

// maintenanceAlerts emits due/overdue alerts for scheduled records.
// Records pointing at a missing or decommissioned equipment are
// skipped: referential integrity is not enforced at write time, so it
// is tolerated at read time.
func maintenanceAlerts(records []domain.MaintenanceRecord, equipment map[string]domain.Equipment, now time.Time) []domain.Notification {
	var out []domain.Notification
	for _, r := range records {
		if r.Status != domain.MaintenanceScheduled || r.ScheduledDate.IsZero() {
			continue
		}
		eq, ok := equipment[r.EquipmentID]
		if !ok || !eq.InActiveFleet() {
			continue
		}

		sched := r.ScheduledDate.Time
		switch {
		case sched.Before(now):
			out = append(out, domain.Notification{
				ID:                 domain.NotificationID(domain.KindMaintenanceOverdue, domain.DomainMaintenance, r.ID),
				Kind:               domain.KindMaintenanceOverdue,
				Priority:           domain.NotificationHigh,
				Title:              fmt.Sprintf("Maintenance overdue: %s", r.MaintenanceType),
				Description:        fmt.Sprintf("%s maintenance for %s was scheduled for %s", r.MaintenanceType, eq.Name, sched.Format("2006-01-02")),
				RelatedEquipmentID: r.EquipmentID,
				CreatedAt:          sched,
			})
		case sched.Sub(now) <= dueWindow:
			priority := domain.NotificationMedium
			if sched.Sub(now) <= dueSoon {
				priority = domain.NotificationHigh
			}
			out = append(out, domain.Notification{
				ID:                 domain.NotificationID(domain.KindMaintenanceDue, domain.DomainMaintenance, r.ID),
				Kind:               domain.KindMaintenanceDue,
				Priority:           priority,
				Title:              fmt.Sprintf("Maintenance due: %s", r.MaintenanceType),
				Description:        fmt.Sprintf("%s maintenance for %s is scheduled for %s", r.MaintenanceType, eq.Name, sched.Format("2006-01-02")),
				RelatedEquipmentID: r.EquipmentID,
				CreatedAt:          sched,
			})
		}
	}
	return out
}

// remarkAlerts emits one alert per open or in-progress remark.
func remarkAlerts(remarks []domain.Remark) []domain.Notification {
	var out []domain.Notification
	for _, r := range remarks {
		if !r.Active() {
			continue
		}

		var priority domain.NotificationPriority
		switch r.Priority {
		case domain.RemarkPriorityCritical:
			priority = domain.NotificationHigh
		case domain.RemarkPriorityHigh:
			priority = domain.NotificationMedium
		default:
			priority = domain.NotificationLow
		}

		title := "Open remark"
		if r.Status == domain.RemarkInProgress {
			title = "Remark in progress"
		}

		out = append(out, domain.Notification{
			ID:                 domain.NotificationID(domain.KindRemark, domain.DomainRemarks, r.ID),
			Kind:               domain.KindRemark,
			Priority:           priority,
			Title:              title,
			Description:        r.Text,
			RelatedEquipmentID: r.EquipmentID,
			CreatedAt:          r.CreatedAt.Time,
		})
	}
	return out
}

// taskAlerts emits one alert per pending or in-progress task. A task
// past its due date is forced to high priority regardless of its own
// priority field.
func taskAlerts(tasks []domain.Task, now time.Time) []domain.Notification {
	var out []domain.Notification
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			continue
		}

		var priority domain.NotificationPriority
		switch t.Priority {
		case domain.TaskPriorityUrgent:
			priority = domain.NotificationHigh
		case domain.TaskPriorityHigh:
			priority = domain.NotificationMedium
		default:
			priority = domain.NotificationLow
		}

		title := fmt.Sprintf("Task: %s", t.Title)
		if t.Overdue(now) {
			priority = domain.NotificationHigh
			title = fmt.Sprintf("Overdue task: %s", t.Title)
		}

		createdAt := now
		if t.DueDate != nil && !t.DueDate.IsZero() {
			createdAt = t.DueDate.Time
		}

		out = append(out, domain.Notification{
			ID:                 domain.NotificationID(domain.KindTask, domain.DomainTasks, t.ID),
			Kind:               domain.KindTask,
			Priority:           priority,
			Title:              title,
			Description:        fmt.Sprintf("Task %q is %s", t.Title, t.Status),
			RelatedEquipmentID: t.EquipmentID,
			CreatedAt:          createdAt,
		})
	}
	return out
}

// equipmentAlerts warns about equipment sitting in maintenance or
// inactive. Decommissioned equipment is deliberate and silent.
func equipmentAlerts(equipment []domain.Equipment, now time.Time) []domain.Notification {
	var out []domain.Notification
	for _, e := range equipment {
		var priority domain.NotificationPriority
		switch e.Status {
		case domain.EquipmentMaintenance:
			priority = domain.NotificationMedium
		case domain.EquipmentInactive:
			priority = domain.NotificationHigh
		default:
			continue
		}

		out = append(out, domain.Notification{
			ID:                 domain.NotificationID(domain.KindEquipmentWarning, domain.DomainEquipment, e.ID),
			Kind:               domain.KindEquipmentWarning,
			Priority:           priority,
			Title:              fmt.Sprintf("Equipment %s: %s", e.Name, e.Status),
			Description:        fmt.Sprintf("Equipment %s is currently %s", e.Name, e.Status),
			RelatedEquipmentID: e.ID,
			CreatedAt:          now,
		})
	}
	return out
}

// sortNotifications orders by priority descending, then createdAt
// descending. Id is the final tie-break so identical inputs always
// produce an identical ordering.
func sortNotifications(list []domain.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		wi, wj := list[i].Priority.Weight(), list[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
