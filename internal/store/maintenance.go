package store

import (
	"time"

	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
)

// MaintenanceStore owns the maintenance record collection.
type MaintenanceStore struct {
	*Store[int, domain.MaintenanceRecord]
}

// NewMaintenanceStore creates the maintenance store. The completion
// invariant (completed_date set ⇔ status completed) is enforced on
// every mutation before the remote call.
func NewMaintenanceStore(gw Gateway[int, domain.MaintenanceRecord], b *bus.Bus) *MaintenanceStore {
	return &MaintenanceStore{
		Store: New(domain.DomainMaintenance, bus.TopicMaintenanceChanged, gw, b,
			func(r domain.MaintenanceRecord) int { return r.ID },
			domain.MaintenanceRecord.CheckCompletion),
	}
}

// ByStatus filters the snapshot by status.
func (s *MaintenanceStore) ByStatus(status domain.MaintenanceStatus) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	for _, r := range s.Snapshot() {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// ByEquipment returns every record referencing the given equipment id,
// including dangling references to equipment that no longer exists.
func (s *MaintenanceStore) ByEquipment(equipmentID string) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	for _, r := range s.Snapshot() {
		if r.EquipmentID == equipmentID {
			out = append(out, r)
		}
	}
	return out
}

// ScheduledBetween returns scheduled records whose date falls within
// [from, to).
func (s *MaintenanceStore) ScheduledBetween(from, to time.Time) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	for _, r := range s.Snapshot() {
		if r.Status != domain.MaintenanceScheduled {
			continue
		}
		d := r.ScheduledDate.Time
		if !d.Before(from) && d.Before(to) {
			out = append(out, r)
		}
	}
	return out
}
