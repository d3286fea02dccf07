package store

import (
	"time"

	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
)

// InspectionStore owns the inspection record collection.
type InspectionStore struct {
	*Store[int, domain.InspectionRecord]
}

// NewInspectionStore creates the inspection store.
func NewInspectionStore(gw Gateway[int, domain.InspectionRecord], b *bus.Bus) *InspectionStore {
	return &InspectionStore{
		Store: New(domain.DomainInspections, bus.TopicInspectionsChanged, gw, b,
			func(r domain.InspectionRecord) int { return r.ID }, nil),
	}
}

// OnDay returns every inspection performed on the given calendar day.
func (s *InspectionStore) OnDay(day time.Time) []domain.InspectionRecord {
	var out []domain.InspectionRecord
	for _, r := range s.Snapshot() {
		if r.InspectionDate.SameDay(day) {
			out = append(out, r)
		}
	}
	return out
}

// LatestPerEquipment reduces the given day's inspections to one per
// equipment. A later inspection supersedes an earlier one for the same
// equipment and day; creation order is reflected in ascending ids.
func (s *InspectionStore) LatestPerEquipment(day time.Time) map[string]domain.InspectionRecord {
	latest := make(map[string]domain.InspectionRecord)
	for _, r := range s.OnDay(day) {
		if prev, ok := latest[r.EquipmentID]; !ok || r.ID > prev.ID {
			latest[r.EquipmentID] = r
		}
	}
	return latest
}
