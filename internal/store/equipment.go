package store

import (
	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
)

// EquipmentStore owns the equipment collection.
type EquipmentStore struct {
	*Store[string, domain.Equipment]
}

// NewEquipmentStore creates the equipment store.
func NewEquipmentStore(gw Gateway[string, domain.Equipment], b *bus.Bus) *EquipmentStore {
	return &EquipmentStore{
		Store: New(domain.DomainEquipment, bus.TopicEquipmentChanged, gw, b,
			func(e domain.Equipment) string { return e.ID }, nil),
	}
}

// ActiveFleet returns every non-decommissioned item.
func (s *EquipmentStore) ActiveFleet() []domain.Equipment {
	var out []domain.Equipment
	for _, e := range s.Snapshot() {
		if e.InActiveFleet() {
			out = append(out, e)
		}
	}
	return out
}

// ByStatus filters the snapshot by status.
func (s *EquipmentStore) ByStatus(status domain.EquipmentStatus) []domain.Equipment {
	var out []domain.Equipment
	for _, e := range s.Snapshot() {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// ByType filters the snapshot by equipment type.
func (s *EquipmentStore) ByType(equipmentType string) []domain.Equipment {
	var out []domain.Equipment
	for _, e := range s.Snapshot() {
		if e.Type == equipmentType {
			out = append(out, e)
		}
	}
	return out
}
