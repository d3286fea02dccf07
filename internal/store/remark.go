package store

import (
	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
)

// RemarkStore owns the remark collection.
type RemarkStore struct {
	*Store[int, domain.Remark]
}

// NewRemarkStore creates the remark store.
func NewRemarkStore(gw Gateway[int, domain.Remark], b *bus.Bus) *RemarkStore {
	return &RemarkStore{
		Store: New(domain.DomainRemarks, bus.TopicRemarksChanged, gw, b,
			func(r domain.Remark) int { return r.ID }, nil),
	}
}

// Active returns remarks that are open or in progress; only those alert.
func (s *RemarkStore) Active() []domain.Remark {
	var out []domain.Remark
	for _, r := range s.Snapshot() {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

// ByEquipment returns every remark attached to the given equipment id.
func (s *RemarkStore) ByEquipment(equipmentID string) []domain.Remark {
	var out []domain.Remark
	for _, r := range s.Snapshot() {
		if r.EquipmentID == equipmentID {
			out = append(out, r)
		}
	}
	return out
}
