// Package domain holds the five entity types FleetPulse synchronizes
// and the derived notification type. Entities are plain data: they are
// created from server-confirmed responses and replaced wholesale on
// each successful fetch. Nothing in this package performs I/O.
package domain

// Domain names, used in error reporting and derived notification ids.
const (
	DomainEquipment   = "equipment"
	DomainMaintenance = "maintenance"
	DomainInspections = "inspections"
	DomainRemarks     = "remarks"
	DomainTasks       = "tasks"
)

// EquipmentStatus enumerates equipment lifecycle states.
type EquipmentStatus string

const (
	EquipmentActive         EquipmentStatus = "active"
	EquipmentMaintenance    EquipmentStatus = "maintenance"
	EquipmentInactive       EquipmentStatus = "inactive"
	EquipmentDecommissioned EquipmentStatus = "decommissioned"
)

// Equipment is a tracked asset. The ID is stable and externally
// assigned by the backend.
type Equipment struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name" validate:"required"`
	Type                string          `json:"type"`
	Status              EquipmentStatus `json:"status" validate:"required,oneof=active maintenance inactive decommissioned"`
	LastServiceDate     ISOTime         `json:"last_service_date"`
	NextServiceDate     ISOTime         `json:"next_service_date"`
	ResponsibleParty    string          `json:"responsible_party"`
	ServiceIntervalTags []string        `json:"service_interval_tags"`
}

// InActiveFleet reports whether the equipment participates in fleet
// computations. Decommissioned items are excluded from every "active
// fleet" calculation anywhere in the system.
func (e Equipment) InActiveFleet() bool {
	return e.Status != EquipmentDecommissioned
}
