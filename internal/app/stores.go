package app

import (
	"context"

	"fleetpulse.io/fleetpulse/internal/alert"
	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/dashboard"
	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/remote"
	"fleetpulse.io/fleetpulse/internal/store"
)

// Stores bundles the five domain stores.
type Stores struct {
	Equipment   *store.EquipmentStore
	Maintenance *store.MaintenanceStore
	Inspections *store.InspectionStore
	Remarks     *store.RemarkStore
	Tasks       *store.TaskStore
}

// syncable is the store surface the sync loops operate on. Every typed
// store satisfies it through its embedded generic store.
type syncable interface {
	Domain() string
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() store.Status
}

func newStores(client *remote.Client, b *bus.Bus) *Stores {
	return &Stores{
		Equipment:   store.NewEquipmentStore(remote.NewResource[string, domain.Equipment](client, "/equipment"), b),
		Maintenance: store.NewMaintenanceStore(remote.NewResource[int, domain.MaintenanceRecord](client, "/maintenance"), b),
		Inspections: store.NewInspectionStore(remote.NewResource[int, domain.InspectionRecord](client, "/inspections"), b),
		Remarks:     store.NewRemarkStore(remote.NewResource[int, domain.Remark](client, "/remarks"), b),
		Tasks:       store.NewTaskStore(remote.NewResource[int, domain.Task](client, "/tasks"), b),
	}
}

// each returns the stores in a stable order for the sync loops.
func (s *Stores) each() []syncable {
	return []syncable{s.Equipment, s.Maintenance, s.Inspections, s.Remarks, s.Tasks}
}

// Statuses reports the per-domain sync state in a stable order.
func (s *Stores) Statuses() []store.Status {
	var out []store.Status
	for _, st := range s.each() {
		out = append(out, st.Status())
	}
	return out
}

// alertInputs joins the current snapshots for the notification
// aggregator.
func (s *Stores) alertInputs() alert.Inputs {
	return alert.Inputs{
		Equipment:   s.Equipment.Snapshot(),
		Maintenance: s.Maintenance.Snapshot(),
		Inspections: s.Inspections.Snapshot(),
		Remarks:     s.Remarks.Snapshot(),
		Tasks:       s.Tasks.Snapshot(),
	}
}

// dashboardInputs joins the current snapshots for the dashboard
// projection.
func (s *Stores) dashboardInputs() dashboard.Inputs {
	return dashboard.Inputs{
		Equipment:   s.Equipment.Snapshot(),
		Maintenance: s.Maintenance.Snapshot(),
		Inspections: s.Inspections.Snapshot(),
		Remarks:     s.Remarks.Snapshot(),
		Tasks:       s.Tasks.Snapshot(),
	}
}
