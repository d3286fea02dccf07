// Package dashboard projects the five domain snapshots into the
// aggregate counters the dashboard renders. Project is pure and the
// projector recomputes on demand, so stats are always consistent with
// the snapshots at the moment of the call and nothing is cached.
package dashboard

import (
	"time"

	"fleetpulse.io/fleetpulse/internal/domain"
)

// Inputs are the current snapshots the projection reads.
type Inputs struct {
	Equipment   []domain.Equipment
	Maintenance []domain.MaintenanceRecord
	Inspections []domain.InspectionRecord
	Remarks     []domain.Remark
	Tasks       []domain.Task
}

// EquipmentStats counts the fleet by lifecycle state. Decommissioned
// equipment is counted in Total but excluded from the active fleet.
type EquipmentStats struct {
	Total          int `json:"total"`
	ActiveFleet    int `json:"active_fleet"`
	Active         int `json:"active"`
	InMaintenance  int `json:"in_maintenance"`
	Inactive       int `json:"inactive"`
	Decommissioned int `json:"decommissioned"`
}

// MaintenanceStats breaks maintenance records down by type and status.
type MaintenanceStats struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

// InspectionStats covers today's inspections. When the same equipment
// is inspected twice on the same day, the later record (higher id)
// supersedes the earlier one in the working/not-working breakdown.
type InspectionStats struct {
	InspectedToday  int     `json:"inspected_today"`
	Working         int     `json:"working"`
	NotWorking      int     `json:"not_working"`
	InMaintenance   int     `json:"in_maintenance"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// TaskStats counts tasks by state.
type TaskStats struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	InProgress        int     `json:"in_progress"`
	Completed         int     `json:"completed"`
	Overdue           int     `json:"overdue"`
	CompletionPercent float64 `json:"completion_percent"`
}

// Stats is the full dashboard projection.
type Stats struct {
	Equipment   EquipmentStats   `json:"equipment"`
	Maintenance MaintenanceStats `json:"maintenance"`
	Inspections InspectionStats  `json:"inspections"`
	Tasks       TaskStats        `json:"tasks"`
	OpenRemarks int              `json:"open_remarks"`
	ComputedAt  time.Time        `json:"computed_at"`
}

// Project computes the dashboard stats for the given snapshots at the
// given instant. Pure; identical inputs yield identical stats.
func Project(in Inputs, now time.Time) Stats {
	return Stats{
		Equipment:   equipmentStats(in.Equipment),
		Maintenance: maintenanceStats(in.Maintenance),
		Inspections: inspectionStats(in.Inspections, in.Equipment, now),
		Tasks:       taskStats(in.Tasks, now),
		OpenRemarks: openRemarks(in.Remarks),
		ComputedAt:  now,
	}
}

func equipmentStats(equipment []domain.Equipment) EquipmentStats {
	var s EquipmentStats
	s.Total = len(equipment)
	for _, e := range equipment {
		if e.InActiveFleet() {
			s.ActiveFleet++
		}
		switch e.Status {
		case domain.EquipmentActive:
			s.Active++
		case domain.EquipmentMaintenance:
			s.InMaintenance++
		case domain.EquipmentInactive:
			s.Inactive++
		case domain.EquipmentDecommissioned:
			s.Decommissioned++
		}
	}
	return s
}

func maintenanceStats(records []domain.MaintenanceRecord) MaintenanceStats {
	s := MaintenanceStats{
		ByType:   map[string]int{},
		ByStatus: map[string]int{},
	}
	s.Total = len(records)
	for _, r := range records {
		s.ByType[r.MaintenanceType]++
		s.ByStatus[string(r.Status)]++
	}
	return s
}

func inspectionStats(inspections []domain.InspectionRecord, equipment []domain.Equipment, now time.Time) InspectionStats {
	// Coverage is over the active fleet: inspections of decommissioned
	// equipment or of ids that no longer resolve are skipped, so the
	// numerator can never outgrow the denominator.
	fleet := map[string]bool{}
	for _, e := range equipment {
		if e.InActiveFleet() {
			fleet[e.ID] = true
		}
	}

	// Last write wins per equipment per day; the backend assigns
	// ascending ids, so the highest id is the latest inspection.
	latest := map[string]domain.InspectionRecord{}
	for _, r := range inspections {
		if !r.InspectionDate.SameDay(now) || !fleet[r.EquipmentID] {
			continue
		}
		if prev, ok := latest[r.EquipmentID]; !ok || r.ID > prev.ID {
			latest[r.EquipmentID] = r
		}
	}

	var s InspectionStats
	s.InspectedToday = len(latest)
	for _, r := range latest {
		switch r.WorkingStatus {
		case domain.WorkingStatusWorking:
			s.Working++
		case domain.WorkingStatusNotWorking:
			s.NotWorking++
		case domain.WorkingStatusMaintenance:
			s.InMaintenance++
		}
	}

	if len(fleet) > 0 {
		s.CoveragePercent = float64(s.InspectedToday) / float64(len(fleet)) * 100
	}
	return s
}

func taskStats(tasks []domain.Task, now time.Time) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskPending:
			s.Pending++
		case domain.TaskInProgress:
			s.InProgress++
		case domain.TaskCompleted:
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionPercent = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

func openRemarks(remarks []domain.Remark) int {
	n := 0
	for _, r := range remarks {
		if r.Active() {
			n++
		}
	}
	return n
}

// Projector serves stats on demand from a snapshot source.
type Projector struct {
	source func() Inputs

	// Now is the projection clock; overridable in tests.
	Now func() time.Time
}

// NewProjector creates a projector over the given snapshot source.
func NewProjector(source func() Inputs) *Projector {
	return &Projector{source: source, Now: time.Now}
}

// Stats recomputes the projection from the current snapshots.
func (p *Projector) Stats() Stats {
	return Project(p.source(), p.Now())
}
