package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

var now = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func activeEquipment(id string) domain.Equipment {
	return domain.Equipment{ID: id, Name: "Unit " + id, Status: domain.EquipmentActive}
}

func TestMaintenanceDueWithinThreeDaysIsHigh(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{activeEquipment("E1")},
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "E1", MaintenanceType: "oil_change",
			Status:        domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 2)),
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindMaintenanceDue, got[0].Kind)
	assert.Equal(t, domain.NotificationHigh, got[0].Priority)
	assert.Equal(t, "E1", got[0].RelatedEquipmentID)
}

func TestMaintenanceDueLaterInWindowIsMedium(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{activeEquipment("E1")},
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "E1", MaintenanceType: "inspection_prep",
			Status:        domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 6)),
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindMaintenanceDue, got[0].Kind)
	assert.Equal(t, domain.NotificationMedium, got[0].Priority)
}

func TestMaintenanceBeyondWindowIsSilent(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{activeEquipment("E1")},
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "E1", Status: domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 10)),
		}},
	}
	assert.Empty(t, Aggregate(in, now))
}

func TestMaintenanceOverdueIsAlwaysHigh(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{activeEquipment("E1")},
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "E1", MaintenanceType: "oil_change",
			Status:        domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, -5)),
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindMaintenanceOverdue, got[0].Kind)
	assert.Equal(t, domain.NotificationHigh, got[0].Priority)
}

func TestCriticalOpenRemarkIsHighAndTitledOpen(t *testing.T) {
	in := Inputs{
		Remarks: []domain.Remark{{
			ID: 1, EquipmentID: "E1", Text: "hydraulic leak",
			Status: domain.RemarkOpen, Priority: domain.RemarkPriorityCritical,
			CreatedAt: domain.NewISOTime(now.Add(-time.Hour)),
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindRemark, got[0].Kind)
	assert.Equal(t, domain.NotificationHigh, got[0].Priority)
	assert.Equal(t, "Open remark", got[0].Title)
}

func TestInProgressRemarkTitle(t *testing.T) {
	in := Inputs{
		Remarks: []domain.Remark{{
			ID: 2, Status: domain.RemarkInProgress, Priority: domain.RemarkPriorityHigh,
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Remark in progress", got[0].Title)
	assert.Equal(t, domain.NotificationMedium, got[0].Priority)
}

func TestResolvedAndClosedRemarksAreSilent(t *testing.T) {
	in := Inputs{
		Remarks: []domain.Remark{
			{ID: 1, Status: domain.RemarkResolved, Priority: domain.RemarkPriorityCritical},
			{ID: 2, Status: domain.RemarkClosed, Priority: domain.RemarkPriorityCritical},
		},
	}
	assert.Empty(t, Aggregate(in, now))
}

func TestOverdueTaskForcesHighPriority(t *testing.T) {
	due := domain.NewISOTime(now.AddDate(0, 0, -1))
	in := Inputs{
		Tasks: []domain.Task{{
			ID: 1, Title: "Replace belt", Status: domain.TaskPending,
			Priority: domain.TaskPriorityLow, DueDate: &due,
		}},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindTask, got[0].Kind)
	assert.Equal(t, domain.NotificationHigh, got[0].Priority, "overdue override beats the task's own low priority")
	assert.Contains(t, got[0].Title, "Overdue task")
}

func TestTaskPriorityMapping(t *testing.T) {
	tests := []struct {
		taskPriority domain.TaskPriority
		want         domain.NotificationPriority
	}{
		{domain.TaskPriorityUrgent, domain.NotificationHigh},
		{domain.TaskPriorityHigh, domain.NotificationMedium},
		{domain.TaskPriorityMedium, domain.NotificationLow},
		{domain.TaskPriorityLow, domain.NotificationLow},
	}

	for _, tt := range tests {
		in := Inputs{Tasks: []domain.Task{{ID: 1, Title: "t", Status: domain.TaskPending, Priority: tt.taskPriority}}}
		got := Aggregate(in, now)
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].Priority, "task priority %s", tt.taskPriority)
	}
}

func TestCompletedTasksAreSilent(t *testing.T) {
	in := Inputs{Tasks: []domain.Task{{ID: 1, Title: "done", Status: domain.TaskCompleted, Priority: domain.TaskPriorityUrgent}}}
	assert.Empty(t, Aggregate(in, now))
}

func TestEquipmentWarnings(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{
			{ID: "E1", Name: "Press", Status: domain.EquipmentMaintenance},
			{ID: "E2", Name: "Drill", Status: domain.EquipmentInactive},
			{ID: "E3", Name: "Saw", Status: domain.EquipmentActive},
		},
	}

	got := Aggregate(in, now)
	require.Len(t, got, 2)

	byID := map[string]domain.Notification{}
	for _, n := range got {
		byID[n.RelatedEquipmentID] = n
	}
	assert.Equal(t, domain.NotificationMedium, byID["E1"].Priority)
	assert.Equal(t, domain.NotificationHigh, byID["E2"].Priority)
}

func TestDecommissionedEquipmentProducesNothing(t *testing.T) {
	in := Inputs{
		Equipment: []domain.Equipment{{ID: "E1", Name: "Old press", Status: domain.EquipmentDecommissioned}},
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "E1", Status: domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 1)),
		}},
	}

	for _, n := range Aggregate(in, now) {
		assert.NotEqual(t, "E1", n.RelatedEquipmentID,
			"decommissioned equipment must never surface in due/overdue/warning alerts")
	}
	assert.Empty(t, Aggregate(in, now))
}

func TestDanglingMaintenanceReferenceIsSkipped(t *testing.T) {
	in := Inputs{
		// No equipment at all: every maintenance reference dangles.
		Maintenance: []domain.MaintenanceRecord{{
			ID: 1, EquipmentID: "GONE", Status: domain.MaintenanceScheduled,
			ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, -1)),
		}},
	}

	assert.NotPanics(t, func() {
		assert.Empty(t, Aggregate(in, now))
	})
}

func TestEmptyInputsProduceEmptyFeed(t *testing.T) {
	assert.Empty(t, Aggregate(Inputs{}, now))
}

func TestAggregationIsIdempotent(t *testing.T) {
	in := mixedInputs()
	first := Aggregate(in, now)
	second := Aggregate(in, now)
	assert.Equal(t, first, second, "identical inputs must yield an identical ordered list, ids included")
}

func TestNoDuplicateIDs(t *testing.T) {
	got := Aggregate(mixedInputs(), now)
	seen := map[string]bool{}
	for _, n := range got {
		assert.False(t, seen[n.ID], "duplicate notification id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestPriorityOrderingWithCreatedAtTieBreak(t *testing.T) {
	got := Aggregate(mixedInputs(), now)
	require.NotEmpty(t, got)

	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		require.GreaterOrEqual(t, a.Priority.Weight(), b.Priority.Weight(),
			"priority must be non-increasing")
		if a.Priority.Weight() == b.Priority.Weight() {
			assert.False(t, a.CreatedAt.Before(b.CreatedAt),
				"within a priority band, newer entries come first")
		}
	}
}

// mixedInputs exercises every rule at once.
func mixedInputs() Inputs {
	overdueDue := domain.NewISOTime(now.AddDate(0, 0, -2))
	futureDue := domain.NewISOTime(now.AddDate(0, 0, 3))
	return Inputs{
		Equipment: []domain.Equipment{
			activeEquipment("E1"),
			{ID: "E2", Name: "Press", Status: domain.EquipmentMaintenance},
			{ID: "E3", Name: "Drill", Status: domain.EquipmentInactive},
			{ID: "E4", Name: "Retired", Status: domain.EquipmentDecommissioned},
		},
		Maintenance: []domain.MaintenanceRecord{
			{ID: 1, EquipmentID: "E1", MaintenanceType: "oil", Status: domain.MaintenanceScheduled, ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 2))},
			{ID: 2, EquipmentID: "E1", MaintenanceType: "belt", Status: domain.MaintenanceScheduled, ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, -3))},
			{ID: 3, EquipmentID: "E4", MaintenanceType: "oil", Status: domain.MaintenanceScheduled, ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 1))},
			{ID: 4, EquipmentID: "MISSING", Status: domain.MaintenanceScheduled, ScheduledDate: domain.NewISOTime(now.AddDate(0, 0, 1))},
		},
		Remarks: []domain.Remark{
			{ID: 1, EquipmentID: "E1", Text: "leak", Status: domain.RemarkOpen, Priority: domain.RemarkPriorityCritical, CreatedAt: domain.NewISOTime(now.Add(-2 * time.Hour))},
			{ID: 2, EquipmentID: "E2", Text: "noise", Status: domain.RemarkInProgress, Priority: domain.RemarkPriorityLow, CreatedAt: domain.NewISOTime(now.Add(-time.Hour))},
			{ID: 3, EquipmentID: "E2", Text: "fixed", Status: domain.RemarkResolved, Priority: domain.RemarkPriorityCritical, CreatedAt: domain.NewISOTime(now)},
		},
		Tasks: []domain.Task{
			{ID: 1, Title: "Replace belt", Status: domain.TaskPending, Priority: domain.TaskPriorityLow, DueDate: &overdueDue},
			{ID: 2, Title: "Order parts", Status: domain.TaskInProgress, Priority: domain.TaskPriorityUrgent, DueDate: &futureDue},
			{ID: 3, Title: "File report", Status: domain.TaskCompleted, Priority: domain.TaskPriorityHigh},
		},
	}
}
