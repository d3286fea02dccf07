package store

import (
	"time"

	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
)

// TaskStore owns the work task collection.
type TaskStore struct {
	*Store[int, domain.Task]
}

// NewTaskStore creates the task store.
func NewTaskStore(gw Gateway[int, domain.Task], b *bus.Bus) *TaskStore {
	return &TaskStore{
		Store: New(domain.DomainTasks, bus.TopicTasksChanged, gw, b,
			func(t domain.Task) int { return t.ID }, nil),
	}
}

// ByStatus filters the snapshot by status.
func (s *TaskStore) ByStatus(status domain.TaskStatus) []domain.Task {
	var out []domain.Task
	for _, t := range s.Snapshot() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Overdue returns tasks whose due date has passed without completion.
func (s *TaskStore) Overdue(now time.Time) []domain.Task {
	var out []domain.Task
	for _, t := range s.Snapshot() {
		if t.Overdue(now) {
			out = append(out, t)
		}
	}
	return out
}
