package domain

// RemarkStatus enumerates remark states.
type RemarkStatus string

const (
	RemarkOpen       RemarkStatus = "open"
	RemarkInProgress RemarkStatus = "in_progress"
	RemarkResolved   RemarkStatus = "resolved"
	RemarkClosed     RemarkStatus = "closed"
)

// RemarkPriority enumerates remark priorities.
type RemarkPriority string

const (
	RemarkPriorityLow      RemarkPriority = "low"
	RemarkPriorityMedium   RemarkPriority = "medium"
	RemarkPriorityHigh     RemarkPriority = "high"
	RemarkPriorityCritical RemarkPriority = "critical"
)

// Remark is a free-text note attached to a piece of equipment.
type Remark struct {
	ID          int            `json:"id"`
	EquipmentID string         `json:"equipment_id" validate:"required"`
	Text        string         `json:"text" validate:"required"`
	Status      RemarkStatus   `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	Priority    RemarkPriority `json:"priority" validate:"required,oneof=low medium high critical"`
	CreatedAt   ISOTime        `json:"created_at"`
}

// Active reports whether the remark should alert. Resolved and closed
// remarks never produce notifications.
func (r Remark) Active() bool {
	return r.Status == RemarkOpen || r.Status == RemarkInProgress
}
