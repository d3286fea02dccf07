package domain

// WorkingStatus enumerates the result of an inspection.
type WorkingStatus string

const (
	WorkingStatusWorking     WorkingStatus = "working"
	WorkingStatusNotWorking  WorkingStatus = "not_working"
	WorkingStatusMaintenance WorkingStatus = "maintenance"
)

// InspectionRecord captures one inspection of one piece of equipment.
// For daily aggregates, a later inspection of the same equipment on the
// same day supersedes an earlier one (last-write-wins by creation
// order, which the backend reflects in ascending ids).
type InspectionRecord struct {
	ID             int           `json:"id"`
	EquipmentID    string        `json:"equipment_id" validate:"required"`
	InspectionDate ISOTime       `json:"inspection_date"`
	WorkingStatus  WorkingStatus `json:"working_status" validate:"required,oneof=working not_working maintenance"`
	IssueCount     int           `json:"issue_count" validate:"gte=0"`
}
