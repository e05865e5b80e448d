package domain

import "time"

// Maintenance request statuses
const (
	MaintenancePending    = "PENDING"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceCompleted  = "COMPLETED"
	MaintenanceCancelled  = "CANCELLED"
)

// Maintenance request priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// MaintenanceRequest tracks a repair or upkeep job against a property
type MaintenanceRequest struct {
	ID             int64
	PropertyID     string
	Description    string
	Status         string
	Priority       string
	ReportedDate   time.Time
	CompletedDate  time.Time // zero while the request is open
	Cost           float64
	Notes          string
	ScheduledDate  time.Time // zero until scheduled
	ContractorName string
}

// NewMaintenanceRequest creates a pending request reported now
func NewMaintenanceRequest(propertyID, description, priority string, now time.Time) *MaintenanceRequest {
	return &MaintenanceRequest{
		PropertyID:   propertyID,
		Description:  description,
		Status:       MaintenancePending,
		Priority:     priority,
		ReportedDate: now,
	}
}

// Complete marks the request finished with its final cost
func (m *MaintenanceRequest) Complete(finalCost float64, now time.Time) {
	m.Status = MaintenanceCompleted
	m.CompletedDate = now
	m.Cost = finalCost
}

// Cancel closes the request with a reason in the notes
func (m *MaintenanceRequest) Cancel(reason string) {
	m.Status = MaintenanceCancelled
	m.Notes = reason
}

// overdueThreshold returns the allowed open days for a priority
func overdueThreshold(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 7
	default:
		return 14
	}
}

// IsOverdue reports whether a non-terminal request has been open past its
// priority threshold: 1, 3, 7 or 14 days for URGENT, HIGH, MEDIUM and others
func (m *MaintenanceRequest) IsOverdue(now time.Time) bool {
	if m.Status == MaintenanceCompleted || m.Status == MaintenanceCancelled {
		return false
	}
	deadline := m.ReportedDate.AddDate(0, 0, overdueThreshold(m.Priority))
	return now.After(deadline)
}

// MaintenanceRepository defines data access for maintenance requests
type MaintenanceRepository interface {
	Save(m *MaintenanceRequest) error
	ListForProperty(propertyID string) ([]*MaintenanceRequest, error)
	Delete(id int64) error
}
