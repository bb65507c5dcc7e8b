package domain

import "time"

// Status enumerates the four task lifecycle states.
type Status string

const (
	StatusOpen        Status = "Open"
	StatusInProgress  Status = "In Progress"
	StatusPendingInfo Status = "Pending Info"
	StatusCompleted   Status = "Completed"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPendingInfo, StatusCompleted:
		return true
	}
	return false
}

// Priority is a three-value ordinal rank. Rank is compared with Less,
// never inferred from the rendered label.
type Priority int

const (
	PriorityHigh Priority = iota + 1
	PriorityMedium
	PriorityLow
)

func (p Priority) Less(other Priority) bool {
	return p < other
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return "Medium"
}

// ParsePriority maps a label to its rank, defaulting to Medium.
func ParsePriority(label string) Priority {
	switch label {
	case "High":
		return PriorityHigh
	case "Low":
		return PriorityLow
	}
	return PriorityMedium
}

// DefaultList is the sentinel picklist value applied when project or
// coordinator fields are blank.
const DefaultList = "General"

// Task represents a single work item. Tasks are never hard-deleted;
// completed tasks are reinstated back to Open instead.
type Task struct {
	ID             string    `json:"id"`
	CreatedBy      string    `json:"created_by"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	Description    string    `json:"description"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	DueDate        time.Time `json:"due_date"`
	ProjectRef     string    `json:"project_ref"`
	Coordinator    string    `json:"coordinator"`
	StaffRemarks   string    `json:"staff_remarks,omitempty"`
	ManagerRemarks string    `json:"manager_remarks,omitempty"`
	EmailSubject   string    `json:"email_subject,omitempty"`
	Points         string    `json:"points,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Midnight truncates ts to the start of its calendar day.
func Midnight(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
