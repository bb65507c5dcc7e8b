package transport

// TaskCreateRequest carries a new task entry. Entry is the raw
// free-text form ("Ask Praveen to update the API"); the remaining
// fields are optional structured overrides.
type TaskCreateRequest struct {
	Entry        string `json:"entry"`
	Description  string `json:"description"`
	AssignedTo   string `json:"assigned_to"`
	Priority     string `json:"priority"`
	DueDate      string `json:"due_date"`
	ProjectRef   string `json:"project_ref"`
	Coordinator  string `json:"coordinator"`
	EmailSubject string `json:"email_subject"`
	Points       string `json:"points"`
}

// StatusRequest changes a task's lifecycle state. Remarks, when
// present, overwrite the staff remark in the same write.
type StatusRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks"`
}

// TaskEditRequest is a partial update; nil fields stay untouched.
type TaskEditRequest struct {
	Description    *string `json:"description"`
	AssignedTo     *string `json:"assigned_to"`
	Priority       *string `json:"priority"`
	DueDate        *string `json:"due_date"`
	ProjectRef     *string `json:"project_ref"`
	Coordinator    *string `json:"coordinator"`
	StaffRemarks   *string `json:"staff_remarks"`
	ManagerRemarks *string `json:"manager_remarks"`
	EmailSubject   *string `json:"email_subject"`
	Points         *string `json:"points"`
}

// UserRequest registers or updates a directory entry.
type UserRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Role      string `json:"role"`
}

// UserToggleRequest activates/deactivates a user or changes its role.
type UserToggleRequest struct {
	Active *bool   `json:"active"`
	Role   *string `json:"role"`
}

// SummaryRequest scopes the assistant summary for managers.
type SummaryRequest struct {
	Scope  string `json:"scope"`
	Bucket string `json:"bucket"`
}
