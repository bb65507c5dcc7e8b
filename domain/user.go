package domain

import "time"

// Role distinguishes members, who see their own tasks, from managers,
// who oversee everyone's.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User represents a directory entry keyed by email. Users are
// activated and deactivated, never deleted.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name,omitempty"`
	Role      Role      `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == UserActive
}

func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// RosterEntry is one short-name token the command parser matches
// against, paired with the email it resolves to. Roster order matters:
// the parser takes the first entry whose name occurs in the text.
type RosterEntry struct {
	ShortName string
	Email     string
}
