package model

// Role is the position of a user. It decides every permission in the system.
type Role string

// Role codes as constants
const (
	RoleSuperAdmin          Role = "superadmin"
	RoleLeader              Role = "leader"
	RoleAdmin               Role = "admin"
	RoleStaffHostLive       Role = "staff_host_live"
	RoleStaffContentCreator Role = "staff_content_creator"
	RoleViewer              Role = "viewer"
)

// AllRoles lists every known role in display order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleLeader,
	RoleAdmin,
	RoleStaffHostLive,
	RoleStaffContentCreator,
	RoleViewer,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff is true for the two field roles that file reports and attendance.
func (r Role) IsStaff() bool {
	return r == RoleStaffHostLive || r == RoleStaffContentCreator
}

// SeesAllGroups is true for roles whose listings are not scoped to their own group.
func (r Role) SeesAllGroups() bool {
	return r == RoleSuperAdmin || r == RoleLeader
}

// RoleInfo describes a role for the role catalogue endpoint
type RoleInfo struct {
	Code        Role   `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultRoles defines the roles in the system
var DefaultRoles = []RoleInfo{
	{Code: RoleSuperAdmin, Name: "Super Admin", Description: "Full access to finance, master data and audit trail"},
	{Code: RoleLeader, Name: "Leader", Description: "Manages groups, devices, accounts, commissions and KPI targets"},
	{Code: RoleAdmin, Name: "Admin", Description: "Bookkeeping and asset administration"},
	{Code: RoleStaffHostLive, Name: "Staff Host Live", Description: "Files daily live reports and attendance"},
	{Code: RoleStaffContentCreator, Name: "Staff Content Creator", Description: "Files daily reports and attendance"},
	{Code: RoleViewer, Name: "Viewer", Description: "Read-only access to dashboards and ledgers"},
}
