package rbac

import (
	"fmt"

	"go-affiliate-ops/internal/model"
)

// Matrix maps a page to the actions each role holds on it.
type Matrix map[model.Page]map[model.Role][]model.Action

var (
	crud     = []model.Action{model.ActionCreate, model.ActionRead, model.ActionUpdate, model.ActionDelete}
	cru      = []model.Action{model.ActionCreate, model.ActionRead, model.ActionUpdate}
	cr       = []model.Action{model.ActionCreate, model.ActionRead}
	ru       = []model.Action{model.ActionRead, model.ActionUpdate}
	readOnly = []model.Action{model.ActionRead}
	none     = []model.Action{}
)

// DefaultMatrix returns the access-control table of the dashboard.
// The maps are fresh on every call; the action slices are shared and must not be modified.
func DefaultMatrix() Matrix {
	return Matrix{
		model.PageDashboard: {
			model.RoleSuperAdmin:          readOnly,
			model.RoleLeader:              readOnly,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageTeamPerformance: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageDailyReport: {
			model.RoleSuperAdmin:          none,
			model.RoleLeader:              none,
			model.RoleAdmin:               none,
			model.RoleStaffHostLive:       cru,
			model.RoleStaffContentCreator: cru,
			model.RoleViewer:              none,
		},
		model.PageAttendance: {
			model.RoleSuperAdmin:          none,
			model.RoleLeader:              none,
			model.RoleAdmin:               none,
			model.RoleStaffHostLive:       cr,
			model.RoleStaffContentCreator: cr,
			model.RoleViewer:              none,
		},
		model.PageCommission: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageCashflow: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              cr,
			model.RoleAdmin:               cr,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageAssets: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              readOnly,
			model.RoleAdmin:               crud,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageDebtReceivables: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              cr,
			model.RoleAdmin:               cr,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageSOPDocuments: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              readOnly,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       readOnly,
			model.RoleStaffContentCreator: readOnly,
			model.RoleViewer:              readOnly,
		},
		model.PageProfitLoss: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              readOnly,
			model.RoleAdmin:               cr,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageEmployeeDirectory: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              cru,
			model.RoleAdmin:               none,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageDeviceInventory: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageAccountList: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageManageGroup: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageKPITargets: {
			model.RoleSuperAdmin:          crud,
			model.RoleLeader:              crud,
			model.RoleAdmin:               readOnly,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              readOnly,
		},
		model.PageSettings: {
			model.RoleSuperAdmin:          ru,
			model.RoleLeader:              ru,
			model.RoleAdmin:               ru,
			model.RoleStaffHostLive:       ru,
			model.RoleStaffContentCreator: ru,
			model.RoleViewer:              ru,
		},
		model.PageAuditTrail: {
			model.RoleSuperAdmin:          readOnly,
			model.RoleLeader:              none,
			model.RoleAdmin:               none,
			model.RoleStaffHostLive:       none,
			model.RoleStaffContentCreator: none,
			model.RoleViewer:              none,
		},
	}
}

// Validate checks that every page carries an entry for every known role
// and that only known actions appear.
func Validate(m Matrix) error {
	for page, roles := range m {
		for _, role := range model.AllRoles {
			if _, ok := roles[role]; !ok {
				return fmt.Errorf("page %q has no entry for role %q", page, role)
			}
		}
		for role, actions := range roles {
			if !role.Valid() {
				return fmt.Errorf("page %q has unknown role %q", page, role)
			}
			for _, a := range actions {
				if !knownAction(a) {
					return fmt.Errorf("page %q role %q has unknown action %q", page, role, a)
				}
			}
		}
	}
	return nil
}

func knownAction(a model.Action) bool {
	for _, known := range model.AllActions {
		if a == known {
			return true
		}
	}
	return false
}
