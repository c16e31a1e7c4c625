package model

// Page identifies a screen (and its API surface) in the permission matrix.
type Page string

const (
	PageDashboard         Page = "dashboard"
	PageTeamPerformance   Page = "performa_tim"
	PageDailyReport       Page = "laporan_harian"
	PageAttendance        Page = "absensi"
	PageCommission        Page = "data_komisi"
	PageCashflow          Page = "cashflow"
	PageAssets            Page = "assets"
	PageDebtReceivables   Page = "debt_receivables"
	PageSOPDocuments      Page = "sop_documents"
	PageProfitLoss        Page = "laba_rugi"
	PageEmployeeDirectory Page = "direktori_karyawan"
	PageDeviceInventory   Page = "inventaris_device"
	PageAccountList       Page = "daftar_akun"
	PageManageGroup       Page = "manage_group"
	PageKPITargets        Page = "kpi_targets"
	PageSettings          Page = "pengaturan"
	PageAuditTrail        Page = "audit_trail"
)

// Action is one of the CRUD verbs a role may hold on a page.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AllActions in canonical order
var AllActions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// PermissionCode renders "page:action", the form used in error messages and token claims.
func PermissionCode(page Page, action Action) string {
	return string(page) + ":" + string(action)
}
