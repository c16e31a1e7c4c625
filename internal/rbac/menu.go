package rbac

import "go-affiliate-ops/internal/model"

// MenuItem is a sidebar entry, visible when the role holds Action on Page
type MenuItem struct {
	Title  string       `json:"title"`
	Path   string       `json:"path"`
	Page   model.Page   `json:"page"`
	Action model.Action `json:"action"`
}

// DefaultMenu is the sidebar of the dashboard
var DefaultMenu = []MenuItem{
	{Title: "Dashboard", Path: "/dashboard", Page: model.PageDashboard, Action: model.ActionRead},
	{Title: "Performa Tim", Path: "/performa-tim", Page: model.PageTeamPerformance, Action: model.ActionRead},
	{Title: "Laporan Harian", Path: "/laporan-harian", Page: model.PageDailyReport, Action: model.ActionCreate},
	{Title: "Absensi", Path: "/absensi", Page: model.PageAttendance, Action: model.ActionCreate},
	{Title: "Data Komisi", Path: "/data-komisi", Page: model.PageCommission, Action: model.ActionRead},
	{Title: "Cashflow", Path: "/cashflow", Page: model.PageCashflow, Action: model.ActionRead},
	{Title: "Aset", Path: "/assets", Page: model.PageAssets, Action: model.ActionRead},
	{Title: "Hutang & Piutang", Path: "/debt-receivables", Page: model.PageDebtReceivables, Action: model.ActionRead},
	{Title: "SOP", Path: "/sop-documents", Page: model.PageSOPDocuments, Action: model.ActionRead},
	{Title: "Laba Rugi", Path: "/laba-rugi", Page: model.PageProfitLoss, Action: model.ActionRead},
	{Title: "Direktori Karyawan", Path: "/direktori-karyawan", Page: model.PageEmployeeDirectory, Action: model.ActionRead},
	{Title: "Inventaris Device", Path: "/inventaris-device", Page: model.PageDeviceInventory, Action: model.ActionRead},
	{Title: "Daftar Akun", Path: "/daftar-akun", Page: model.PageAccountList, Action: model.ActionRead},
	{Title: "Manage Group", Path: "/manage-group", Page: model.PageManageGroup, Action: model.ActionRead},
	{Title: "Target KPI", Path: "/kpi-targets", Page: model.PageKPITargets, Action: model.ActionRead},
	{Title: "Audit Trail", Path: "/audit-trail", Page: model.PageAuditTrail, Action: model.ActionRead},
}

// VisibleMenu filters menu down to the items role may open.
func (e *Evaluator) VisibleMenu(role model.Role, menu []MenuItem) []MenuItem {
	visible := []MenuItem{}
	for _, item := range menu {
		if e.Can(role, item.Page, item.Action) {
			visible = append(visible, item)
		}
	}
	return visible
}
