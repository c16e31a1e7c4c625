package main

import (
	"go-affiliate-ops/internal/handler"
	"go-affiliate-ops/internal/middleware"
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"
	"go-affiliate-ops/internal/ws"

	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	auth       *handler.AuthHandler
	role       *handler.RoleHandler
	user       *handler.UserHandler
	dashboard  *handler.DashboardHandler
	report     *handler.ReportHandler
	attendance *handler.AttendanceHandler
	finance    *handler.FinanceHandler
	master     *handler.MasterDataHandler
}

type routeDeps struct {
	sessions       middleware.SessionValidator
	evaluator      *rbac.Evaluator
	hub            *ws.Hub
	loginRateLimit string
}

func registerRoutes(app *fiber.App, h handlers, deps routeDeps) error {
	loginLimit, err := middleware.RateLimit(deps.loginRateLimit)
	if err != nil {
		return err
	}

	// can is shorthand for a page:action gate
	can := func(page model.Page, action model.Action) fiber.Handler {
		return middleware.RequirePermission(deps.evaluator, page, action)
	}
	const (
		create = model.ActionCreate
		read   = model.ActionRead
		update = model.ActionUpdate
		del    = model.ActionDelete
	)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", loginLimit, h.auth.Login)
	auth.Post("/validate-token", h.auth.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(deps.sessions), h.auth.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(deps.sessions))

	// Session & navigation
	protected.Get("/me", can(model.PageSettings, read), h.auth.Me)
	protected.Put("/me/password", can(model.PageSettings, update), h.auth.ChangePassword)
	protected.Get("/menu", h.role.GetMenu)
	protected.Get("/permissions", h.role.GetPermissions)
	protected.Get("/roles", h.role.GetRoles)

	// Dashboard & reporting
	protected.Get("/dashboard/stats", can(model.PageDashboard, read), h.dashboard.GetDashboardStats)
	protected.Get("/team-performance", can(model.PageTeamPerformance, read), h.dashboard.GetTeamPerformance)
	protected.Get("/profit-loss", can(model.PageProfitLoss, read), h.dashboard.GetProfitLoss)
	protected.Get("/profit-loss/pdf", can(model.PageProfitLoss, read), h.dashboard.ExportProfitLoss)

	// Daily reports
	protected.Get("/reports", can(model.PageDailyReport, read), h.report.GetMyReports)
	protected.Get("/reports/opening-balance", can(model.PageDailyReport, create), h.report.GetOpeningBalance)
	protected.Get("/reports/devices", can(model.PageDailyReport, create), h.master.GetMyDevices)
	protected.Get("/reports/accounts", can(model.PageDailyReport, create), h.master.GetMyAccounts)
	protected.Get("/reports/:id", can(model.PageDailyReport, read), h.report.GetReport)
	protected.Post("/reports", can(model.PageDailyReport, create), h.report.SubmitReport)
	protected.Put("/reports/:id", can(model.PageDailyReport, update), h.report.UpdateReport)

	// Attendance
	protected.Get("/attendance", can(model.PageAttendance, read), h.attendance.GetHistory)
	protected.Get("/attendance/today", can(model.PageAttendance, read), h.attendance.GetToday)
	protected.Post("/attendance/check-in", can(model.PageAttendance, create), h.attendance.CheckIn)
	protected.Post("/attendance/check-out", can(model.PageAttendance, create), h.attendance.CheckOut)

	// Commissions
	protected.Get("/commissions", can(model.PageCommission, read), h.finance.GetCommissions)
	protected.Get("/commissions/summary", can(model.PageCommission, read), h.finance.GetCommissionSummary)
	protected.Post("/commissions", can(model.PageCommission, create), h.finance.CreateCommission)
	protected.Post("/commissions/import", can(model.PageCommission, create), h.finance.ImportCommissions)
	protected.Put("/commissions/:id", can(model.PageCommission, update), h.finance.UpdateCommission)
	protected.Delete("/commissions/:id", can(model.PageCommission, del), h.finance.DeleteCommission)

	// Cashflow
	protected.Get("/cashflow", can(model.PageCashflow, read), h.finance.GetCashflow)
	protected.Get("/cashflow/summary", can(model.PageCashflow, read), h.finance.GetCashflowSummary)
	protected.Get("/cashflow/:id", can(model.PageCashflow, read), h.finance.GetCashflowEntry)
	protected.Post("/cashflow", can(model.PageCashflow, create), h.finance.CreateCashflow)
	protected.Put("/cashflow/:id", can(model.PageCashflow, update), h.finance.UpdateCashflow)
	protected.Delete("/cashflow/:id", can(model.PageCashflow, del), h.finance.DeleteCashflow)

	// Assets
	protected.Get("/assets", can(model.PageAssets, read), h.finance.GetAssets)
	protected.Get("/assets/summary", can(model.PageAssets, read), h.finance.GetAssetSummary)
	protected.Post("/assets", can(model.PageAssets, create), h.finance.CreateAsset)
	protected.Put("/assets/:id", can(model.PageAssets, update), h.finance.UpdateAsset)
	protected.Delete("/assets/:id", can(model.PageAssets, del), h.finance.DeleteAsset)

	// Debts & receivables
	protected.Get("/debts", can(model.PageDebtReceivables, read), h.finance.GetDebts)
	protected.Get("/debts/summary", can(model.PageDebtReceivables, read), h.finance.GetDebtSummary)
	protected.Post("/debts", can(model.PageDebtReceivables, create), h.finance.CreateDebt)
	protected.Put("/debts/:id", can(model.PageDebtReceivables, update), h.finance.UpdateDebt)
	protected.Delete("/debts/:id", can(model.PageDebtReceivables, del), h.finance.DeleteDebt)

	// Employees
	protected.Get("/users", can(model.PageEmployeeDirectory, read), h.user.GetUsers)
	protected.Get("/users/:id", can(model.PageEmployeeDirectory, read), h.user.GetUser)
	protected.Post("/users", can(model.PageEmployeeDirectory, create), h.user.CreateUser)
	protected.Put("/users/:id", can(model.PageEmployeeDirectory, update), h.user.UpdateUser)
	protected.Delete("/users/:id", can(model.PageEmployeeDirectory, del), h.user.DeleteUser)

	// Devices
	protected.Get("/devices", can(model.PageDeviceInventory, read), h.master.GetDevices)
	protected.Get("/devices/:id", can(model.PageDeviceInventory, read), h.master.GetDevice)
	protected.Post("/devices", can(model.PageDeviceInventory, create), h.master.CreateDevice)
	protected.Put("/devices/:id", can(model.PageDeviceInventory, update), h.master.UpdateDevice)
	protected.Delete("/devices/:id", can(model.PageDeviceInventory, del), h.master.DeleteDevice)

	// Affiliate accounts
	protected.Get("/accounts", can(model.PageAccountList, read), h.master.GetAccounts)
	protected.Get("/accounts/:id", can(model.PageAccountList, read), h.master.GetAccount)
	protected.Post("/accounts", can(model.PageAccountList, create), h.master.CreateAccount)
	protected.Put("/accounts/:id", can(model.PageAccountList, update), h.master.UpdateAccount)
	protected.Delete("/accounts/:id", can(model.PageAccountList, del), h.master.DeleteAccount)

	// Groups
	protected.Get("/groups", can(model.PageManageGroup, read), h.master.GetGroups)
	protected.Post("/groups", can(model.PageManageGroup, create), h.master.CreateGroup)
	protected.Put("/groups/:id", can(model.PageManageGroup, update), h.master.UpdateGroup)
	protected.Delete("/groups/:id", can(model.PageManageGroup, del), h.master.DeleteGroup)

	// SOP documents
	protected.Get("/sop-documents", can(model.PageSOPDocuments, read), h.master.GetSOPs)
	protected.Post("/sop-documents", can(model.PageSOPDocuments, create), h.master.CreateSOP)
	protected.Put("/sop-documents/:id", can(model.PageSOPDocuments, update), h.master.UpdateSOP)
	protected.Delete("/sop-documents/:id", can(model.PageSOPDocuments, del), h.master.DeleteSOP)

	// KPI targets
	protected.Get("/kpi-targets", can(model.PageKPITargets, read), h.master.GetKPITargets)
	protected.Get("/kpi-targets/progress", can(model.PageKPITargets, read), h.master.GetKPIProgress)
	protected.Post("/kpi-targets", can(model.PageKPITargets, create), h.master.CreateKPITarget)
	protected.Put("/kpi-targets/:id", can(model.PageKPITargets, update), h.master.UpdateKPITarget)
	protected.Delete("/kpi-targets/:id", can(model.PageKPITargets, del), h.master.DeleteKPITarget)

	// Audit trail
	protected.Get("/audit-trail", can(model.PageAuditTrail, read), h.master.GetAuditTrail)

	// WebSocket Route
	app.Use("/ws", handler.WebSocketAuth(deps.sessions))
	app.Get("/ws", handler.WebSocket(deps.hub))

	return nil
}
