package handler

import (
	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service    service.DashboardService
	reports    service.ReportService
	profitLoss service.ProfitLossService
}

func NewDashboardHandler(s service.DashboardService, reports service.ReportService, profitLoss service.ProfitLossService) *DashboardHandler {
	return &DashboardHandler{service: s, reports: reports, profitLoss: profitLoss}
}

// GetDashboardStats returns the KPI and info cards of the current month
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

// GetTeamPerformance returns monthly omzet per group and employee
// GET /api/v1/team-performance?month=&year=&group_id=
func (h *DashboardHandler) GetTeamPerformance(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	perf, err := h.reports.TeamPerformance(month, year, groupID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": perf})
}

// GetProfitLoss returns the monthly income statement
// GET /api/v1/profit-loss?month=&year=&group_id=
func (h *DashboardHandler) GetProfitLoss(c *fiber.Ctx) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	pl, err := h.profitLoss.ProfitLoss(month, year, groupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": pl})
}

// ExportProfitLoss renders the income statement as PDF
// GET /api/v1/profit-loss/pdf?month=&year=&group_id=
func (h *DashboardHandler) ExportProfitLoss(c *fiber.Ctx) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	doc, err := h.profitLoss.ProfitLossPDF(month, year, groupID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laba-rugi.pdf"`)
	return c.Send(doc)
}
