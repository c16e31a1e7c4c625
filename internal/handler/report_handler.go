package handler

import (
	"strconv"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SubmitReport files one shift of the logged-in employee
// POST /api/v1/reports
func (h *ReportHandler) SubmitReport(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	report, err := h.reportService.SubmitReport(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Report submitted successfully",
		"data":    report.ToResponse(),
	})
}

// UpdateReport changes category, account, live status or closing balance
// PUT /api/v1/reports/:id
func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "report")
	}

	var req service.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	report, err := h.reportService.UpdateReport(reportID, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Report updated successfully",
		"data":    report.ToResponse(),
	})
}

// GetMyReports lists the reports of the logged-in employee, newest first
// GET /api/v1/reports?limit=
func (h *ReportHandler) GetMyReports(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	reports, err := h.reportService.ListMyReports(actor, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": reports, "total": len(reports)})
}

// GetReport returns one report of the logged-in employee
// GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "report")
	}

	report, err := h.reportService.GetReport(reportID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": report})
}

// GetOpeningBalance previews the balance a new shift would start from
// GET /api/v1/reports/opening-balance?device_id=&date=&shift=&live_status=
func (h *ReportHandler) GetOpeningBalance(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	deviceID, err := uuid.Parse(c.Query("device_id"))
	if err != nil {
		return invalidID(c, "device")
	}
	shiftNo, err := strconv.Atoi(c.Query("shift"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "shift must be 1, 2 or 3"})
	}
	status := model.LiveStatus(c.Query("live_status", string(model.LiveNormal)))
	date := c.Query("date")

	opening, err := h.reportService.PreviewOpeningBalance(actor, deviceID, date, shiftNo, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"opening_balance": opening,
		"date":            date,
		"shift":           shiftNo,
		"live_status":     status,
	})
}
