package handler

import (
	"strconv"
	"time"

	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CheckIn records today's arrival
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	att, err := h.attendanceService.CheckIn(actor, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Checked in", "data": att})
}

// CheckOut records today's departure
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	att, err := h.attendanceService.CheckOut(actor, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checked out", "data": att})
}

// GetToday returns today's attendance of the logged-in employee
// GET /api/v1/attendance/today
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	att, err := h.attendanceService.Today(actor, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": att})
}

// GetHistory lists past attendance, newest first
// GET /api/v1/attendance?limit=
func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	history, err := h.attendanceService.History(actor, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": history, "total": len(history)})
}
