package handler

import (
	"errors"
	"log"
	"strconv"

	"go-affiliate-ops/internal/middleware"
	"go-affiliate-ops/internal/service"
	"go-affiliate-ops/internal/shift"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusOf maps service errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, shift.ErrDuplicateShift),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrAlreadyCheckedOut),
		errors.Is(err, service.ErrReportLocked):
		return 409

	case errors.Is(err, shift.ErrOutOfSequence),
		errors.Is(err, shift.ErrPrecedingShiftMissing),
		errors.Is(err, shift.ErrInvalidShift),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrAccountNotActive),
		errors.Is(err, service.ErrNotCheckedIn),
		errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, service.ErrMissingColumn),
		errors.Is(err, service.ErrInvalidRow),
		errors.Is(err, service.ErrEmptyImport),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrDeleteSelf):
		return 400

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionTimeout),
		errors.Is(err, service.ErrSessionReplaced):
		return 401

	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotReportOwner):
		return 403

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return 404
	}
	return 500
}

// respondError writes {"error": ...}; unexpected errors are logged and hidden
func respondError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == 500 {
		log.Printf("ERROR: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func actorOf(c *fiber.Ctx) (service.Actor, bool) {
	return middleware.ActorFrom(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// queryUUID returns nil for an absent parameter; ok is false when it is malformed
func queryUUID(c *fiber.Ctx, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// monthYear reads ?month=&year=; zero means "current month" to the services
func monthYear(c *fiber.Ctx) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month", "0"))
	if err != nil {
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year", "0"))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

func invalidID(c *fiber.Ctx, what string) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid " + what + " ID"})
}
