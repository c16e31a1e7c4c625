package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"go-affiliate-ops/internal/service"
	"go-affiliate-ops/internal/shift"

	"github.com/gofiber/fiber/v2"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: shift 1 on 2024-05-01", shift.ErrDuplicateShift), 409},
		{service.ErrReportLocked, 409},
		{fmt.Errorf("%w: submit shift 1 before shift 2", shift.ErrOutOfSequence), 400},
		{shift.ErrPrecedingShiftMissing, 400},
		{fmt.Errorf("%w: username", service.ErrValidation), 400},
		{fmt.Errorf("%w 3: bad week", service.ErrInvalidRow), 400},
		{service.ErrSessionTimeout, 401},
		{service.ErrSessionReplaced, 401},
		{service.ErrNotReportOwner, 403},
		{fmt.Errorf("%w: KPI progress of another group", service.ErrForbidden), 403},
		{fmt.Errorf("%w: device", service.ErrNotFound), 404},
		{errors.New("connection refused"), 500},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: password authentication failed"))
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return respondError(c, service.ErrUsernameExists)
	})

	tests := []struct {
		path       string
		wantStatus int
		wantError  string
	}{
		{"/boom", 500, "Internal server error"},
		{"/conflict", 409, service.ErrUsernameExists.Error()},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus || body["error"] != tt.wantError {
			t.Errorf("%s: %d %q, want %d %q", tt.path, resp.StatusCode, body["error"], tt.wantStatus, tt.wantError)
		}
	}
}

func TestMonthYear(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		month, year, ok := monthYear(c)
		if !ok {
			return c.SendStatus(400)
		}
		return c.JSON(fiber.Map{"month": month, "year": year})
	})

	tests := []struct {
		query      string
		wantStatus int
	}{
		{"", 200},
		{"?month=5&year=2024", 200},
		{"?month=mei", 400},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus {
			t.Errorf("%q: status %d, want %d", tt.query, resp.StatusCode, tt.wantStatus)
		}
	}
}
