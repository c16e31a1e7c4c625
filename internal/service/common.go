package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asia/Jakarta timezone
var jakartaLoc *time.Location

func init() {
	var err error
	jakartaLoc, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback to UTC+7 if timezone data not available
		jakartaLoc = time.FixedZone("WIB", 7*60*60)
	}
}

// timeNow is swapped in tests
var timeNow = time.Now

// SetLocation overrides the business timezone (APP_TIMEZONE)
func SetLocation(loc *time.Location) {
	if loc != nil {
		jakartaLoc = loc
	}
}

// Location returns the business timezone
func Location() *time.Location {
	return jakartaLoc
}

// Error definitions shared by every service
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("already exists")
	ErrForbidden      = errors.New("not allowed")
	ErrInvalidDate    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidPeriod  = errors.New("invalid period, month must be 1-12")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Actor is the authenticated user on whose behalf a service call runs
type Actor struct {
	ID       uuid.UUID
	Username string
	Name     string
	Role     model.Role
	GroupID  *uuid.UUID
}

// Scope is the group restriction applied to the actor's listings.
func (a Actor) Scope() repository.GroupScope {
	if a.Role.SeesAllGroups() {
		return repository.AllGroups
	}
	return repository.OnlyGroup(a.GroupID)
}

// Notifier delivers WebSocket messages; implemented by ws.Hub
type Notifier interface {
	Broadcast(message []byte)
	SendToUsers(userIDs []string, message []byte)
}

func broadcast(n Notifier, payload interface{}) {
	if n == nil {
		return
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("WARNING: marshal notification: %v", err)
		return
	}
	n.Broadcast(msg)
}

func sendTo(n Notifier, userIDs []string, payload interface{}) {
	if n == nil || len(userIDs) == 0 {
		return
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("WARNING: marshal notification: %v", err)
		return
	}
	n.SendToUsers(userIDs, msg)
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, validator.Summary(errs))
	}
	return nil
}

// storeErr turns a record-not-found into ErrNotFound and a unique violation
// into ErrConflict; anything else is returned unchanged.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrConflict, what)
	default:
		return err
	}
}

// parseDate parses YYYY-MM-DD as a calendar date in the business timezone
func parseDate(s string) (time.Time, error) {
	parsed, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(s), jakartaLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return parsed, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateOf truncates t to its calendar date in the business timezone
func dateOf(t time.Time) time.Time {
	local := t.In(jakartaLoc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, jakartaLoc)
}

// monthPeriod validates month/year and falls back to the current month when both are zero
func monthPeriod(month, year int, now time.Time) (int, int, repository.Period, error) {
	if month == 0 && year == 0 {
		local := now.In(jakartaLoc)
		month, year = int(local.Month()), local.Year()
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return 0, 0, repository.Period{}, fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, month, year)
	}
	return month, year, repository.MonthPeriod(year, month), nil
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than 0", ErrValidation, field)
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, field)
	}
	return nil
}

// percent is actual/target*100 rounded to 2 decimals; a zero target gives 0
func percent(actual, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return actual.Div(target).Mul(decimal.NewFromInt(100)).Round(2)
}
