// Package shift enforces the per-day shift sequence of daily reports and
// carries balances from one shift to the next.
package shift

import (
	"errors"
	"fmt"
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidShift          = errors.New("shift must be 1, 2 or 3")
	ErrDuplicateShift        = errors.New("shift already reported for this date")
	ErrOutOfSequence         = errors.New("shift reported out of sequence")
	ErrPrecedingShiftMissing = errors.New("closing balance of previous shift not found")
)

// ReportReader is the read side of the daily report store the validator needs.
type ReportReader interface {
	// FindShiftsByUserAndDate returns the shift numbers already filed by the user on date.
	FindShiftsByUserAndDate(userID uuid.UUID, date time.Time) ([]int, error)
	// FindShift returns (nil, nil) when no report exists.
	FindShift(userID, deviceID uuid.UUID, date time.Time, shift int) (*model.DailyReport, error)
}

// Validator has no state of its own; every decision is taken from the store.
type Validator struct {
	reports ReportReader
}

func NewValidator(reports ReportReader) *Validator {
	return &Validator{reports: reports}
}

// ValidateShiftSequence checks that requestedShift may be filed next by the employee on date.
func (v *Validator) ValidateShiftSequence(employeeID uuid.UUID, date time.Time, requestedShift int) error {
	if requestedShift < model.FirstShift || requestedShift > model.LastShift {
		return fmt.Errorf("%w: got %d", ErrInvalidShift, requestedShift)
	}

	existing, err := v.reports.FindShiftsByUserAndDate(employeeID, date)
	if err != nil {
		return fmt.Errorf("load shifts: %w", err)
	}

	filed := make(map[int]bool, len(existing))
	for _, s := range existing {
		filed[s] = true
	}

	if filed[requestedShift] {
		return fmt.Errorf("%w: shift %d on %s", ErrDuplicateShift, requestedShift, date.Format(model.DateLayout))
	}
	if requestedShift > model.FirstShift && !filed[requestedShift-1] {
		return fmt.Errorf("%w: submit shift %d before shift %d", ErrOutOfSequence, requestedShift-1, requestedShift)
	}
	return nil
}

// ComputeOpeningBalance returns the balance a new report starts from.
// A broken stream (mati / relive) and shift 1 start at zero; any other shift
// starts from the closing balance of the previous shift on the same device.
func (v *Validator) ComputeOpeningBalance(employeeID, deviceID uuid.UUID, date time.Time, requestedShift int, status model.LiveStatus) (decimal.Decimal, error) {
	if status.ResetsBalance() {
		return decimal.Zero, nil
	}
	if requestedShift < model.FirstShift || requestedShift > model.LastShift {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidShift, requestedShift)
	}
	if requestedShift == model.FirstShift {
		return decimal.Zero, nil
	}

	prev, err := v.reports.FindShift(employeeID, deviceID, date, requestedShift-1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load previous shift: %w", err)
	}
	if prev == nil || prev.ClosingBalance == nil {
		return decimal.Zero, fmt.Errorf("%w: shift %d on %s", ErrPrecedingShiftMissing, requestedShift-1, date.Format(model.DateLayout))
	}
	return *prev.ClosingBalance, nil
}
