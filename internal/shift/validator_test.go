package shift

import (
	"errors"
	"testing"
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type reportKey struct {
	user   uuid.UUID
	device uuid.UUID
	date   string
	shift  int
}

type fakeReports struct {
	rows map[reportKey]*model.DailyReport
	err  error
}

func newFakeReports() *fakeReports {
	return &fakeReports{rows: map[reportKey]*model.DailyReport{}}
}

func (f *fakeReports) add(user, device uuid.UUID, date time.Time, shift int, closing *decimal.Decimal) {
	f.rows[reportKey{user, device, date.Format(model.DateLayout), shift}] = &model.DailyReport{
		UserID:         user,
		DeviceID:       device,
		ReportDate:     date,
		Shift:          shift,
		ClosingBalance: closing,
	}
}

func (f *fakeReports) FindShiftsByUserAndDate(userID uuid.UUID, date time.Time) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	var shifts []int
	for k := range f.rows {
		if k.user == userID && k.date == date.Format(model.DateLayout) {
			shifts = append(shifts, k.shift)
		}
	}
	return shifts, nil
}

func (f *fakeReports) FindShift(userID, deviceID uuid.UUID, date time.Time, shift int) (*model.DailyReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[reportKey{userID, deviceID, date.Format(model.DateLayout), shift}], nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestValidateShiftSequence(t *testing.T) {
	emp := uuid.New()
	dev := uuid.New()

	tests := []struct {
		name    string
		filed   []int
		shift   int
		wantErr error
	}{
		{"first shift of the day", nil, 1, nil},
		{"second after first", []int{1}, 2, nil},
		{"third after second", []int{1, 2}, 3, nil},
		{"second before first", nil, 2, ErrOutOfSequence},
		{"third without second", []int{1}, 3, ErrOutOfSequence},
		{"duplicate first", []int{1}, 1, ErrDuplicateShift},
		{"duplicate second", []int{1, 2}, 2, ErrDuplicateShift},
		{"zero", nil, 0, ErrInvalidShift},
		{"four", []int{1, 2, 3}, 4, ErrInvalidShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeReports()
			for _, s := range tt.filed {
				store.add(emp, dev, day, s, dec("1000"))
			}
			err := NewValidator(store).ValidateShiftSequence(emp, day, tt.shift)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateShiftSequenceIsPerEmployeeAndDate(t *testing.T) {
	store := newFakeReports()
	a, b, dev := uuid.New(), uuid.New(), uuid.New()
	store.add(a, dev, day, 1, dec("1000"))

	v := NewValidator(store)
	if err := v.ValidateShiftSequence(b, day, 1); err != nil {
		t.Fatalf("other employee blocked: %v", err)
	}
	if err := v.ValidateShiftSequence(a, day.AddDate(0, 0, 1), 1); err != nil {
		t.Fatalf("next day blocked: %v", err)
	}
}

func TestValidateShiftSequenceStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	store := newFakeReports()
	store.err = boom

	err := NewValidator(store).ValidateShiftSequence(uuid.New(), day, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
	for _, sentinel := range []error{ErrDuplicateShift, ErrOutOfSequence, ErrInvalidShift} {
		if errors.Is(err, sentinel) {
			t.Fatalf("store error reported as %v", sentinel)
		}
	}
}

func TestComputeOpeningBalance(t *testing.T) {
	emp := uuid.New()
	dev := uuid.New()
	otherDev := uuid.New()

	tests := []struct {
		name    string
		setup   func(*fakeReports)
		shift   int
		status  model.LiveStatus
		want    string
		wantErr error
	}{
		{
			name:   "carry forward from shift 1",
			setup:  func(f *fakeReports) { f.add(emp, dev, day, 1, dec("500000")) },
			shift:  2,
			status: model.LiveNormal,
			want:   "500000",
		},
		{
			name: "carry forward from shift 2",
			setup: func(f *fakeReports) {
				f.add(emp, dev, day, 1, dec("500000"))
				f.add(emp, dev, day, 2, dec("820000.50"))
			},
			shift:  3,
			status: model.LiveNormal,
			want:   "820000.50",
		},
		{
			name:   "stream down resets",
			setup:  func(f *fakeReports) { f.add(emp, dev, day, 1, dec("300000")) },
			shift:  2,
			status: model.LiveOffline,
			want:   "0",
		},
		{
			name:   "relive resets",
			setup:  func(f *fakeReports) { f.add(emp, dev, day, 1, dec("300000")) },
			shift:  2,
			status: model.LiveRelive,
			want:   "0",
		},
		{
			name:   "first shift starts at zero",
			setup:  func(*fakeReports) {},
			shift:  1,
			status: model.LiveNormal,
			want:   "0",
		},
		{
			name:    "missing previous shift",
			setup:   func(*fakeReports) {},
			shift:   2,
			status:  model.LiveNormal,
			wantErr: ErrPrecedingShiftMissing,
		},
		{
			name:    "previous shift on another device",
			setup:   func(f *fakeReports) { f.add(emp, otherDev, day, 1, dec("500000")) },
			shift:   2,
			status:  model.LiveNormal,
			wantErr: ErrPrecedingShiftMissing,
		},
		{
			name:    "previous shift not closed",
			setup:   func(f *fakeReports) { f.add(emp, dev, day, 1, nil) },
			shift:   2,
			status:  model.LiveNormal,
			wantErr: ErrPrecedingShiftMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeReports()
			tt.setup(store)

			got, err := NewValidator(store).ComputeOpeningBalance(emp, dev, day, tt.shift, tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("opening balance = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeOpeningBalanceStoreError(t *testing.T) {
	boom := errors.New("timeout")
	store := newFakeReports()
	store.err = boom

	_, err := NewValidator(store).ComputeOpeningBalance(uuid.New(), uuid.New(), day, 2, model.LiveNormal)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
	if errors.Is(err, ErrPrecedingShiftMissing) {
		t.Fatal("store error must not read as a missing shift")
	}
}
