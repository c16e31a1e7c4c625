package service

import (
	"errors"
	"testing"
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
)

func TestCheckInLateness(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		minute   int
		wantLate bool
	}{
		{"early", 7, 30, false},
		{"one minute before nine", 8, 59, false},
		{"exactly nine", 9, 0, true},
		{"afternoon", 13, 15, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAttendanceService(&fakeAttendance{}, NewAuditService(&fakeAuditRepo{}))
			now := time.Date(2024, 5, 1, tt.hour, tt.minute, 0, 0, jakartaLoc)

			resp, err := svc.CheckIn(Actor{ID: uuid.New()}, now)
			if err != nil {
				t.Fatalf("CheckIn: %v", err)
			}
			if resp.Late != tt.wantLate {
				t.Errorf("late = %v, want %v", resp.Late, tt.wantLate)
			}
			if resp.Status != model.AttendanceWorking {
				t.Errorf("status = %s", resp.Status)
			}
			if resp.AttendanceDate != "2024-05-01" {
				t.Errorf("date = %s", resp.AttendanceDate)
			}
		})
	}
}

func TestCheckInTwice(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendance{}, NewAuditService(&fakeAuditRepo{}))
	actor := Actor{ID: uuid.New()}
	morning := time.Date(2024, 5, 1, 8, 0, 0, 0, jakartaLoc)

	if _, err := svc.CheckIn(actor, morning); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckIn(actor, morning.Add(time.Hour)); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in: err = %v", err)
	}
	// besok boleh lagi
	if _, err := svc.CheckIn(actor, morning.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("next day: %v", err)
	}
}

func TestCheckOut(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendance{}, NewAuditService(&fakeAuditRepo{}))
	actor := Actor{ID: uuid.New()}
	in := time.Date(2024, 5, 1, 8, 0, 0, 0, jakartaLoc)

	if _, err := svc.CheckOut(actor, in); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("check-out without check-in: err = %v", err)
	}
	if _, err := svc.CheckIn(actor, in); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.CheckOut(actor, in.Add(8*time.Hour+30*time.Minute))
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if resp.Status != model.AttendanceDone || resp.Duration != "8j 30m" {
		t.Errorf("status = %s, duration = %s", resp.Status, resp.Duration)
	}

	if _, err := svc.CheckOut(actor, in.Add(9*time.Hour)); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("second check-out: err = %v", err)
	}
}

func TestTodayWithoutCheckIn(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendance{}, NewAuditService(&fakeAuditRepo{}))

	resp, err := svc.Today(Actor{ID: uuid.New()}, time.Date(2024, 5, 1, 10, 0, 0, 0, jakartaLoc))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != model.AttendanceAbsent || resp.Late || resp.Duration != "-" {
		t.Fatalf("resp = %+v", resp)
	}
}
