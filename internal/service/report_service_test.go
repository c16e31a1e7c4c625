package service

import (
	"errors"
	"testing"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/shift"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type reportFixture struct {
	svc      ReportService
	reports  *fakeReports
	actor    Actor
	deviceID uuid.UUID
	accounts *fakeAccounts
}

func newReportFixture() *reportFixture {
	group := uuid.New()
	devices := newFakeDevices(model.Device{DeviceCode: "HP-01", GroupID: &group})
	var deviceID uuid.UUID
	for id := range devices.rows {
		deviceID = id
	}
	reports := &fakeReports{}
	accounts := newFakeAccounts()
	svc := NewReportService(reports, devices, accounts, newFakeUsers(), &fakeGroups{}, NewAuditService(&fakeAuditRepo{}), nil)

	return &reportFixture{
		svc:      svc,
		reports:  reports,
		actor:    Actor{ID: uuid.New(), Name: "Host Satu", Role: model.RoleStaffHostLive, GroupID: &group},
		deviceID: deviceID,
		accounts: accounts,
	}
}

func (f *reportFixture) submit(shiftNo int, status model.LiveStatus, closing *decimal.Decimal) (*model.DailyReport, error) {
	return f.svc.SubmitReport(&SubmitReportRequest{
		ReportDate:      "2024-05-01",
		Shift:           shiftNo,
		DeviceID:        f.deviceID,
		ProductCategory: model.CategoryFashion,
		LiveStatus:      status,
		ClosingBalance:  closing,
	}, f.actor)
}

func TestSubmitReportCarriesBalance(t *testing.T) {
	f := newReportFixture()

	first, err := f.submit(1, model.LiveNormal, decPtr("150000"))
	if err != nil {
		t.Fatalf("shift 1: %v", err)
	}
	if !first.OpeningBalance.IsZero() || !first.Omzet().Equal(dec("150000")) {
		t.Fatalf("shift 1 opening = %s, omzet = %s", first.OpeningBalance, first.Omzet())
	}
	if first.GroupID == nil || *first.GroupID != *f.actor.GroupID {
		t.Fatal("report must carry the employee's group")
	}

	second, err := f.submit(2, model.LiveNormal, decPtr("400000"))
	if err != nil {
		t.Fatalf("shift 2: %v", err)
	}
	if !second.OpeningBalance.Equal(dec("150000")) || !second.Omzet().Equal(dec("250000")) {
		t.Fatalf("shift 2 opening = %s, omzet = %s", second.OpeningBalance, second.Omzet())
	}

	// stream restarted: shift 3 starts from zero
	third, err := f.submit(3, model.LiveRelive, decPtr("50000"))
	if err != nil {
		t.Fatalf("shift 3: %v", err)
	}
	if !third.OpeningBalance.IsZero() {
		t.Fatalf("relive opening = %s", third.OpeningBalance)
	}
}

func TestSubmitReportSequence(t *testing.T) {
	f := newReportFixture()

	if _, err := f.submit(2, model.LiveNormal, nil); !errors.Is(err, shift.ErrOutOfSequence) {
		t.Fatalf("shift 2 first: err = %v", err)
	}
	if _, err := f.submit(1, model.LiveNormal, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := f.submit(1, model.LiveNormal, nil); !errors.Is(err, shift.ErrDuplicateShift) {
		t.Fatalf("duplicate: err = %v", err)
	}
	if _, err := f.submit(3, model.LiveNormal, nil); !errors.Is(err, shift.ErrOutOfSequence) {
		t.Fatalf("skip shift 2: err = %v", err)
	}
	// shift 1 was never closed
	if _, err := f.submit(2, model.LiveNormal, nil); !errors.Is(err, shift.ErrPrecedingShiftMissing) {
		t.Fatalf("unclosed previous shift: err = %v", err)
	}
	if len(f.reports.rows) != 1 {
		t.Fatalf("stored %d reports, want 1", len(f.reports.rows))
	}
}

func TestSubmitReportValidation(t *testing.T) {
	f := newReportFixture()

	tests := []struct {
		name    string
		mutate  func(r *SubmitReportRequest)
		wantErr error
	}{
		{"bad shift", func(r *SubmitReportRequest) { r.Shift = 4 }, ErrValidation},
		{"bad date", func(r *SubmitReportRequest) { r.ReportDate = "01-05-2024" }, ErrInvalidDate},
		{"bad status", func(r *SubmitReportRequest) { r.LiveStatus = "putus" }, ErrValidation},
		{"negative closing", func(r *SubmitReportRequest) { r.ClosingBalance = decPtr("-1") }, ErrNegativeAmount},
		{"unknown device", func(r *SubmitReportRequest) { r.DeviceID = uuid.New() }, ErrNotFound},
		{"unknown account", func(r *SubmitReportRequest) { id := uuid.New(); r.AccountID = &id }, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SubmitReportRequest{
				ReportDate:      "2024-05-01",
				Shift:           1,
				DeviceID:        f.deviceID,
				ProductCategory: model.CategoryFood,
				LiveStatus:      model.LiveNormal,
			}
			tt.mutate(req)
			if _, err := f.svc.SubmitReport(req, f.actor); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitReportBannedAccount(t *testing.T) {
	f := newReportFixture()
	banned := model.AffiliateAccount{Username: "toko-banned", AccountStatus: model.AccountTempBanned}
	banned.ID = uuid.New()
	f.accounts.rows[banned.ID] = &banned

	_, err := f.svc.SubmitReport(&SubmitReportRequest{
		ReportDate:      "2024-05-01",
		Shift:           1,
		DeviceID:        f.deviceID,
		AccountID:       &banned.ID,
		ProductCategory: model.CategoryFood,
		LiveStatus:      model.LiveNormal,
	}, f.actor)
	if !errors.Is(err, ErrAccountNotActive) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateReportLock(t *testing.T) {
	f := newReportFixture()
	first, err := f.submit(1, model.LiveNormal, decPtr("100"))
	if err != nil {
		t.Fatal(err)
	}

	// next shift not filed yet: closing may still change
	updated, err := f.svc.UpdateReport(first.ID, &UpdateReportRequest{ClosingBalance: decPtr("120")}, f.actor)
	if err != nil {
		t.Fatalf("update before shift 2: %v", err)
	}
	if !updated.ClosingBalance.Equal(dec("120")) {
		t.Fatalf("closing = %s", updated.ClosingBalance)
	}

	second, err := f.submit(2, model.LiveNormal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !second.OpeningBalance.Equal(dec("120")) {
		t.Fatalf("shift 2 opening = %s", second.OpeningBalance)
	}

	if _, err := f.svc.UpdateReport(first.ID, &UpdateReportRequest{ClosingBalance: decPtr("999")}, f.actor); !errors.Is(err, ErrReportLocked) {
		t.Fatalf("update after shift 2: err = %v", err)
	}
	// same value is not a change
	if _, err := f.svc.UpdateReport(first.ID, &UpdateReportRequest{ClosingBalance: decPtr("120")}, f.actor); err != nil {
		t.Fatalf("unchanged closing: %v", err)
	}
	// the open shift can still be closed
	if _, err := f.svc.UpdateReport(second.ID, &UpdateReportRequest{ClosingBalance: decPtr("300")}, f.actor); err != nil {
		t.Fatalf("close shift 2: %v", err)
	}
}

func TestUpdateReportOwnership(t *testing.T) {
	f := newReportFixture()
	first, err := f.submit(1, model.LiveNormal, decPtr("100"))
	if err != nil {
		t.Fatal(err)
	}

	other := Actor{ID: uuid.New(), Role: model.RoleStaffHostLive, GroupID: f.actor.GroupID}
	if _, err := f.svc.UpdateReport(first.ID, &UpdateReportRequest{ClosingBalance: decPtr("1")}, other); !errors.Is(err, ErrNotReportOwner) {
		t.Fatalf("update: err = %v", err)
	}
	if _, err := f.svc.GetReport(first.ID, other); !errors.Is(err, ErrNotReportOwner) {
		t.Fatalf("get: err = %v", err)
	}
}

func TestUpdateReportLiveStatusRecomputesOpening(t *testing.T) {
	f := newReportFixture()
	if _, err := f.submit(1, model.LiveNormal, decPtr("100")); err != nil {
		t.Fatal(err)
	}
	second, err := f.submit(2, model.LiveNormal, nil)
	if err != nil {
		t.Fatal(err)
	}

	offline := model.LiveOffline
	updated, err := f.svc.UpdateReport(second.ID, &UpdateReportRequest{LiveStatus: &offline}, f.actor)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.OpeningBalance.IsZero() {
		t.Fatalf("opening after mati = %s", updated.OpeningBalance)
	}
}

func TestAggregatePerformance(t *testing.T) {
	groupA, groupB := uuid.New(), uuid.New()
	ani, budi, citra := uuid.New(), uuid.New(), uuid.New()

	report := func(user uuid.UUID, group *uuid.UUID, opening, closing string) model.DailyReport {
		return model.DailyReport{UserID: user, GroupID: group, OpeningBalance: dec(opening), ClosingBalance: decPtr(closing)}
	}
	reports := []model.DailyReport{
		report(ani, &groupA, "0", "100"),
		report(ani, &groupA, "100", "250"),
		report(budi, &groupA, "0", "300"),
		report(citra, &groupB, "0", "50"),
		report(citra, nil, "0", "10"),
		{UserID: budi, GroupID: &groupA, OpeningBalance: dec("300")}, // open shift, no omzet yet
	}
	names := map[uuid.UUID]string{groupA: "Alpha", groupB: "Beta"}

	perf := aggregatePerformance(5, 2024, reports, names)

	if !perf.Total.Equal(dec("610")) {
		t.Fatalf("total = %s", perf.Total)
	}
	if len(perf.Groups) != 3 {
		t.Fatalf("groups = %d", len(perf.Groups))
	}
	alpha := perf.Groups[0]
	if alpha.GroupName != "Alpha" || !alpha.Omzet.Equal(dec("550")) || alpha.ReportCount != 4 {
		t.Fatalf("first group = %+v", alpha)
	}
	if alpha.Employees[0].UserID != budi || !alpha.Employees[0].Omzet.Equal(dec("300")) {
		t.Fatalf("top employee = %+v", alpha.Employees[0])
	}
	if perf.Groups[1].GroupName != "Beta" || perf.Groups[2].GroupName != "Tanpa Group" {
		t.Fatalf("group order = %s, %s", perf.Groups[1].GroupName, perf.Groups[2].GroupName)
	}
}
