package service

import (
	"bytes"
	"errors"
	"testing"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestDeriveAmounts(t *testing.T) {
	tests := []struct {
		name       string
		gross      string
		net        *string
		liquid     *string
		wantNet    string
		wantLiquid string
	}{
		{"both derived", "5000000", nil, nil, "4500000", "4050000"},
		{"net given", "5000000", strp("4600000"), nil, "4600000", "4140000"},
		{"all given", "5000000", strp("4000000"), strp("3900000"), "4000000", "3900000"},
		{"zero gross", "0", nil, nil, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, net, liquid, err := deriveAmounts(dec(tt.gross), optDec(tt.net), optDec(tt.liquid))
			if err != nil {
				t.Fatalf("deriveAmounts: %v", err)
			}
			if !net.Equal(dec(tt.wantNet)) {
				t.Errorf("net = %s, want %s", net, tt.wantNet)
			}
			if !liquid.Equal(dec(tt.wantLiquid)) {
				t.Errorf("liquid = %s, want %s", liquid, tt.wantLiquid)
			}
		})
	}
}

func TestDeriveAmountsRejectsNegative(t *testing.T) {
	if _, _, _, err := deriveAmounts(dec("-1"), nil, nil); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative gross: err = %v", err)
	}
	if _, _, _, err := deriveAmounts(dec("100"), decPtr("-5"), nil); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative net: err = %v", err)
	}
}

func TestParseCommissionRows(t *testing.T) {
	header := []string{"account_username", "period_week", "period_month", "period_year", "gross_commission"}

	tests := []struct {
		name    string
		rows    [][]string
		wantErr error
	}{
		{"empty file", nil, ErrEmptyImport},
		{"header only", [][]string{header}, ErrEmptyImport},
		{"missing gross column", [][]string{{"account_username", "period_week", "period_month", "period_year"}}, ErrMissingColumn},
		{"bad week", [][]string{header, {"toko01", "M6", "5", "2024", "100"}}, ErrInvalidRow},
		{"bad month", [][]string{header, {"toko01", "M1", "13", "2024", "100"}}, ErrInvalidRow},
		{"bad amount", [][]string{header, {"toko01", "M1", "5", "2024", "abc"}}, ErrInvalidRow},
		{"negative amount", [][]string{header, {"toko01", "M1", "5", "2024", "-100"}}, ErrInvalidRow},
		{"empty username", [][]string{header, {"", "M1", "5", "2024", "100"}}, ErrInvalidRow},
		{"valid with blank line", [][]string{header, {"", "", "", "", ""}, {"toko01", "m2", "5", "2024", "100"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := parseCommissionRows(tt.rows)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (len(rows) != 1 || rows[0].week != model.WeekM2) {
				t.Fatalf("rows = %+v", rows)
			}
		})
	}
}

func newCommissionFixture() (*commissionService, *fakeCommissions, *int) {
	commissions := newFakeCommissions()
	accounts := newFakeAccounts(model.AffiliateAccount{Username: "toko01", AccountStatus: model.AccountActive})
	invalidated := 0
	svc := NewCommissionService(commissions, accounts, NewAuditService(&fakeAuditRepo{}), func() { invalidated++ })
	return svc.(*commissionService), commissions, &invalidated
}

func TestImportCSV(t *testing.T) {
	svc, commissions, invalidated := newCommissionFixture()
	csv := "\ufeffaccount_username,period_week,period_month,period_year,gross_commission,net_commission\n" +
		"toko01,M1,5,2024,5000000,\n" +
		"toko01,M2,5,2024,1000000,950000\n"

	n, err := svc.Import("komisi.csv", []byte(csv), Actor{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 || len(commissions.upserted) != 2 {
		t.Fatalf("imported %d rows, upserted %d", n, len(commissions.upserted))
	}
	first := commissions.upserted[0]
	if !first.NetCommission.Equal(dec("4500000")) || !first.LiquidCommission.Equal(dec("4050000")) {
		t.Errorf("derived amounts = %s / %s", first.NetCommission, first.LiquidCommission)
	}
	second := commissions.upserted[1]
	if !second.NetCommission.Equal(dec("950000")) || !second.LiquidCommission.Equal(dec("855000")) {
		t.Errorf("given net = %s / %s", second.NetCommission, second.LiquidCommission)
	}
	if *invalidated != 1 {
		t.Errorf("dashboard invalidated %d times", *invalidated)
	}
}

func TestImportXLSX(t *testing.T) {
	svc, commissions, _ := newCommissionFixture()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"account_username", "period_week", "period_month", "period_year", "gross_commission"})
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"toko01", "M3", 6, 2024, 2000000})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	n, err := svc.Import("komisi.xlsx", buf.Bytes(), Actor{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 || commissions.upserted[0].PeriodWeek != model.WeekM3 || commissions.upserted[0].PeriodMonth != 6 {
		t.Fatalf("upserted = %+v", commissions.upserted)
	}
}

func TestImportAbortsOnUnknownAccount(t *testing.T) {
	svc, commissions, invalidated := newCommissionFixture()
	csv := "account_username,period_week,period_month,period_year,gross_commission\n" +
		"toko01,M1,5,2024,100\n" +
		"hilang,M1,5,2024,100\n"

	_, err := svc.Import("komisi.csv", []byte(csv), Actor{ID: uuid.New()})
	if !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("err = %v, want ErrInvalidRow", err)
	}
	if len(commissions.upserted) != 0 || *invalidated != 0 {
		t.Fatal("nothing may be written when one row fails")
	}
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	svc, _, _ := newCommissionFixture()
	if _, err := svc.Import("komisi.pdf", []byte("x"), Actor{}); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateCommissionUnknownAccount(t *testing.T) {
	svc, _, _ := newCommissionFixture()
	_, err := svc.Create(&CommissionRequest{
		AccountID:       uuid.New(),
		PeriodWeek:      model.WeekM1,
		PeriodMonth:     5,
		PeriodYear:      2024,
		GrossCommission: dec("100"),
	}, Actor{ID: uuid.New()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func strp(s string) *string { return &s }

func optDec(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	return decPtr(*s)
}
