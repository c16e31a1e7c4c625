package service

import (
	"bytes"
	"errors"
	"testing"

	"go-affiliate-ops/internal/repository"
)

func newProfitLossFixture() ProfitLossService {
	cashflow := newFakeCashflow()
	cashflow.totals["2024-05-01"] = repository.CashflowTotals{
		Income:       dec("1000"),
		Expense:      dec("300"),
		FixCost:      dec("100"),
		VariableCost: dec("200"),
	}
	commissions := newFakeCommissions()
	commissions.totals[periodKey(5, 2024)] = repository.CommissionTotals{Gross: dec("700"), Net: dec("600"), Liquid: dec("500")}
	return NewProfitLossService(cashflow, commissions)
}

func TestProfitLoss(t *testing.T) {
	pl, err := newProfitLossFixture().ProfitLoss(5, 2024, nil)
	if err != nil {
		t.Fatalf("ProfitLoss: %v", err)
	}
	if !pl.TotalIncome.Equal(dec("1500")) {
		t.Errorf("total income = %s", pl.TotalIncome)
	}
	if !pl.TotalExpense.Equal(pl.FixCost.Add(pl.VariableCost)) {
		t.Errorf("expense %s != fix %s + variable %s", pl.TotalExpense, pl.FixCost, pl.VariableCost)
	}
	if !pl.NetProfit.Equal(dec("1200")) {
		t.Errorf("net profit = %s", pl.NetProfit)
	}
}

func TestProfitLossEmptyMonthIsZero(t *testing.T) {
	pl, err := newProfitLossFixture().ProfitLoss(1, 2023, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !pl.TotalIncome.IsZero() || !pl.NetProfit.IsZero() {
		t.Fatalf("pl = %+v", pl)
	}
}

func TestProfitLossInvalidPeriod(t *testing.T) {
	if _, err := newProfitLossFixture().ProfitLoss(13, 2024, nil); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v", err)
	}
}

func TestProfitLossPDF(t *testing.T) {
	data, err := newProfitLossFixture().ProfitLossPDF(5, 2024, nil)
	if err != nil {
		t.Fatalf("ProfitLossPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a PDF (%d bytes)", len(data))
	}
}
