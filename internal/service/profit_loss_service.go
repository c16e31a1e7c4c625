package service

import (
	"bytes"
	"fmt"

	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ProfitLoss is the monthly income statement
type ProfitLoss struct {
	Month   int        `json:"month"`
	Year    int        `json:"year"`
	GroupID *uuid.UUID `json:"group_id,omitempty"`

	CashIncome       decimal.Decimal `json:"cash_income"`
	LiquidCommission decimal.Decimal `json:"liquid_commission"`
	TotalIncome      decimal.Decimal `json:"total_income"`

	FixCost      decimal.Decimal `json:"fix_cost"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	TotalExpense decimal.Decimal `json:"total_expense"`

	NetProfit decimal.Decimal `json:"net_profit"`
}

type ProfitLossService interface {
	ProfitLoss(month, year int, groupID *uuid.UUID) (*ProfitLoss, error)
	ProfitLossPDF(month, year int, groupID *uuid.UUID) ([]byte, error)
}

type profitLossService struct {
	cashflowRepo   repository.CashflowRepository
	commissionRepo repository.CommissionRepository
}

func NewProfitLossService(cashflowRepo repository.CashflowRepository, commissionRepo repository.CommissionRepository) ProfitLossService {
	return &profitLossService{cashflowRepo: cashflowRepo, commissionRepo: commissionRepo}
}

func (s *profitLossService) ProfitLoss(month, year int, groupID *uuid.UUID) (*ProfitLoss, error) {
	month, year, period, err := monthPeriod(month, year, timeNow())
	if err != nil {
		return nil, err
	}

	scope := repository.AllGroups
	if groupID != nil {
		scope = repository.OnlyGroup(groupID)
	}
	cash, err := s.cashflowRepo.Totals(repository.CashflowFilter{Period: period, Scope: scope})
	if err != nil {
		return nil, err
	}
	commissions, err := s.commissionRepo.Totals(repository.CommissionFilter{Month: month, Year: year, GroupID: groupID})
	if err != nil {
		return nil, err
	}

	pl := &ProfitLoss{
		Month:            month,
		Year:             year,
		GroupID:          groupID,
		CashIncome:       cash.Income,
		LiquidCommission: commissions.Liquid,
		TotalIncome:      cash.Income.Add(commissions.Liquid),
		FixCost:          cash.FixCost,
		VariableCost:     cash.VariableCost,
		TotalExpense:     cash.Expense,
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	return pl, nil
}

func (s *profitLossService) ProfitLossPDF(month, year int, groupID *uuid.UUID) ([]byte, error) {
	pl, err := s.ProfitLoss(month, year, groupID)
	if err != nil {
		return nil, err
	}
	return renderProfitLossPDF(pl)
}

func renderProfitLossPDF(pl *ProfitLoss) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Laporan Laba Rugi")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Periode: %02d/%d", pl.Month, pl.Year))
	pdf.Ln(12)

	line := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(120, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, "Rp "+amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	line("Pendapatan Cashflow", pl.CashIncome, false)
	line("Komisi Cair", pl.LiquidCommission, false)
	line("Total Pendapatan", pl.TotalIncome, true)
	pdf.Ln(4)
	line("Biaya Tetap (Fix Cost)", pl.FixCost, false)
	line("Biaya Variabel (Variable Cost)", pl.VariableCost, false)
	line("Total Pengeluaran", pl.TotalExpense, true)
	pdf.Ln(4)
	line("Laba Bersih", pl.NetProfit, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
