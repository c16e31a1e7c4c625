package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type, upload .csv or .xlsx")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidRow      = errors.New("invalid row")
	ErrEmptyImport     = errors.New("file has no data rows")
)

// Columns of the commission import file; net and liquid are optional
var commissionImportColumns = []string{
	"account_username", "period_week", "period_month", "period_year", "gross_commission",
}

type CommissionService interface {
	Create(req *CommissionRequest, actor Actor) (*model.Commission, error)
	Update(id uuid.UUID, req *CommissionRequest, actor Actor) (*model.Commission, error)
	Delete(id uuid.UUID, actor Actor) error
	Get(id uuid.UUID) (*model.Commission, error)
	List(filter repository.CommissionFilter) ([]model.Commission, error)
	Import(filename string, data []byte, actor Actor) (int, error)
	Summary(month, year int) (*repository.CommissionTotals, error)
}

type CommissionRequest struct {
	AccountID        uuid.UUID        `json:"account_id" validate:"uuid_required"`
	PeriodWeek       model.PeriodWeek `json:"period_week" validate:"required,oneof=M1 M2 M3 M4 M5"`
	PeriodMonth      int              `json:"period_month" validate:"required,min=1,max=12"`
	PeriodYear       int              `json:"period_year" validate:"required,min=2000,max=2100"`
	GrossCommission  decimal.Decimal  `json:"gross_commission"`
	NetCommission    *decimal.Decimal `json:"net_commission"`
	LiquidCommission *decimal.Decimal `json:"liquid_commission"`
}

type commissionService struct {
	commissionRepo repository.CommissionRepository
	accountRepo    repository.AccountRepository
	audit          AuditService
	invalidate     func() // drops cached dashboard stats
}

func NewCommissionService(commissionRepo repository.CommissionRepository, accountRepo repository.AccountRepository, audit AuditService, invalidate func()) CommissionService {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &commissionService{
		commissionRepo: commissionRepo,
		accountRepo:    accountRepo,
		audit:          audit,
		invalidate:     invalidate,
	}
}

// deriveAmounts fills net and liquid from gross when they were not given
func deriveAmounts(gross decimal.Decimal, net, liquid *decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	if err := requireNonNegative("gross_commission", gross); err != nil {
		return gross, gross, gross, err
	}
	n := model.DeriveNet(gross)
	if net != nil {
		n = *net
	}
	l := model.DeriveLiquid(n)
	if liquid != nil {
		l = *liquid
	}
	if err := requireNonNegative("net_commission", n); err != nil {
		return gross, n, l, err
	}
	if err := requireNonNegative("liquid_commission", l); err != nil {
		return gross, n, l, err
	}
	return gross, n, l, nil
}

func (s *commissionService) Create(req *CommissionRequest, actor Actor) (*model.Commission, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	gross, net, liquid, err := deriveAmounts(req.GrossCommission, req.NetCommission, req.LiquidCommission)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindByID(req.AccountID); err != nil {
		return nil, storeErr(err, "affiliate account")
	}

	c := &model.Commission{
		AccountID:        req.AccountID,
		PeriodWeek:       req.PeriodWeek,
		PeriodMonth:      req.PeriodMonth,
		PeriodYear:       req.PeriodYear,
		GrossCommission:  gross,
		NetCommission:    net,
		LiquidCommission: liquid,
	}
	c.CreatedBy = actor.ID.String()
	c.UpdatedBy = actor.ID.String()

	if err := s.commissionRepo.Create(c); err != nil {
		return nil, storeErr(err, "commission for this account and period")
	}
	s.audit.Record(actor, model.AuditCreate, "commissions", c.ID, nil, c)
	s.invalidate()
	return c, nil
}

func (s *commissionService) Update(id uuid.UUID, req *CommissionRequest, actor Actor) (*model.Commission, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	c, err := s.commissionRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "commission")
	}
	gross, net, liquid, err := deriveAmounts(req.GrossCommission, req.NetCommission, req.LiquidCommission)
	if err != nil {
		return nil, err
	}
	before := *c

	c.AccountID = req.AccountID
	c.PeriodWeek = req.PeriodWeek
	c.PeriodMonth = req.PeriodMonth
	c.PeriodYear = req.PeriodYear
	c.GrossCommission = gross
	c.NetCommission = net
	c.LiquidCommission = liquid
	c.UpdatedBy = actor.ID.String()

	if err := s.commissionRepo.Update(c); err != nil {
		return nil, storeErr(err, "commission for this account and period")
	}
	s.audit.Record(actor, model.AuditUpdate, "commissions", c.ID, before, c)
	s.invalidate()
	return c, nil
}

func (s *commissionService) Delete(id uuid.UUID, actor Actor) error {
	c, err := s.commissionRepo.FindByID(id)
	if err != nil {
		return storeErr(err, "commission")
	}
	if err := s.commissionRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "commission")
	}
	s.audit.Record(actor, model.AuditDelete, "commissions", id, c, nil)
	s.invalidate()
	return nil
}

func (s *commissionService) Get(id uuid.UUID) (*model.Commission, error) {
	c, err := s.commissionRepo.FindByID(id)
	return c, storeErr(err, "commission")
}

func (s *commissionService) List(filter repository.CommissionFilter) ([]model.Commission, error) {
	return s.commissionRepo.FindAll(filter)
}

func (s *commissionService) Summary(month, year int) (*repository.CommissionTotals, error) {
	month, year, _, err := monthPeriod(month, year, timeNow())
	if err != nil {
		return nil, err
	}
	return s.commissionRepo.Totals(repository.CommissionFilter{Month: month, Year: year})
}

// Import reads a .csv or .xlsx file and upserts every row on
// (account, week, month, year). Any invalid row aborts the whole import.
func (s *commissionService) Import(filename string, data []byte, actor Actor) (int, error) {
	rows, err := readSpreadsheet(filename, data)
	if err != nil {
		return 0, err
	}
	parsed, err := parseCommissionRows(rows)
	if err != nil {
		return 0, err
	}

	commissions := make([]model.Commission, 0, len(parsed))
	accounts := map[string]uuid.UUID{}
	for _, p := range parsed {
		accountID, ok := accounts[p.username]
		if !ok {
			account, err := s.accountRepo.FindByUsername(p.username)
			if err != nil {
				return 0, fmt.Errorf("%w %d: account %q: %v", ErrInvalidRow, p.line, p.username, storeErr(err, "affiliate account"))
			}
			accountID = account.ID
			accounts[p.username] = accountID
		}
		c := model.Commission{
			AccountID:        accountID,
			PeriodWeek:       p.week,
			PeriodMonth:      p.month,
			PeriodYear:       p.year,
			GrossCommission:  p.gross,
			NetCommission:    p.net,
			LiquidCommission: p.liquid,
		}
		c.CreatedBy = actor.ID.String()
		c.UpdatedBy = actor.ID.String()
		commissions = append(commissions, c)
	}

	if err := s.commissionRepo.UpsertMany(commissions); err != nil {
		return 0, err
	}
	s.audit.Record(actor, model.AuditCreate, "commissions", uuid.Nil, nil, map[string]interface{}{
		"import_file": filename,
		"rows":        len(commissions),
	})
	s.invalidate()
	return len(commissions), nil
}

// readSpreadsheet returns all rows of a CSV file or of the first sheet of a workbook
func readSpreadsheet(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		var rows [][]string
		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			rows = append(rows, record)
		}
		return rows, nil

	case ".xlsx":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("%w: no worksheet found", ErrValidation)
		}
		return file.GetRows(sheetName)

	default:
		return nil, ErrUnsupportedFile
	}
}

type commissionRow struct {
	line     int
	username string
	week     model.PeriodWeek
	month    int
	year     int
	gross    decimal.Decimal
	net      decimal.Decimal
	liquid   decimal.Decimal
}

func parseCommissionRows(rows [][]string) ([]commissionRow, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	// 1. Map header names to column indexes
	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range commissionImportColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// 2. Parse data rows; blank lines are skipped
	var out []commissionRow
	for n, row := range rows[1:] {
		line := n + 2
		if strings.Join(row, "") == "" {
			continue
		}
		p := commissionRow{line: line, username: cell(row, "account_username")}
		if p.username == "" {
			return nil, fmt.Errorf("%w %d: account_username is empty", ErrInvalidRow, line)
		}

		p.week = model.PeriodWeek(strings.ToUpper(cell(row, "period_week")))
		switch p.week {
		case model.WeekM1, model.WeekM2, model.WeekM3, model.WeekM4, model.WeekM5:
		default:
			return nil, fmt.Errorf("%w %d: period_week must be M1-M5", ErrInvalidRow, line)
		}

		var err error
		if p.month, err = strconv.Atoi(cell(row, "period_month")); err != nil || p.month < 1 || p.month > 12 {
			return nil, fmt.Errorf("%w %d: period_month must be 1-12", ErrInvalidRow, line)
		}
		if p.year, err = strconv.Atoi(cell(row, "period_year")); err != nil || p.year < 2000 || p.year > 2100 {
			return nil, fmt.Errorf("%w %d: invalid period_year", ErrInvalidRow, line)
		}

		gross, err := decimal.NewFromString(cell(row, "gross_commission"))
		if err != nil {
			return nil, fmt.Errorf("%w %d: invalid gross_commission", ErrInvalidRow, line)
		}
		net, err := optionalDecimal(cell(row, "net_commission"))
		if err != nil {
			return nil, fmt.Errorf("%w %d: invalid net_commission", ErrInvalidRow, line)
		}
		liquid, err := optionalDecimal(cell(row, "liquid_commission"))
		if err != nil {
			return nil, fmt.Errorf("%w %d: invalid liquid_commission", ErrInvalidRow, line)
		}
		if p.gross, p.net, p.liquid, err = deriveAmounts(gross, net, liquid); err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrInvalidRow, line, err)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrEmptyImport
	}
	return out, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
