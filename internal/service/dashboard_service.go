package service

import (
	"context"
	"log"
	"time"

	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/pkg/cache"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	// Invalidate drops the cached stats after a finance mutation
	Invalidate()
}

// KPIValue is a current-month figure next to the previous month
type KPIValue struct {
	Value            decimal.Decimal `json:"value"`
	PreviousValue    decimal.Decimal `json:"previous_value"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	Trend            Trend           `json:"trend"`
}

type KPICards struct {
	TotalGrossCommission  KPIValue `json:"total_gross_commission"`
	TotalNetCommission    KPIValue `json:"total_net_commission"`
	TotalLiquidCommission KPIValue `json:"total_liquid_commission"`
	TotalExpenses         KPIValue `json:"total_expenses"`
}

type InfoCards struct {
	TotalEmployees int64 `json:"total_employees"`
	TotalGroups    int64 `json:"total_groups"`
}

type DashboardStats struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	KPICards   KPICards        `json:"kpi_cards"`
	InfoCards  InfoCards       `json:"info_cards"`
	TotalOmzet decimal.Decimal `json:"total_omzet"`
}

type dashboardService struct {
	commissionRepo repository.CommissionRepository
	cashflowRepo   repository.CashflowRepository
	reportRepo     repository.ReportRepository
	userRepo       repository.UserRepository
	groupRepo      repository.GroupRepository
	cache          cache.Cache
}

func NewDashboardService(
	commissionRepo repository.CommissionRepository,
	cashflowRepo repository.CashflowRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	c cache.Cache,
) DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &dashboardService{
		commissionRepo: commissionRepo,
		cashflowRepo:   cashflowRepo,
		reportRepo:     reportRepo,
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		cache:          c,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if found, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err != nil {
		log.Printf("WARNING: read dashboard cache: %v", err)
	} else if found {
		return &cached, nil
	}

	stats, err := s.compute()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		log.Printf("WARNING: write dashboard cache: %v", err)
	}
	return stats, nil
}

func (s *dashboardService) Invalidate() {
	if err := s.cache.Delete(context.Background(), dashboardCacheKey); err != nil {
		log.Printf("WARNING: invalidate dashboard cache: %v", err)
	}
}

func (s *dashboardService) compute() (*DashboardStats, error) {
	now := timeNow().In(jakartaLoc)
	month, year := int(now.Month()), now.Year()
	prevMonth, prevYear := month-1, year
	if prevMonth == 0 {
		prevMonth, prevYear = 12, year-1
	}
	period := repository.MonthPeriod(year, month)
	prevPeriod := repository.MonthPeriod(prevYear, prevMonth)

	// 1. Komisi bulan ini vs bulan lalu
	current, err := s.commissionRepo.Totals(repository.CommissionFilter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}
	previous, err := s.commissionRepo.Totals(repository.CommissionFilter{Month: prevMonth, Year: prevYear})
	if err != nil {
		return nil, err
	}

	// 2. Pengeluaran
	expenses, err := s.cashflowRepo.Totals(repository.CashflowFilter{Period: period})
	if err != nil {
		return nil, err
	}
	prevExpenses, err := s.cashflowRepo.Totals(repository.CashflowFilter{Period: prevPeriod})
	if err != nil {
		return nil, err
	}

	// 3. Info cards
	employees, err := s.userRepo.CountActive()
	if err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.Count()
	if err != nil {
		return nil, err
	}

	// 4. Omzet bulan ini
	reports, err := s.reportRepo.FindByPeriod(period, repository.AllGroups)
	if err != nil {
		return nil, err
	}
	omzet := decimal.Zero
	for i := range reports {
		omzet = omzet.Add(reports[i].Omzet())
	}

	return &DashboardStats{
		Month: month,
		Year:  year,
		KPICards: KPICards{
			TotalGrossCommission:  compare(current.Gross, previous.Gross),
			TotalNetCommission:    compare(current.Net, previous.Net),
			TotalLiquidCommission: compare(current.Liquid, previous.Liquid),
			TotalExpenses:         compare(expenses.Expense, prevExpenses.Expense),
		},
		InfoCards:  InfoCards{TotalEmployees: employees, TotalGroups: groups},
		TotalOmzet: omzet,
	}, nil
}

// compare reports the change against the previous value. Growth from zero counts as 100%.
func compare(value, previous decimal.Decimal) KPIValue {
	kv := KPIValue{Value: value, PreviousValue: previous, Trend: TrendStable, PercentageChange: decimal.Zero}
	if previous.IsZero() {
		if value.IsPositive() {
			kv.PercentageChange = decimal.NewFromInt(100)
			kv.Trend = TrendUp
		}
		return kv
	}
	change := value.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	kv.PercentageChange = change
	switch {
	case change.IsPositive():
		kv.Trend = TrendUp
	case change.IsNegative():
		kv.Trend = TrendDown
	}
	return kv
}
