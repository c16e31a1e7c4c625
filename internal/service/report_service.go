package service

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/internal/shift"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultReportLimit = 50

var (
	ErrReportLocked     = errors.New("closing balance is locked: the next shift has already been filed")
	ErrNotReportOwner   = errors.New("you can only access your own reports")
	ErrAccountNotActive = errors.New("affiliate account is not active")
)

type ReportService interface {
	SubmitReport(req *SubmitReportRequest, actor Actor) (*model.DailyReport, error)
	PreviewOpeningBalance(actor Actor, deviceID uuid.UUID, date string, shiftNo int, status model.LiveStatus) (decimal.Decimal, error)
	UpdateReport(id uuid.UUID, req *UpdateReportRequest, actor Actor) (*model.DailyReport, error)
	ListMyReports(actor Actor, limit int) ([]model.DailyReportResponse, error)
	GetReport(id uuid.UUID, actor Actor) (*model.DailyReportResponse, error)
	TeamPerformance(month, year int, groupID *uuid.UUID, actor Actor) (*TeamPerformance, error)
}

type SubmitReportRequest struct {
	ReportDate      string                `json:"report_date" validate:"required"` // YYYY-MM-DD
	Shift           int                   `json:"shift" validate:"shift"`
	DeviceID        uuid.UUID             `json:"device_id" validate:"uuid_required"`
	AccountID       *uuid.UUID            `json:"account_id"`
	ProductCategory model.ProductCategory `json:"product_category" validate:"required,oneof=fashion elektronik kecantikan food hobi otomotif lainnya"`
	LiveStatus      model.LiveStatus      `json:"live_status" validate:"live_status"`
	// Optional: a shift may be filed at its start and closed later
	ClosingBalance *decimal.Decimal `json:"closing_balance"`
}

type UpdateReportRequest struct {
	ProductCategory *model.ProductCategory `json:"product_category" validate:"omitempty,oneof=fashion elektronik kecantikan food hobi otomotif lainnya"`
	LiveStatus      *model.LiveStatus      `json:"live_status" validate:"omitempty,live_status"`
	AccountID       *uuid.UUID             `json:"account_id"`
	ClosingBalance  *decimal.Decimal       `json:"closing_balance"`
}

// TeamPerformance is the monthly omzet of each group and its members
type TeamPerformance struct {
	Month  int                `json:"month"`
	Year   int                `json:"year"`
	Total  decimal.Decimal    `json:"total_omzet"`
	Groups []GroupPerformance `json:"groups"`
}

type GroupPerformance struct {
	GroupID     *uuid.UUID            `json:"group_id"`
	GroupName   string                `json:"group_name"`
	Omzet       decimal.Decimal       `json:"omzet"`
	ReportCount int                   `json:"report_count"`
	Employees   []EmployeePerformance `json:"employees"`
}

type EmployeePerformance struct {
	UserID      uuid.UUID       `json:"user_id"`
	FullName    string          `json:"full_name"`
	Omzet       decimal.Decimal `json:"omzet"`
	ReportCount int             `json:"report_count"`
}

type reportService struct {
	reportRepo  repository.ReportRepository
	deviceRepo  repository.DeviceRepository
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	shifts      *shift.Validator
	audit       AuditService
	notifier    Notifier
}

func NewReportService(
	reportRepo repository.ReportRepository,
	deviceRepo repository.DeviceRepository,
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	audit AuditService,
	notifier Notifier,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		deviceRepo:  deviceRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		shifts:      shift.NewValidator(reportRepo),
		audit:       audit,
		notifier:    notifier,
	}
}

func (s *reportService) SubmitReport(req *SubmitReportRequest, actor Actor) (*model.DailyReport, error) {
	// 1. Validate request
	if err := validate(req); err != nil {
		return nil, err
	}
	reportDate, err := parseDate(req.ReportDate)
	if err != nil {
		return nil, err
	}
	if req.ClosingBalance != nil {
		if err := requireNonNegative("closing_balance", *req.ClosingBalance); err != nil {
			return nil, err
		}
	}

	// 2. Device must exist and belong to the actor's group
	if err := s.checkDevice(req.DeviceID, actor); err != nil {
		return nil, err
	}

	// 3. Optional account must exist and be active
	if err := s.checkAccount(req.AccountID); err != nil {
		return nil, err
	}

	// 4. Shift ordering
	if err := s.shifts.ValidateShiftSequence(actor.ID, reportDate, req.Shift); err != nil {
		return nil, err
	}

	// 5. Opening balance is always computed, never taken from the client
	opening, err := s.shifts.ComputeOpeningBalance(actor.ID, req.DeviceID, reportDate, req.Shift, req.LiveStatus)
	if err != nil {
		return nil, err
	}

	report := &model.DailyReport{
		ReportDate:      reportDate,
		Shift:           req.Shift,
		UserID:          actor.ID,
		GroupID:         actor.GroupID,
		DeviceID:        req.DeviceID,
		AccountID:       req.AccountID,
		ProductCategory: req.ProductCategory,
		LiveStatus:      req.LiveStatus,
		OpeningBalance:  opening,
		ClosingBalance:  req.ClosingBalance,
	}
	report.CreatedBy = actor.ID.String()
	report.UpdatedBy = actor.ID.String()

	// 6. Save; the unique index settles concurrent submissions of the same shift
	if err := s.reportRepo.Create(report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: shift %d on %s", shift.ErrDuplicateShift, req.Shift, req.ReportDate)
		}
		return nil, err
	}

	s.audit.Record(actor, model.AuditCreate, report.TableName(), report.ID, nil, report)

	saved, err := s.reportRepo.FindByID(report.ID)
	if err != nil {
		saved = report
	}

	// 7. Notify the employee and the leaders of the group
	go s.notifyReportCreated(saved, actor)

	return saved, nil
}

func (s *reportService) checkDevice(deviceID uuid.UUID, actor Actor) error {
	device, err := s.deviceRepo.FindByID(deviceID)
	if err != nil {
		return storeErr(err, "device")
	}
	if actor.GroupID != nil && device.GroupID != nil && *device.GroupID != *actor.GroupID {
		return fmt.Errorf("%w: device %s belongs to another group", ErrValidation, device.DeviceCode)
	}
	return nil
}

func (s *reportService) checkAccount(accountID *uuid.UUID) error {
	if accountID == nil {
		return nil
	}
	account, err := s.accountRepo.FindByID(*accountID)
	if err != nil {
		return storeErr(err, "affiliate account")
	}
	if account.AccountStatus != model.AccountActive {
		return fmt.Errorf("%w: %s is %s", ErrAccountNotActive, account.Username, account.AccountStatus)
	}
	return nil
}

func (s *reportService) PreviewOpeningBalance(actor Actor, deviceID uuid.UUID, date string, shiftNo int, status model.LiveStatus) (decimal.Decimal, error) {
	reportDate, err := parseDate(date)
	if err != nil {
		return decimal.Zero, err
	}
	return s.shifts.ComputeOpeningBalance(actor.ID, deviceID, reportDate, shiftNo, status)
}

func (s *reportService) UpdateReport(id uuid.UUID, req *UpdateReportRequest, actor Actor) (*model.DailyReport, error) {
	// 1. Validate request
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Find existing report; only the owner may change it
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "daily report")
	}
	if report.UserID != actor.ID {
		return nil, ErrNotReportOwner
	}
	before := *report

	// 3. Apply changes (date, shift and device stay fixed)
	if req.ProductCategory != nil {
		report.ProductCategory = *req.ProductCategory
	}
	if req.AccountID != nil {
		if err := s.checkAccount(req.AccountID); err != nil {
			return nil, err
		}
		report.AccountID = req.AccountID
	}
	if req.LiveStatus != nil && *req.LiveStatus != report.LiveStatus {
		opening, err := s.shifts.ComputeOpeningBalance(report.UserID, report.DeviceID, report.ReportDate, report.Shift, *req.LiveStatus)
		if err != nil {
			return nil, err
		}
		report.LiveStatus = *req.LiveStatus
		report.OpeningBalance = opening
	}
	if req.ClosingBalance != nil {
		if err := requireNonNegative("closing_balance", *req.ClosingBalance); err != nil {
			return nil, err
		}
		changed := report.ClosingBalance == nil || !report.ClosingBalance.Equal(*req.ClosingBalance)
		if changed && report.Shift < model.LastShift {
			// 4. The next shift already carried this balance forward
			next, err := s.reportRepo.FindShift(report.UserID, report.DeviceID, report.ReportDate, report.Shift+1)
			if err != nil {
				return nil, err
			}
			if next != nil {
				return nil, ErrReportLocked
			}
		}
		closing := *req.ClosingBalance
		report.ClosingBalance = &closing
	}
	report.UpdatedBy = actor.ID.String()

	// 5. Save
	if err := s.reportRepo.Update(report); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, report.TableName(), report.ID, before, report)

	return s.reportRepo.FindByID(id)
}

func (s *reportService) ListMyReports(actor Actor, limit int) ([]model.DailyReportResponse, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	reports, err := s.reportRepo.FindByUser(actor.ID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]model.DailyReportResponse, len(reports))
	for i := range reports {
		responses[i] = reports[i].ToResponse()
	}
	return responses, nil
}

func (s *reportService) GetReport(id uuid.UUID, actor Actor) (*model.DailyReportResponse, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "daily report")
	}
	if report.UserID != actor.ID {
		return nil, ErrNotReportOwner
	}
	resp := report.ToResponse()
	return &resp, nil
}

func (s *reportService) TeamPerformance(month, year int, groupID *uuid.UUID, actor Actor) (*TeamPerformance, error) {
	month, year, period, err := monthPeriod(month, year, timeNow())
	if err != nil {
		return nil, err
	}

	scope := repository.AllGroups
	if groupID != nil {
		scope = repository.OnlyGroup(groupID)
	}
	reports, err := s.reportRepo.FindByPeriod(period, scope)
	if err != nil {
		return nil, err
	}

	names := map[uuid.UUID]string{}
	if groups, err := s.groupRepo.FindAll(); err == nil {
		for _, g := range groups {
			names[g.ID] = g.GroupName
		}
	} else {
		log.Printf("WARNING: load groups for team performance: %v", err)
	}

	return aggregatePerformance(month, year, reports, names), nil
}

// aggregatePerformance groups reports by group then employee, both sorted by omzet descending.
func aggregatePerformance(month, year int, reports []model.DailyReport, groupNames map[uuid.UUID]string) *TeamPerformance {
	type groupAcc struct {
		perf      GroupPerformance
		employees map[uuid.UUID]*EmployeePerformance
	}
	byGroup := map[uuid.UUID]*groupAcc{} // uuid.Nil collects reports without a group
	total := decimal.Zero

	for i := range reports {
		r := &reports[i]
		key := uuid.Nil
		if r.GroupID != nil {
			key = *r.GroupID
		}
		acc, ok := byGroup[key]
		if !ok {
			acc = &groupAcc{employees: map[uuid.UUID]*EmployeePerformance{}}
			acc.perf.GroupID = r.GroupID
			acc.perf.GroupName = groupNames[key]
			if r.GroupID == nil {
				acc.perf.GroupName = "Tanpa Group"
			}
			acc.perf.Omzet = decimal.Zero
			byGroup[key] = acc
		}

		omzet := r.Omzet()
		total = total.Add(omzet)
		acc.perf.Omzet = acc.perf.Omzet.Add(omzet)
		acc.perf.ReportCount++

		emp, ok := acc.employees[r.UserID]
		if !ok {
			emp = &EmployeePerformance{UserID: r.UserID, Omzet: decimal.Zero}
			if r.User != nil {
				emp.FullName = r.User.FullName
			}
			acc.employees[r.UserID] = emp
		}
		emp.Omzet = emp.Omzet.Add(omzet)
		emp.ReportCount++
	}

	out := &TeamPerformance{Month: month, Year: year, Total: total, Groups: []GroupPerformance{}}
	for _, acc := range byGroup {
		acc.perf.Employees = make([]EmployeePerformance, 0, len(acc.employees))
		for _, emp := range acc.employees {
			acc.perf.Employees = append(acc.perf.Employees, *emp)
		}
		sort.Slice(acc.perf.Employees, func(i, j int) bool {
			return acc.perf.Employees[i].Omzet.GreaterThan(acc.perf.Employees[j].Omzet)
		})
		out.Groups = append(out.Groups, acc.perf)
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		return out.Groups[i].Omzet.GreaterThan(out.Groups[j].Omzet)
	})
	return out
}

func (s *reportService) notifyReportCreated(report *model.DailyReport, actor Actor) {
	recipients := []string{actor.ID.String()}
	if leaders, err := s.userRepo.FindByRoles([]model.Role{model.RoleLeader}, actor.GroupID); err == nil {
		for _, l := range leaders {
			recipients = append(recipients, l.ID.String())
		}
	} else {
		log.Printf("WARNING: load leaders for notification: %v", err)
	}

	payload := map[string]interface{}{
		"type":    "daily_report_created",
		"message": fmt.Sprintf("%s submitted shift %d for %s", actor.Name, report.Shift, report.ReportDate.Format(model.DateLayout)),
		"report":  report.ToResponse(),
	}
	sendTo(s.notifier, recipients, payload)
}
