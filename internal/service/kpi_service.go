package service

import (
	"fmt"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type KPIService interface {
	Create(req *KPIRequest, actor Actor) (*model.KPITarget, error)
	Update(id uuid.UUID, req *KPIRequest, actor Actor) (*model.KPITarget, error)
	Delete(id uuid.UUID, actor Actor) error
	List(month, year int, actor Actor) ([]model.KPITarget, error)
	Progress(groupID uuid.UUID, month, year int, actor Actor) (*KPIProgress, error)
}

type KPIRequest struct {
	TargetMonth           int             `json:"target_month" validate:"min=1,max=12"`
	TargetYear            int             `json:"target_year" validate:"min=2000,max=2100"`
	TargetOmzet           decimal.Decimal `json:"target_omzet"`
	TargetGrossCommission decimal.Decimal `json:"target_gross_commission"`
	TargetAttendanceDays  int             `json:"target_attendance_days" validate:"min=1,max=31"`
	GroupID               uuid.UUID       `json:"group_id" validate:"uuid_required"`
}

// KPIMetric is one target next to what the group actually achieved
type KPIMetric struct {
	Target     decimal.Decimal `json:"target"`
	Actual     decimal.Decimal `json:"actual"`
	Percentage decimal.Decimal `json:"percentage"`
}

type KPIProgress struct {
	GroupID         uuid.UUID  `json:"group_id"`
	Month           int        `json:"month"`
	Year            int        `json:"year"`
	HasTarget       bool       `json:"has_target"`
	Omzet           KPIMetric  `json:"omzet"`
	GrossCommission KPIMetric  `json:"gross_commission"`
	AttendanceDays  KPIMetric  `json:"attendance_days"`
	TargetID        *uuid.UUID `json:"target_id,omitempty"`
}

type kpiService struct {
	kpiRepo        repository.KPIRepository
	reportRepo     repository.ReportRepository
	commissionRepo repository.CommissionRepository
	attendanceRepo repository.AttendanceRepository
	audit          AuditService
}

func NewKPIService(
	kpiRepo repository.KPIRepository,
	reportRepo repository.ReportRepository,
	commissionRepo repository.CommissionRepository,
	attendanceRepo repository.AttendanceRepository,
	audit AuditService,
) KPIService {
	return &kpiService{
		kpiRepo:        kpiRepo,
		reportRepo:     reportRepo,
		commissionRepo: commissionRepo,
		attendanceRepo: attendanceRepo,
		audit:          audit,
	}
}

func (s *kpiService) apply(target *model.KPITarget, req *KPIRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := requirePositive("target_omzet", req.TargetOmzet); err != nil {
		return err
	}
	if err := requirePositive("target_gross_commission", req.TargetGrossCommission); err != nil {
		return err
	}
	target.TargetMonth = req.TargetMonth
	target.TargetYear = req.TargetYear
	target.TargetOmzet = req.TargetOmzet
	target.TargetGrossCommission = req.TargetGrossCommission
	target.TargetAttendanceDays = req.TargetAttendanceDays
	target.GroupID = req.GroupID
	return nil
}

// checkUnique rejects a second target for the same group and month
func (s *kpiService) checkUnique(target *model.KPITarget) error {
	existing, err := s.kpiRepo.FindByGroupPeriod(target.GroupID, target.TargetMonth, target.TargetYear)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != target.ID {
		return fmt.Errorf("%w: KPI target for %02d/%d", ErrConflict, target.TargetMonth, target.TargetYear)
	}
	return nil
}

func (s *kpiService) Create(req *KPIRequest, actor Actor) (*model.KPITarget, error) {
	target := &model.KPITarget{}
	if err := s.apply(target, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(target); err != nil {
		return nil, err
	}
	target.CreatedBy = actor.ID.String()
	target.UpdatedBy = actor.ID.String()
	if err := s.kpiRepo.Create(target); err != nil {
		return nil, storeErr(err, "KPI target")
	}
	s.audit.Record(actor, model.AuditCreate, target.TableName(), target.ID, nil, target)
	return target, nil
}

func (s *kpiService) Update(id uuid.UUID, req *KPIRequest, actor Actor) (*model.KPITarget, error) {
	target, err := s.kpiRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, "KPI target")
	}
	before := *target
	if err := s.apply(target, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(target); err != nil {
		return nil, err
	}
	target.UpdatedBy = actor.ID.String()
	if err := s.kpiRepo.Update(target); err != nil {
		return nil, storeErr(err, "KPI target")
	}
	s.audit.Record(actor, model.AuditUpdate, target.TableName(), target.ID, before, target)
	return target, nil
}

func (s *kpiService) Delete(id uuid.UUID, actor Actor) error {
	target, err := s.kpiRepo.FindByID(id)
	if err != nil {
		return storeErr(err, "KPI target")
	}
	if err := s.kpiRepo.Delete(id, actor.ID.String()); err != nil {
		return storeErr(err, "KPI target")
	}
	s.audit.Record(actor, model.AuditDelete, target.TableName(), id, target, nil)
	return nil
}

func (s *kpiService) List(month, year int, actor Actor) ([]model.KPITarget, error) {
	return s.kpiRepo.FindAll(actor.Scope(), month, year)
}

func (s *kpiService) Progress(groupID uuid.UUID, month, year int, actor Actor) (*KPIProgress, error) {
	// Selain leader/superadmin hanya boleh melihat group sendiri
	if !actor.Role.SeesAllGroups() && (actor.GroupID == nil || *actor.GroupID != groupID) {
		return nil, fmt.Errorf("%w: KPI progress of another group", ErrForbidden)
	}

	month, year, period, err := monthPeriod(month, year, timeNow())
	if err != nil {
		return nil, err
	}

	progress := &KPIProgress{GroupID: groupID, Month: month, Year: year}

	target, err := s.kpiRepo.FindByGroupPeriod(groupID, month, year)
	if err != nil {
		return nil, err
	}
	if target != nil {
		progress.HasTarget = true
		progress.TargetID = &target.ID
		progress.Omzet.Target = target.TargetOmzet
		progress.GrossCommission.Target = target.TargetGrossCommission
		progress.AttendanceDays.Target = decimal.NewFromInt(int64(target.TargetAttendanceDays))
	}

	// 1. Omzet dari laporan harian group
	reports, err := s.reportRepo.FindByPeriod(period, repository.OnlyGroup(&groupID))
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	omzet := decimal.Zero
	for i := range reports {
		omzet = omzet.Add(reports[i].Omzet())
	}
	progress.Omzet.Actual = omzet

	// 2. Komisi kotor dari akun milik group
	totals, err := s.commissionRepo.Totals(repository.CommissionFilter{Month: month, Year: year, GroupID: &groupID})
	if err != nil {
		return nil, fmt.Errorf("load commissions: %w", err)
	}
	progress.GrossCommission.Actual = totals.Gross

	// 3. Hari kehadiran
	days, err := s.attendanceRepo.CountDaysForGroup(groupID, period)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	progress.AttendanceDays.Actual = decimal.NewFromInt(days)

	for _, m := range []*KPIMetric{&progress.Omzet, &progress.GrossCommission, &progress.AttendanceDays} {
		m.Percentage = percent(m.Actual, m.Target)
	}
	return progress, nil
}
