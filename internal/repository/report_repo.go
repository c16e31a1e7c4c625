package repository

import (
	"errors"
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *model.DailyReport) error
	Update(report *model.DailyReport) error
	FindByID(id uuid.UUID) (*model.DailyReport, error)
	FindByUser(userID uuid.UUID, limit int) ([]model.DailyReport, error)
	FindByPeriod(period Period, scope GroupScope) ([]model.DailyReport, error)

	// Read side of the shift workflow
	FindShiftsByUserAndDate(userID uuid.UUID, date time.Time) ([]int, error)
	// FindShift returns (nil, nil) when the shift has not been filed
	FindShift(userID, deviceID uuid.UUID, date time.Time, shift int) (*model.DailyReport, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Create(report *model.DailyReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepo) Update(report *model.DailyReport) error {
	report.User = nil
	report.Device = nil
	report.Account = nil
	return r.db.Save(report).Error
}

func (r *reportRepo) preloaded() *gorm.DB {
	return r.db.Preload("User").Preload("Device").Preload("Account")
}

func (r *reportRepo) FindByID(id uuid.UUID) (*model.DailyReport, error) {
	var report model.DailyReport
	if err := r.preloaded().First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) FindByUser(userID uuid.UUID, limit int) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.preloaded().
		Where("user_id = ?", userID).
		Order("report_date DESC, shift DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) FindByPeriod(period Period, scope GroupScope) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	q := period.apply(r.db.Preload("User"), "report_date")
	q = scope.apply(q, "group_id")
	err := q.Order("report_date ASC, shift ASC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) FindShiftsByUserAndDate(userID uuid.UUID, date time.Time) ([]int, error) {
	var shifts []int
	err := r.db.Model(&model.DailyReport{}).
		Where("user_id = ? AND report_date = ?", userID, date.Format(model.DateLayout)).
		Order("shift ASC").
		Pluck("shift", &shifts).Error
	return shifts, err
}

func (r *reportRepo) FindShift(userID, deviceID uuid.UUID, date time.Time, shift int) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.db.
		Where("user_id = ? AND device_id = ? AND report_date = ? AND shift = ?",
			userID, deviceID, date.Format(model.DateLayout), shift).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
