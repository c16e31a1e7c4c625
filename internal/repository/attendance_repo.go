package repository

import (
	"errors"
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(att *model.Attendance) error
	Update(att *model.Attendance) error
	// FindByUserAndDate returns (nil, nil) when there is no row for the day
	FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error)
	FindByUser(userID uuid.UUID, limit int) ([]model.Attendance, error)
	// CountDaysForGroup counts distinct dates on which any member of the group checked in
	CountDaysForGroup(groupID uuid.UUID, period Period) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) Create(att *model.Attendance) error {
	return r.db.Create(att).Error
}

func (r *attendanceRepo) Update(att *model.Attendance) error {
	att.User = nil
	return r.db.Save(att).Error
}

func (r *attendanceRepo) FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.Where("user_id = ? AND attendance_date = ?", userID, date.Format(model.DateLayout)).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) FindByUser(userID uuid.UUID, limit int) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.Where("user_id = ?", userID).
		Order("attendance_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *attendanceRepo) CountDaysForGroup(groupID uuid.UUID, period Period) (int64, error) {
	var days int64
	q := r.db.Model(&model.Attendance{}).
		Joins("JOIN users ON users.id = attendance.user_id").
		Where("users.group_id = ? AND attendance.check_in_time IS NOT NULL", groupID)
	q = period.apply(q, "attendance.attendance_date")
	err := q.Distinct("attendance.attendance_date").Count(&days).Error
	return days, err
}
