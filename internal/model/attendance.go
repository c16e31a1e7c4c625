package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LateCheckInHour: checking in at or after this local hour counts as late
const LateCheckInHour = 9

type AttendanceStatus string

const (
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceWorking AttendanceStatus = "working"
	AttendanceDone    AttendanceStatus = "done"
)

// Attendance is one check-in/check-out pair per user per day
type Attendance struct {
	BaseModel
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date,priority:1" json:"user_id"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AttendanceDate time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date,priority:2" json:"attendance_date"`
	CheckInTime    *time.Time `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) Status() AttendanceStatus {
	switch {
	case a.CheckInTime == nil:
		return AttendanceAbsent
	case a.CheckOutTime == nil:
		return AttendanceWorking
	default:
		return AttendanceDone
	}
}

// IsLate evaluates the check-in hour in loc.
func (a *Attendance) IsLate(loc *time.Location) bool {
	if a.CheckInTime == nil {
		return false
	}
	return a.CheckInTime.In(loc).Hour() >= LateCheckInHour
}

// Duration returns the worked time; ok is false until both times are set.
func (a *Attendance) Duration() (d time.Duration, ok bool) {
	if a.CheckInTime == nil || a.CheckOutTime == nil {
		return 0, false
	}
	return a.CheckOutTime.Sub(*a.CheckInTime), true
}

// FormatWorkDuration renders a duration as "Xj Ym" (jam/menit).
func FormatWorkDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dj %dm", hours, minutes)
}

type AttendanceResponse struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	AttendanceDate string           `json:"attendance_date"`
	CheckInTime    *time.Time       `json:"check_in_time"`
	CheckOutTime   *time.Time       `json:"check_out_time"`
	Duration       string           `json:"duration"`
	Status         AttendanceStatus `json:"status"`
	Late           bool             `json:"late"`
}

func (a *Attendance) ToResponse(loc *time.Location) AttendanceResponse {
	duration := "-"
	if d, ok := a.Duration(); ok {
		duration = FormatWorkDuration(d)
	}
	return AttendanceResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		AttendanceDate: a.AttendanceDate.Format(DateLayout),
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		Duration:       duration,
		Status:         a.Status(),
		Late:           a.IsLate(loc),
	}
}
