package service

import (
	"errors"
	"time"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"gorm.io/gorm"
)

const defaultAttendanceLimit = 30

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

type AttendanceService interface {
	CheckIn(actor Actor, now time.Time) (*model.AttendanceResponse, error)
	CheckOut(actor Actor, now time.Time) (*model.AttendanceResponse, error)
	// Today returns a synthetic "absent" row when the actor has not checked in
	Today(actor Actor, now time.Time) (*model.AttendanceResponse, error)
	History(actor Actor, limit int) ([]model.AttendanceResponse, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	audit          AuditService
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, audit AuditService) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo, audit: audit}
}

func (s *attendanceService) CheckIn(actor Actor, now time.Time) (*model.AttendanceResponse, error) {
	today := dateOf(now)

	// 1. One check-in per local day
	existing, err := s.attendanceRepo.FindByUserAndDate(actor.ID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	// 2. Create
	checkIn := now
	att := &model.Attendance{
		UserID:         actor.ID,
		AttendanceDate: today,
		CheckInTime:    &checkIn,
	}
	att.CreatedBy = actor.ID.String()
	att.UpdatedBy = actor.ID.String()

	if err := s.attendanceRepo.Create(att); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	s.audit.Record(actor, model.AuditCreate, att.TableName(), att.ID, nil, att)

	resp := att.ToResponse(jakartaLoc)
	return &resp, nil
}

func (s *attendanceService) CheckOut(actor Actor, now time.Time) (*model.AttendanceResponse, error) {
	att, err := s.attendanceRepo.FindByUserAndDate(actor.ID, dateOf(now))
	if err != nil {
		return nil, err
	}
	if att == nil || att.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}
	if att.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	before := *att
	checkOut := now
	att.CheckOutTime = &checkOut
	att.UpdatedBy = actor.ID.String()

	if err := s.attendanceRepo.Update(att); err != nil {
		return nil, err
	}
	s.audit.Record(actor, model.AuditUpdate, att.TableName(), att.ID, before, att)

	resp := att.ToResponse(jakartaLoc)
	return &resp, nil
}

func (s *attendanceService) Today(actor Actor, now time.Time) (*model.AttendanceResponse, error) {
	today := dateOf(now)
	att, err := s.attendanceRepo.FindByUserAndDate(actor.ID, today)
	if err != nil {
		return nil, err
	}
	if att == nil {
		att = &model.Attendance{UserID: actor.ID, AttendanceDate: today}
	}
	resp := att.ToResponse(jakartaLoc)
	return &resp, nil
}

func (s *attendanceService) History(actor Actor, limit int) ([]model.AttendanceResponse, error) {
	if limit <= 0 {
		limit = defaultAttendanceLimit
	}
	rows, err := s.attendanceRepo.FindByUser(actor.ID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]model.AttendanceResponse, len(rows))
	for i := range rows {
		responses[i] = rows[i].ToResponse(jakartaLoc)
	}
	return responses, nil
}
