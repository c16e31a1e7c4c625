package repository

import (
	"time"

	"go-affiliate-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupScope restricts a listing to one group. The zero value means no restriction;
// Restricted with a nil GroupID selects rows that belong to no group.
type GroupScope struct {
	Restricted bool
	GroupID    *uuid.UUID
}

// AllGroups is the unrestricted scope
var AllGroups = GroupScope{}

// OnlyGroup scopes to groupID, or to group-less rows when groupID is nil.
func OnlyGroup(groupID *uuid.UUID) GroupScope {
	return GroupScope{Restricted: true, GroupID: groupID}
}

func (s GroupScope) apply(q *gorm.DB, column string) *gorm.DB {
	if !s.Restricted {
		return q
	}
	if s.GroupID == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *s.GroupID)
}

// Period is the half-open date range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// MonthPeriod covers one calendar month.
func MonthPeriod(year, month int) Period {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// IsZero is true for the unbounded period
func (p Period) IsZero() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// apply compares as calendar dates so the session timezone does not shift the bounds.
func (p Period) apply(q *gorm.DB, column string) *gorm.DB {
	if p.IsZero() {
		return q
	}
	return q.Where(column+" >= ? AND "+column+" < ?", p.From.Format(model.DateLayout), p.To.Format(model.DateLayout))
}
