package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories. Missing rows answer
// gorm.ErrRecordNotFound the same way the real repos do.

func newID(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
}

func inScope(scope repository.GroupScope, groupID *uuid.UUID) bool {
	if !scope.Restricted {
		return true
	}
	return sameGroup(scope.GroupID, groupID)
}

func inPeriod(p repository.Period, t time.Time) bool {
	if p.IsZero() {
		return true
	}
	d := t.Format(model.DateLayout)
	return d >= p.From.Format(model.DateLayout) && d < p.To.Format(model.DateLayout)
}

// --- daily reports ---

type fakeReports struct {
	rows []*model.DailyReport
}

func (f *fakeReports) Create(r *model.DailyReport) error {
	for _, row := range f.rows {
		if row.UserID == r.UserID && row.Shift == r.Shift &&
			row.ReportDate.Format(model.DateLayout) == r.ReportDate.Format(model.DateLayout) {
			return gorm.ErrDuplicatedKey
		}
	}
	newID(&r.BaseModel)
	c := *r
	f.rows = append(f.rows, &c)
	return nil
}

func (f *fakeReports) Update(r *model.DailyReport) error {
	for i, row := range f.rows {
		if row.ID == r.ID {
			c := *r
			f.rows[i] = &c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReports) FindByID(id uuid.UUID) (*model.DailyReport, error) {
	for _, row := range f.rows {
		if row.ID == id {
			c := *row
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReports) FindByUser(userID uuid.UUID, limit int) ([]model.DailyReport, error) {
	var out []model.DailyReport
	for _, row := range f.rows {
		if row.UserID == userID && len(out) < limit {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeReports) FindByPeriod(period repository.Period, scope repository.GroupScope) ([]model.DailyReport, error) {
	var out []model.DailyReport
	for _, row := range f.rows {
		if inPeriod(period, row.ReportDate) && inScope(scope, row.GroupID) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeReports) FindShiftsByUserAndDate(userID uuid.UUID, date time.Time) ([]int, error) {
	var shifts []int
	for _, row := range f.rows {
		if row.UserID == userID && row.ReportDate.Format(model.DateLayout) == date.Format(model.DateLayout) {
			shifts = append(shifts, row.Shift)
		}
	}
	return shifts, nil
}

func (f *fakeReports) FindShift(userID, deviceID uuid.UUID, date time.Time, shift int) (*model.DailyReport, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.DeviceID == deviceID && row.Shift == shift &&
			row.ReportDate.Format(model.DateLayout) == date.Format(model.DateLayout) {
			c := *row
			return &c, nil
		}
	}
	return nil, nil
}

// --- attendance ---

type fakeAttendance struct {
	rows      []*model.Attendance
	groupDays int64
}

func (f *fakeAttendance) Create(a *model.Attendance) error {
	for _, row := range f.rows {
		if row.UserID == a.UserID && row.AttendanceDate.Equal(a.AttendanceDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	newID(&a.BaseModel)
	c := *a
	f.rows = append(f.rows, &c)
	return nil
}

func (f *fakeAttendance) Update(a *model.Attendance) error {
	for i, row := range f.rows {
		if row.ID == a.ID {
			c := *a
			f.rows[i] = &c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttendance) FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.AttendanceDate.Equal(date) {
			c := *row
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendance) FindByUser(userID uuid.UUID, limit int) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, row := range f.rows {
		if row.UserID == userID && len(out) < limit {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeAttendance) CountDaysForGroup(uuid.UUID, repository.Period) (int64, error) {
	return f.groupDays, nil
}

// --- commissions ---

type fakeCommissions struct {
	rows     map[uuid.UUID]*model.Commission
	upserted []model.Commission
	// totals keyed by "month/year"
	totals map[string]repository.CommissionTotals
}

func newFakeCommissions() *fakeCommissions {
	return &fakeCommissions{
		rows:   map[uuid.UUID]*model.Commission{},
		totals: map[string]repository.CommissionTotals{},
	}
}

func periodKey(month, year int) string {
	return fmt.Sprintf("%d/%d", month, year)
}

func (f *fakeCommissions) Create(c *model.Commission) error {
	newID(&c.BaseModel)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCommissions) Update(c *model.Commission) error {
	if _, ok := f.rows[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCommissions) Delete(id uuid.UUID, _ string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeCommissions) FindByID(id uuid.UUID) (*model.Commission, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommissions) FindAll(repository.CommissionFilter) ([]model.Commission, error) {
	out := make([]model.Commission, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommissions) UpsertMany(rows []model.Commission) error {
	f.upserted = append(f.upserted, rows...)
	return nil
}

func (f *fakeCommissions) Totals(filter repository.CommissionFilter) (*repository.CommissionTotals, error) {
	t, ok := f.totals[periodKey(filter.Month, filter.Year)]
	if !ok {
		t = repository.CommissionTotals{Gross: decimal.Zero, Net: decimal.Zero, Liquid: decimal.Zero}
	}
	return &t, nil
}

// --- cashflow ---

type fakeCashflow struct {
	rows   map[uuid.UUID]*model.Cashflow
	totals map[string]repository.CashflowTotals // keyed by Period.From date
}

func newFakeCashflow() *fakeCashflow {
	return &fakeCashflow{rows: map[uuid.UUID]*model.Cashflow{}, totals: map[string]repository.CashflowTotals{}}
}

func (f *fakeCashflow) Create(e *model.Cashflow) error {
	newID(&e.BaseModel)
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeCashflow) Update(e *model.Cashflow) error {
	if _, ok := f.rows[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	f.rows[e.ID] = &cp
	return nil
}

func (f *fakeCashflow) Delete(id uuid.UUID, _ string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeCashflow) FindByID(id uuid.UUID) (*model.Cashflow, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeCashflow) FindAll(filter repository.CashflowFilter) ([]model.Cashflow, error) {
	var out []model.Cashflow
	for _, e := range f.rows {
		if inScope(filter.Scope, e.GroupID) && inPeriod(filter.Period, e.TransactionDate) &&
			(filter.Type == "" || filter.Type == e.Type) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeCashflow) Totals(filter repository.CashflowFilter) (*repository.CashflowTotals, error) {
	t, ok := f.totals[filter.Period.From.Format(model.DateLayout)]
	if !ok {
		t = repository.CashflowTotals{Income: decimal.Zero, Expense: decimal.Zero, FixCost: decimal.Zero, VariableCost: decimal.Zero}
	}
	return &t, nil
}

// --- master data ---

type fakeAccounts struct {
	rows map[uuid.UUID]*model.AffiliateAccount
}

func newFakeAccounts(accounts ...model.AffiliateAccount) *fakeAccounts {
	f := &fakeAccounts{rows: map[uuid.UUID]*model.AffiliateAccount{}}
	for i := range accounts {
		a := accounts[i]
		newID(&a.BaseModel)
		f.rows[a.ID] = &a
	}
	return f
}

func (f *fakeAccounts) Create(a *model.AffiliateAccount) error {
	newID(&a.BaseModel)
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) Update(a *model.AffiliateAccount) error {
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) Delete(id uuid.UUID, _ string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAccounts) FindByID(id uuid.UUID) (*model.AffiliateAccount, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) FindByUsername(username string) (*model.AffiliateAccount, error) {
	for _, a := range f.rows {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindAll(scope repository.GroupScope) ([]model.AffiliateAccount, error) {
	var out []model.AffiliateAccount
	for _, a := range f.rows {
		if inScope(scope, a.GroupID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeDevices struct {
	rows map[uuid.UUID]*model.Device
}

func newFakeDevices(devices ...model.Device) *fakeDevices {
	f := &fakeDevices{rows: map[uuid.UUID]*model.Device{}}
	for i := range devices {
		d := devices[i]
		newID(&d.BaseModel)
		f.rows[d.ID] = &d
	}
	return f
}

func (f *fakeDevices) Create(d *model.Device) error {
	newID(&d.BaseModel)
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDevices) Update(d *model.Device) error {
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDevices) Delete(id uuid.UUID, _ string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeDevices) FindByID(id uuid.UUID) (*model.Device, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDevices) FindAll(scope repository.GroupScope) ([]model.Device, error) {
	var out []model.Device
	for _, d := range f.rows {
		if inScope(scope, d.GroupID) {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeGroups struct {
	rows []model.Group
}

func (f *fakeGroups) Create(g *model.Group) error {
	newID(&g.BaseModel)
	f.rows = append(f.rows, *g)
	return nil
}

func (f *fakeGroups) Update(g *model.Group) error {
	for i := range f.rows {
		if f.rows[i].ID == g.ID {
			f.rows[i] = *g
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeGroups) Delete(id uuid.UUID, _ string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeGroups) FindByID(id uuid.UUID) (*model.Group, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			g := f.rows[i]
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroups) FindAll() ([]model.Group, error) {
	return append([]model.Group(nil), f.rows...), nil
}

func (f *fakeGroups) Count() (int64, error) {
	return int64(len(f.rows)), nil
}

// --- users ---

type fakeUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{rows: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		newID(&u.BaseModel)
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByUsername(username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByID(id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	newID(&u.BaseModel)
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(id uuid.UUID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) UpdatePassword(userID uuid.UUID, hashed string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[userID].Password = hashed
	return nil
}

func (f *fakeUsers) FindAll(scope repository.GroupScope) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.rows {
		if inScope(scope, u.GroupID) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByRoles(roles []model.Role, groupID *uuid.UUID) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.rows {
		if !u.IsActive || (groupID != nil && !sameGroup(u.GroupID, groupID)) {
			continue
		}
		for _, r := range roles {
			if u.Position == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUsers) CountActive() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.rows {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) UpdateTokenVersion(userID uuid.UUID, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[userID].TokenVersion = version
	return nil
}

func (f *fakeUsers) UpdateLastSeen(userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := timeNow()
	f.rows[userID].LastSeenAt = &now
	return nil
}

// --- KPI ---

type fakeKPI struct {
	rows map[uuid.UUID]*model.KPITarget
}

func newFakeKPI() *fakeKPI {
	return &fakeKPI{rows: map[uuid.UUID]*model.KPITarget{}}
}

func (f *fakeKPI) Create(t *model.KPITarget) error {
	newID(&t.BaseModel)
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeKPI) Update(t *model.KPITarget) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeKPI) Delete(id uuid.UUID, _ string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeKPI) FindByID(id uuid.UUID) (*model.KPITarget, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeKPI) FindByGroupPeriod(groupID uuid.UUID, month, year int) (*model.KPITarget, error) {
	for _, t := range f.rows {
		if t.GroupID == groupID && t.TargetMonth == month && t.TargetYear == year {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeKPI) FindAll(scope repository.GroupScope, month, year int) ([]model.KPITarget, error) {
	var out []model.KPITarget
	for _, t := range f.rows {
		id := t.GroupID
		if inScope(scope, &id) && (month == 0 || t.TargetMonth == month) && (year == 0 || t.TargetYear == year) {
			out = append(out, *t)
		}
	}
	return out, nil
}

// --- audit, notifier, cache ---

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (f *fakeAuditRepo) Create(e *model.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditRepo) FindAll(repository.AuditFilter) ([]model.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AuditEntry(nil), f.entries...), nil
}

func (f *fakeAuditRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeNotifier struct {
	mu         sync.Mutex
	broadcasts [][]byte
	direct     map[string]int
}

func (n *fakeNotifier) Broadcast(message []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, message)
}

func (n *fakeNotifier) SendToUsers(userIDs []string, message []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.direct == nil {
		n.direct = map[string]int{}
	}
	for _, id := range userIDs {
		n.direct[id]++
	}
}

type memoryCache struct {
	items map[string][]byte
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// --- helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// freezeTime pins timeNow for the duration of a test
func freezeTime(t interface{ Cleanup(func()) }, at time.Time) {
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}
