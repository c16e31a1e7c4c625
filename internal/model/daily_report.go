package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiveStatus is the state of the stream during a shift.
type LiveStatus string

const (
	LiveNormal  LiveStatus = "lancar" // stream ran normally
	LiveOffline LiveStatus = "mati"   // stream went down
	LiveRelive  LiveStatus = "relive" // stream was restarted
)

// ResetsBalance is true when the stream context was broken and the shift starts from zero.
func (s LiveStatus) ResetsBalance() bool {
	return s == LiveOffline || s == LiveRelive
}

type ProductCategory string

const (
	CategoryFashion    ProductCategory = "fashion"
	CategoryElectronic ProductCategory = "elektronik"
	CategoryBeauty     ProductCategory = "kecantikan"
	CategoryFood       ProductCategory = "food"
	CategoryHobby      ProductCategory = "hobi"
	CategoryAutomotive ProductCategory = "otomotif"
	CategoryOther      ProductCategory = "lainnya"
)

// Shift numbers of a working day
const (
	FirstShift = 1
	LastShift  = 3
)

// DailyReport is one employee's record for one shift on one date.
// At most one report exists per (user, date, shift).
type DailyReport struct {
	BaseModel
	ReportDate time.Time  `gorm:"type:date;not null;uniqueIndex:idx_report_user_date_shift,priority:2;index" json:"report_date"`
	Shift      int        `gorm:"not null;uniqueIndex:idx_report_user_date_shift,priority:3" json:"shift"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_report_user_date_shift,priority:1" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GroupID    *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	DeviceID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"device_id"`
	Device     *Device    `gorm:"foreignKey:DeviceID" json:"device,omitempty"`

	// Optional: the affiliate account may have been deleted since the report was filed
	AccountID *uuid.UUID        `gorm:"type:uuid;index" json:"account_id,omitempty"`
	Account   *AffiliateAccount `gorm:"foreignKey:AccountID" json:"account,omitempty"`

	ProductCategory ProductCategory `gorm:"type:varchar(20);not null" json:"product_category"`
	LiveStatus      LiveStatus      `gorm:"type:varchar(10);not null" json:"live_status"`
	OpeningBalance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"opening_balance"`
	// Nil until the shift has been closed
	ClosingBalance *decimal.Decimal `gorm:"type:decimal(18,2)" json:"closing_balance"`
}

// TableName specifies the table name for GORM
func (DailyReport) TableName() string {
	return "daily_reports"
}

// Omzet is the turnover earned during the shift.
func (r *DailyReport) Omzet() decimal.Decimal {
	if r.ClosingBalance == nil {
		return decimal.Zero
	}
	return r.ClosingBalance.Sub(r.OpeningBalance)
}

// DailyReportResponse for API responses
type DailyReportResponse struct {
	ID              uuid.UUID        `json:"id"`
	ReportDate      string           `json:"report_date"`
	Shift           int              `json:"shift"`
	UserID          uuid.UUID        `json:"user_id"`
	EmployeeName    string           `json:"employee_name,omitempty"`
	GroupID         *uuid.UUID       `json:"group_id,omitempty"`
	DeviceID        uuid.UUID        `json:"device_id"`
	DeviceCode      string           `json:"device_code,omitempty"`
	AccountID       *uuid.UUID       `json:"account_id,omitempty"`
	AccountUsername string           `json:"account_username,omitempty"`
	AccountPlatform Platform         `json:"account_platform,omitempty"`
	ProductCategory ProductCategory  `json:"product_category"`
	LiveStatus      LiveStatus       `json:"live_status"`
	OpeningBalance  decimal.Decimal  `json:"opening_balance"`
	ClosingBalance  *decimal.Decimal `json:"closing_balance"`
	Omzet           decimal.Decimal  `json:"omzet"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToResponse converts DailyReport to DailyReportResponse
func (r *DailyReport) ToResponse() DailyReportResponse {
	resp := DailyReportResponse{
		ID:              r.ID,
		ReportDate:      r.ReportDate.Format(DateLayout),
		Shift:           r.Shift,
		UserID:          r.UserID,
		GroupID:         r.GroupID,
		DeviceID:        r.DeviceID,
		AccountID:       r.AccountID,
		ProductCategory: r.ProductCategory,
		LiveStatus:      r.LiveStatus,
		OpeningBalance:  r.OpeningBalance,
		ClosingBalance:  r.ClosingBalance,
		Omzet:           r.Omzet(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.User != nil {
		resp.EmployeeName = r.User.FullName
	}
	if r.Device != nil {
		resp.DeviceCode = r.Device.DeviceCode
	}
	if r.Account != nil {
		resp.AccountUsername = r.Account.Username
		resp.AccountPlatform = r.Account.Platform
	}
	return resp
}
