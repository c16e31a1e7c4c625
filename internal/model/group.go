package model

// Group is a team of staff sharing devices, affiliate accounts and KPI targets.
type Group struct {
	BaseModel
	GroupName string `gorm:"type:varchar(100);uniqueIndex;not null" json:"group_name" validate:"required"`
}
