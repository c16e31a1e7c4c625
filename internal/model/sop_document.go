package model

import "github.com/google/uuid"

type FileType string

const (
	FilePDF         FileType = "pdf"
	FileGoogleDrive FileType = "google_drive"
	FileYoutube     FileType = "youtube"
)

// SOPDocument links a standard operating procedure
type SOPDocument struct {
	BaseModel
	Title          string     `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	FileURL        string     `gorm:"type:text;not null" json:"file_url" validate:"required,url"`
	FileType       FileType   `gorm:"type:varchar(20);not null" json:"file_type" validate:"required,oneof=pdf google_drive youtube"`
	UploadedByID   *uuid.UUID `gorm:"type:uuid" json:"uploaded_by,omitempty" validate:"-"`
	UploadedByUser *User      `gorm:"foreignKey:UploadedByID" json:"uploaded_by_user,omitempty" validate:"-"`
}

func (SOPDocument) TableName() string {
	return "sop_documents"
}
