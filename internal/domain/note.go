package domain

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Branch      string `gorm:"column:branch;not null;index" json:"branch"`
	Subject     string `gorm:"column:subject;not null" json:"subject"`
	Topic       string `gorm:"column:topic;not null" json:"topic"`
	Description string `gorm:"column:description" json:"description,omitempty"`

	FilePath     string `gorm:"column:file_path;not null" json:"filePath"`
	OriginalName string `gorm:"column:original_name;not null" json:"originalName"`

	// Assigned by the upload pipeline, never updated afterwards.
	UploadDate time.Time `gorm:"column:upload_date;not null;index" json:"uploadDate"`
}

func (Note) TableName() string { return "note" }
