package domain

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	AuthorID      *uuid.UUID `gorm:"type:uuid" json:"author_id,omitempty"`
	Title         string     `gorm:"column:title" json:"title"`
	Body          string     `gorm:"column:body;not null" json:"body"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Note) TableName() string { return "application_note" }

type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	UploadedByID  *uuid.UUID `gorm:"type:uuid" json:"uploaded_by_id,omitempty"`
	DocumentType  string     `gorm:"column:document_type;not null" json:"document_type"`
	FileName      string     `gorm:"column:file_name;not null" json:"file_name"`
	StorageKey    string     `gorm:"column:storage_key" json:"storage_key"`
	SizeBytes     int64      `gorm:"column:size_bytes" json:"size_bytes"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Document) TableName() string { return "application_document" }
