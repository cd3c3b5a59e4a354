package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is immutable once raw_text is extracted; the single permitted
// update attaches the vector-store collection id after chunking.
type Document struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Stage              ReviewStage `gorm:"column:stage;not null" json:"stage"`
	DocType            string      `gorm:"column:doc_type;not null" json:"doc_type"`
	Filename           string      `gorm:"column:filename;not null" json:"filename"`
	RawText            string      `gorm:"column:raw_text" json:"raw_text,omitempty"`
	ChromaCollectionID string      `gorm:"column:chroma_collection_id" json:"chroma_collection_id,omitempty"`
	UploadedAt         time.Time   `gorm:"not null" json:"uploaded_at"`
}

func (Document) TableName() string { return "documents" }

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
