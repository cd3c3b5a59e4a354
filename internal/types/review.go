package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is the unit of work for one vendor stage. Exactly one of AIOutput or
// FormInput is populated, depending on ReviewType.
type Review struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Stage       ReviewStage    `gorm:"column:stage;not null" json:"stage"`
	ReviewType  ReviewType     `gorm:"column:review_type;not null" json:"review_type"`
	Status      ReviewStatus   `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	AIOutput    datatypes.JSON `gorm:"column:ai_output;type:jsonb" json:"ai_output,omitempty"`
	FormInput   datatypes.JSON `gorm:"column:form_input;type:jsonb" json:"form_input,omitempty"`
	TriggeredAt time.Time      `gorm:"not null" json:"triggered_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`

	Decisions []Decision `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReviewID;references:ID" json:"decisions,omitempty"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
