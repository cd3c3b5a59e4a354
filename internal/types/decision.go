package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Decision is an append-only human verdict on a completed review.
type Decision struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"review_id"`
	Actor      string         `gorm:"column:actor;not null" json:"actor"`
	Action     DecisionAction `gorm:"column:action;not null" json:"action"`
	Rationale  string         `gorm:"column:rationale;not null" json:"rationale"`
	Conditions datatypes.JSON `gorm:"column:conditions;type:jsonb" json:"conditions,omitempty"`
	DecidedAt  time.Time      `gorm:"not null" json:"decided_at"`
}

func (Decision) TableName() string { return "decisions" }

func (d *Decision) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
