package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vendor struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"column:name;not null" json:"name"`
	Website     string       `gorm:"column:website" json:"website,omitempty"`
	Description string       `gorm:"column:description" json:"description,omitempty"`
	Status      VendorStatus `gorm:"column:status;not null;default:'INTAKE'" json:"status"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`

	Documents []Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:VendorID;references:ID" json:"documents,omitempty"`
	Reviews   []Review   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VendorID;references:ID" json:"reviews,omitempty"`
	AuditLogs []AuditLog `gorm:"constraint:OnDelete:CASCADE;foreignKey:VendorID;references:ID" json:"audit_logs,omitempty"`
}

func (Vendor) TableName() string { return "vendors" }

func (v *Vendor) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
