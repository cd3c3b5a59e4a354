package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type AuditLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) (*types.AuditLog, error)
	ListByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, newestFirst bool) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

// Append is the only write; audit rows are never updated or deleted.
func (r *auditLogRepo) Append(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) (*types.AuditLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *auditLogRepo) ListByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, newestFirst bool) ([]*types.AuditLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	order := "timestamp ASC"
	if newestFirst {
		order = "timestamp DESC"
	}
	var entries []*types.AuditLog
	if err := transaction.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order(order).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
