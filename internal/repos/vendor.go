package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/AlexPerrin/GRC-AI-Automation/internal/pkg/errors"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type VendorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vendor *types.Vendor) (*types.Vendor, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vendor, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Vendor, int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.VendorStatus) error
}

type vendorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVendorRepo(db *gorm.DB, baseLog *logger.Logger) VendorRepo {
	return &vendorRepo{db: db, log: baseLog.With("repo", "VendorRepo")}
}

func (r *vendorRepo) Create(ctx context.Context, tx *gorm.DB, vendor *types.Vendor) (*types.Vendor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vendor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var vendor types.Vendor
	if err := transaction.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Vendor, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}

	var total int64
	if err := transaction.WithContext(ctx).Model(&types.Vendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []*types.Vendor
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&vendors).Error; err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

func (r *vendorRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.VendorStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Vendor{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vendor %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
