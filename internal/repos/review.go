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

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Review, error)
	GetByVendorAndStage(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, stage types.ReviewStage) (*types.Review, error)
	ListByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID) ([]*types.Review, error)
	Save(ctx context.Context, tx *gorm.DB, review *types.Review) error
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (r *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var review types.Review
	if err := transaction.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) GetByVendorAndStage(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, stage types.ReviewStage) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var review types.Review
	err := transaction.WithContext(ctx).
		Where("vendor_id = ? AND stage = ?", vendorID, stage).
		Order("triggered_at ASC").
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review for vendor %s stage %s: %w", vendorID, stage, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ListByVendor(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var reviews []*types.Review
	if err := transaction.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("triggered_at ASC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) Save(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(review).Error
}
