package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/analysis"
	apperrors "github.com/AlexPerrin/GRC-AI-Automation/internal/pkg/errors"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// Audit event types, one per state transition.
const (
	EventIntakeStarted            = "INTAKE_STARTED"
	EventUseCaseApproved          = "USE_CASE_APPROVED"
	EventVendorRejected           = "VENDOR_REJECTED"
	EventLegalReviewComplete      = "LEGAL_REVIEW_COMPLETE"
	EventLegalReviewError         = "LEGAL_REVIEW_ERROR"
	EventLegalDecisionApproved    = "LEGAL_DECISION_APPROVED"
	EventNDAConfirmed             = "NDA_CONFIRMED"
	EventSecurityReviewComplete   = "SECURITY_REVIEW_COMPLETE"
	EventSecurityReviewError      = "SECURITY_REVIEW_ERROR"
	EventSecurityDecisionApproved = "SECURITY_DECISION_APPROVED"
	EventFinancialReviewStarted   = "FINANCIAL_REVIEW_STARTED"
	EventFinancialApproved        = "FINANCIAL_APPROVED"
	EventOnboardingComplete       = "ONBOARDING_COMPLETE"
)

// WorkflowService owns every vendor and review state transition. Each
// operation is one transaction: precondition check, mutation, and audit
// append commit together or not at all. Analyzer calls run outside any open
// transaction.
type WorkflowService struct {
	log       *logger.Logger
	db        *gorm.DB
	vendors   repos.VendorRepo
	reviews   repos.ReviewRepo
	decisions repos.DecisionRepo
	audits    repos.AuditLogRepo
	analyzers map[types.ReviewStage]analysis.Analyzer
}

func NewWorkflowService(
	log *logger.Logger,
	db *gorm.DB,
	vendors repos.VendorRepo,
	reviews repos.ReviewRepo,
	decisions repos.DecisionRepo,
	audits repos.AuditLogRepo,
	analyzers ...analysis.Analyzer,
) *WorkflowService {
	byStage := make(map[types.ReviewStage]analysis.Analyzer, len(analyzers))
	for _, a := range analyzers {
		byStage[a.Stage()] = a
	}
	return &WorkflowService{
		log:       log.With("service", "WorkflowService"),
		db:        db,
		vendors:   vendors,
		reviews:   reviews,
		decisions: decisions,
		audits:    audits,
		analyzers: byStage,
	}
}

// appendLog writes one audit entry inside the caller's transaction so the
// entry commits atomically with the mutation it describes.
func (s *WorkflowService) appendLog(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, eventType, actor string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	_, err = s.audits.Append(ctx, tx, &types.AuditLog{
		VendorID:  vendorID,
		EventType: eventType,
		Actor:     actor,
		Payload:   datatypes.JSON(raw),
		Timestamp: time.Now().UTC(),
	})
	return err
}

// -------------------- Stage 1: Use Case (human form) --------------------

// StartIntake opens the Stage 1 review for a vendor in INTAKE status.
func (s *WorkflowService) StartIntake(ctx context.Context, vendorID uuid.UUID) (*types.Vendor, *types.Review, error) {
	var vendor *types.Vendor
	var review *types.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		vendor, err = s.vendors.GetByID(ctx, tx, vendorID)
		if err != nil {
			return err
		}
		if vendor.Status != types.VendorIntake {
			return fmt.Errorf("vendor must be in INTAKE status, current: %s: %w", vendor.Status, apperrors.ErrInvalidState)
		}

		review, err = s.reviews.Create(ctx, tx, &types.Review{
			VendorID:    vendorID,
			Stage:       types.StageUseCase,
			ReviewType:  types.ReviewHumanForm,
			Status:      types.ReviewPending,
			TriggeredAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := s.vendors.UpdateStatus(ctx, tx, vendorID, types.VendorUseCaseReview); err != nil {
			return err
		}
		vendor.Status = types.VendorUseCaseReview

		return s.appendLog(ctx, tx, vendorID, EventIntakeStarted, "system", map[string]any{
			"vendor_id": vendorID,
			"review_id": review.ID,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return vendor, review, nil
}

// SubmitUseCaseForm stores the Stage 1 form and advances the workflow on
// PROCEED, rejects on DO_NOT_PROCEED.
func (s *WorkflowService) SubmitUseCaseForm(ctx context.Context, reviewID uuid.UUID, form UseCaseFormInput) (*types.Review, error) {
	var review *types.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = s.reviews.GetByID(ctx, tx, reviewID)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(form)
		if err != nil {
			return fmt.Errorf("marshal form input: %w", err)
		}
		now := time.Now().UTC()
		review.FormInput = datatypes.JSON(raw)
		review.Status = types.ReviewComplete
		review.CompletedAt = &now
		if err := s.reviews.Save(ctx, tx, review); err != nil {
			return err
		}

		if form.Recommendation == RecommendationProceed {
			if err := s.vendors.UpdateStatus(ctx, tx, review.VendorID, types.VendorUseCaseApproved); err != nil {
				return err
			}
			return s.appendLog(ctx, tx, review.VendorID, EventUseCaseApproved, form.ReviewerName, map[string]any{
				"review_id": reviewID,
			})
		}

		if err := s.vendors.UpdateStatus(ctx, tx, review.VendorID, types.VendorRejected); err != nil {
			return err
		}
		return s.appendLog(ctx, tx, review.VendorID, EventVendorRejected, form.ReviewerName, map[string]any{
			"review_id": reviewID,
			"stage":     types.StageUseCase,
			"rationale": form.Notes,
		})
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// -------------------- Stages 2 & 3: AI analysis --------------------

// CreateAIReview opens an AI_ANALYSIS review for the LEGAL or SECURITY stage.
func (s *WorkflowService) CreateAIReview(ctx context.Context, vendorID uuid.UUID, stage types.ReviewStage) (*types.Review, error) {
	if stage != types.StageLegal && stage != types.StageSecurity {
		return nil, fmt.Errorf("stage %s does not support AI analysis reviews: %w", stage, apperrors.ErrInvalidState)
	}

	var review *types.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.vendors.GetByID(ctx, tx, vendorID); err != nil {
			return err
		}
		var err error
		review, err = s.reviews.Create(ctx, tx, &types.Review{
			VendorID:    vendorID,
			Stage:       stage,
			ReviewType:  types.ReviewAIAnalysis,
			Status:      types.ReviewPending,
			TriggeredAt: time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// TriggerReview runs the stage's analyzer against one vendor document and
// persists the outcome. The precondition check and IN_PROGRESS mark commit
// first; the analyzer runs with no transaction open; a second transaction
// records COMPLETE with the result, or ERROR with the failure. An analysis
// failure is absorbed into the review record and is not returned as an
// error: the vendor's progress is unchanged and the stage can be
// retriggered.
func (s *WorkflowService) TriggerReview(ctx context.Context, reviewID, docID uuid.UUID) (*types.Review, error) {
	var review *types.Review
	var analyzer analysis.Analyzer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = s.reviews.GetByID(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if review.ReviewType != types.ReviewAIAnalysis {
			return fmt.Errorf("review %s is not an AI analysis review: %w", reviewID, apperrors.ErrInvalidState)
		}

		var ok bool
		analyzer, ok = s.analyzers[review.Stage]
		if !ok {
			return fmt.Errorf("no analyzer for stage %s: %w", review.Stage, apperrors.ErrNotImplemented)
		}

		vendor, err := s.vendors.GetByID(ctx, tx, review.VendorID)
		if err != nil {
			return err
		}

		switch review.Stage {
		case types.StageSecurity:
			// NDA gate: distinct error kind so the HTTP layer can answer 403.
			if vendor.Status != types.VendorSecurityReview {
				return fmt.Errorf("security review requires vendor status SECURITY_REVIEW (NDA must be confirmed first), current: %s: %w",
					vendor.Status, apperrors.ErrPermissionDenied)
			}
		case types.StageLegal:
			if vendor.Status != types.VendorLegalReview {
				if err := s.vendors.UpdateStatus(ctx, tx, vendor.ID, types.VendorLegalReview); err != nil {
					return err
				}
			}
		}

		review.Status = types.ReviewInProgress
		return s.reviews.Save(ctx, tx, review)
	})
	if err != nil {
		return nil, err
	}

	report, analyzeErr := analyzer.Analyze(ctx, review.VendorID, docID)

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if analyzeErr != nil {
			review.Status = types.ReviewError
			review.CompletedAt = &now
			if err := s.reviews.Save(ctx, tx, review); err != nil {
				return err
			}
			return s.appendLog(ctx, tx, review.VendorID, errorEvent(review.Stage), "system", map[string]any{
				"review_id": reviewID,
				"doc_id":    docID,
				"error":     analyzeErr.Error(),
			})
		}

		raw, err := json.Marshal(report.Payload)
		if err != nil {
			return fmt.Errorf("marshal analysis output: %w", err)
		}
		review.AIOutput = datatypes.JSON(raw)
		review.Status = types.ReviewComplete
		review.CompletedAt = &now
		if err := s.reviews.Save(ctx, tx, review); err != nil {
			return err
		}

		payload := map[string]any{
			"review_id":      reviewID,
			"doc_id":         docID,
			"overall_risk":   report.OverallRisk,
			"recommendation": report.Recommendation,
		}
		if report.RiskScore != nil {
			payload["risk_score"] = *report.RiskScore
		}
		return s.appendLog(ctx, tx, review.VendorID, completeEvent(review.Stage), "system", payload)
	})
	if err != nil {
		return nil, err
	}

	if analyzeErr != nil {
		s.log.Error("AI review failed",
			"review_id", reviewID.String(),
			"doc_id", docID.String(),
			"stage", string(review.Stage),
			"error", analyzeErr.Error(),
		)
	}
	return review, nil
}

func completeEvent(stage types.ReviewStage) string {
	if stage == types.StageSecurity {
		return EventSecurityReviewComplete
	}
	return EventLegalReviewComplete
}

func errorEvent(stage types.ReviewStage) string {
	if stage == types.StageSecurity {
		return EventSecurityReviewError
	}
	return EventLegalReviewError
}

// RecordDecision appends a human verdict to a completed review and advances
// the vendor for the LEGAL and SECURITY stages. An invalid review state
// leaves no Decision row behind.
func (s *WorkflowService) RecordDecision(ctx context.Context, reviewID uuid.UUID, actor string, action types.DecisionAction, rationale string, conditions []string) (*types.Decision, error) {
	var decision *types.Decision

	err := s.db.Transaction(func(tx *gorm.DB) error {
		review, err := s.reviews.GetByID(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if review.Status != types.ReviewComplete {
			return fmt.Errorf("review must be COMPLETE before a decision can be recorded, current: %s: %w",
				review.Status, apperrors.ErrInvalidState)
		}

		var condJSON datatypes.JSON
		if conditions != nil {
			raw, err := json.Marshal(conditions)
			if err != nil {
				return fmt.Errorf("marshal conditions: %w", err)
			}
			condJSON = datatypes.JSON(raw)
		}
		decision, err = s.decisions.Create(ctx, tx, &types.Decision{
			ReviewID:   reviewID,
			Actor:      actor,
			Action:     action,
			Rationale:  rationale,
			Conditions: condJSON,
			DecidedAt:  time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		approved := action == types.ActionApprove || action == types.ActionApproveWithConditions
		switch review.Stage {
		case types.StageLegal:
			if approved {
				if err := s.vendors.UpdateStatus(ctx, tx, review.VendorID, types.VendorLegalApproved); err != nil {
					return err
				}
				return s.appendLog(ctx, tx, review.VendorID, EventLegalDecisionApproved, actor, map[string]any{
					"review_id":  reviewID,
					"action":     action,
					"conditions": conditions,
				})
			}
			return s.rejectInTx(ctx, tx, review.VendorID, actor, map[string]any{
				"review_id": reviewID,
				"stage":     types.StageLegal,
				"action":    action,
				"rationale": rationale,
			})
		case types.StageSecurity:
			if approved {
				if err := s.vendors.UpdateStatus(ctx, tx, review.VendorID, types.VendorSecurityApproved); err != nil {
					return err
				}
				return s.appendLog(ctx, tx, review.VendorID, EventSecurityDecisionApproved, actor, map[string]any{
					"review_id":  reviewID,
					"action":     action,
					"conditions": conditions,
				})
			}
			return s.rejectInTx(ctx, tx, review.VendorID, actor, map[string]any{
				"review_id": reviewID,
				"stage":     types.StageSecurity,
				"action":    action,
				"rationale": rationale,
			})
		}
		// Form-driven stages advance through their form submission; the
		// decision is recorded without a vendor transition.
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *WorkflowService) rejectInTx(ctx context.Context, tx *gorm.DB, vendorID uuid.UUID, actor string, payload map[string]any) error {
	if err := s.vendors.UpdateStatus(ctx, tx, vendorID, types.VendorRejected); err != nil {
		return err
	}
	return s.appendLog(ctx, tx, vendorID, EventVendorRejected, actor, payload)
}

// -------------------- NDA gate --------------------

// ConfirmNDA advances a LEGAL_APPROVED vendor to SECURITY_REVIEW.
func (s *WorkflowService) ConfirmNDA(ctx context.Context, vendorID uuid.UUID) (*types.Vendor, error) {
	var vendor *types.Vendor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		vendor, err = s.vendors.GetByID(ctx, tx, vendorID)
		if err != nil {
			return err
		}
		if vendor.Status != types.VendorLegalApproved {
			return fmt.Errorf("NDA confirmation requires status LEGAL_APPROVED, current: %s: %w",
				vendor.Status, apperrors.ErrInvalidState)
		}

		if err := s.vendors.UpdateStatus(ctx, tx, vendorID, types.VendorSecurityReview); err != nil {
			return err
		}
		vendor.Status = types.VendorSecurityReview

		return s.appendLog(ctx, tx, vendorID, EventNDAConfirmed, "system", map[string]any{
			"vendor_id": vendorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// -------------------- Stage 4: Financial (human form) --------------------

// StartFinancialReview opens the Stage 4 review for a SECURITY_APPROVED vendor.
func (s *WorkflowService) StartFinancialReview(ctx context.Context, vendorID uuid.UUID) (*types.Vendor, *types.Review, error) {
	var vendor *types.Vendor
	var review *types.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		vendor, err = s.vendors.GetByID(ctx, tx, vendorID)
		if err != nil {
			return err
		}
		if vendor.Status != types.VendorSecurityApproved {
			return fmt.Errorf("vendor must be in SECURITY_APPROVED status, current: %s: %w",
				vendor.Status, apperrors.ErrInvalidState)
		}

		review, err = s.reviews.Create(ctx, tx, &types.Review{
			VendorID:    vendorID,
			Stage:       types.StageFinancial,
			ReviewType:  types.ReviewHumanForm,
			Status:      types.ReviewPending,
			TriggeredAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := s.vendors.UpdateStatus(ctx, tx, vendorID, types.VendorFinancialReview); err != nil {
			return err
		}
		vendor.Status = types.VendorFinancialReview

		return s.appendLog(ctx, tx, vendorID, EventFinancialReviewStarted, "system", map[string]any{
			"vendor_id": vendorID,
			"review_id": review.ID,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return vendor, review, nil
}

// SubmitFinancialForm stores the Stage 4 form and advances the workflow on
// an acceptable assessment.
func (s *WorkflowService) SubmitFinancialForm(ctx context.Context, reviewID uuid.UUID, form FinancialRiskFormInput) (*types.Review, error) {
	var review *types.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = s.reviews.GetByID(ctx, tx, reviewID)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(form)
		if err != nil {
			return fmt.Errorf("marshal form input: %w", err)
		}
		now := time.Now().UTC()
		review.FormInput = datatypes.JSON(raw)
		review.Status = types.ReviewComplete
		review.CompletedAt = &now
		if err := s.reviews.Save(ctx, tx, review); err != nil {
			return err
		}

		if form.Recommendation == FinancialAcceptable || form.Recommendation == FinancialAcceptableWithConditions {
			if err := s.vendors.UpdateStatus(ctx, tx, review.VendorID, types.VendorFinancialApproved); err != nil {
				return err
			}
			conditions := form.Conditions
			if conditions == nil {
				conditions = []string{}
			}
			return s.appendLog(ctx, tx, review.VendorID, EventFinancialApproved, form.ReviewerName, map[string]any{
				"review_id":  reviewID,
				"conditions": conditions,
			})
		}

		return s.rejectInTx(ctx, tx, review.VendorID, form.ReviewerName, map[string]any{
			"review_id": reviewID,
			"stage":     types.StageFinancial,
			"rationale": form.Notes,
		})
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// -------------------- Final disposition --------------------

func (s *WorkflowService) CompleteOnboarding(ctx context.Context, vendorID uuid.UUID) (*types.Vendor, error) {
	var vendor *types.Vendor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		vendor, err = s.vendors.GetByID(ctx, tx, vendorID)
		if err != nil {
			return err
		}
		if vendor.Status != types.VendorFinancialApproved {
			return fmt.Errorf("vendor must be in FINANCIAL_APPROVED status, current: %s: %w",
				vendor.Status, apperrors.ErrInvalidState)
		}

		if err := s.vendors.UpdateStatus(ctx, tx, vendorID, types.VendorOnboarded); err != nil {
			return err
		}
		vendor.Status = types.VendorOnboarded

		return s.appendLog(ctx, tx, vendorID, EventOnboardingComplete, "system", map[string]any{
			"vendor_id": vendorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// RejectVendor is the manual override: REJECTED is reachable from any state
// and never left.
func (s *WorkflowService) RejectVendor(ctx context.Context, vendorID uuid.UUID, stage, rationale string) (*types.Vendor, error) {
	var vendor *types.Vendor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		vendor, err = s.vendors.GetByID(ctx, tx, vendorID)
		if err != nil {
			return err
		}

		if err := s.rejectInTx(ctx, tx, vendorID, "system", map[string]any{
			"vendor_id": vendorID,
			"stage":     stage,
			"rationale": rationale,
		}); err != nil {
			return err
		}
		vendor.Status = types.VendorRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}
