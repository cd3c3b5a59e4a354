package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/analysis"
	apperrors "github.com/AlexPerrin/GRC-AI-Automation/internal/pkg/errors"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

type stubAnalyzer struct {
	stage  types.ReviewStage
	report *analysis.Report
	err    error
}

func (a *stubAnalyzer) Stage() types.ReviewStage { return a.stage }

func (a *stubAnalyzer) Analyze(_ context.Context, _, _ uuid.UUID) (*analysis.Report, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.report, nil
}

func approvingReport() *analysis.Report {
	return &analysis.Report{
		OverallRisk:    "low",
		Recommendation: "approve",
		Summary:        "no material issues identified",
		Conditions:     []string{},
		Payload: map[string]any{
			"overall_risk":   "low",
			"recommendation": "approve",
		},
	}
}

type workflowFixture struct {
	svc     *WorkflowService
	vendors repos.VendorRepo
	reviews repos.ReviewRepo
	audits  repos.AuditLogRepo
	db      *gorm.DB
}

func newWorkflowFixture(t *testing.T, analyzers ...analysis.Analyzer) *workflowFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Vendor{},
		&types.Document{},
		&types.Review{},
		&types.Decision{},
		&types.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.NewNop()
	vendors := repos.NewVendorRepo(db, log)
	reviews := repos.NewReviewRepo(db, log)
	decisions := repos.NewDecisionRepo(db, log)
	audits := repos.NewAuditLogRepo(db, log)
	svc := NewWorkflowService(log, db, vendors, reviews, decisions, audits, analyzers...)
	return &workflowFixture{svc: svc, vendors: vendors, reviews: reviews, audits: audits, db: db}
}

func (f *workflowFixture) createVendor(t *testing.T) *types.Vendor {
	t.Helper()
	vendor, err := f.vendors.Create(context.Background(), nil, &types.Vendor{
		Name:        "Acme Analytics",
		Website:     "https://acme.example.com",
		Description: "usage analytics platform",
		Status:      types.VendorIntake,
	})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return vendor
}

func (f *workflowFixture) auditEvents(t *testing.T, vendorID uuid.UUID) []string {
	t.Helper()
	entries, err := f.audits.ListByVendor(context.Background(), nil, vendorID, false)
	if err != nil {
		t.Fatalf("list audit log: %v", err)
	}
	events := make([]string, 0, len(entries))
	for _, e := range entries {
		events = append(events, e.EventType)
	}
	return events
}

func useCaseForm(recommendation string) UseCaseFormInput {
	return UseCaseFormInput{
		UseCaseDescription:     "customer churn prediction",
		BusinessJustification:  "reduce churn in enterprise tier",
		DataTypesInvolved:      []string{"usage metrics"},
		EstimatedUsers:         40,
		AlternativesConsidered: "build in-house",
		ReviewerName:           "dana",
		Recommendation:         recommendation,
		Notes:                  "scoped to anonymized data",
	}
}

func financialForm(recommendation string) FinancialRiskFormInput {
	return FinancialRiskFormInput{
		VendorAnnualRevenue:          "50M-100M",
		YearsInOperation:             8,
		FinancialDocumentsReviewed:   []string{"audited financials FY2025"},
		FinancialStabilityAssessment: "STABLE",
		ContractValue:                "120K/yr",
		ReviewerName:                 "omar",
		Recommendation:               recommendation,
		Conditions:                   []string{"annual financial re-review"},
	}
}

func TestFullOnboardingPath(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t,
		&stubAnalyzer{stage: types.StageLegal, report: approvingReport()},
		&stubAnalyzer{stage: types.StageSecurity, report: approvingReport()},
	)
	vendor := f.createVendor(t)

	if _, _, err := f.svc.StartIntake(ctx, vendor.ID); err != nil {
		t.Fatalf("start intake: %v", err)
	}
	v, _ := f.vendors.GetByID(ctx, nil, vendor.ID)
	if v.Status != types.VendorUseCaseReview {
		t.Fatalf("status after intake: want=%s got=%s", types.VendorUseCaseReview, v.Status)
	}

	useCaseReview, err := f.reviews.GetByVendorAndStage(ctx, nil, vendor.ID, types.StageUseCase)
	if err != nil {
		t.Fatalf("get use case review: %v", err)
	}
	if _, err := f.svc.SubmitUseCaseForm(ctx, useCaseReview.ID, useCaseForm(RecommendationProceed)); err != nil {
		t.Fatalf("submit use case form: %v", err)
	}

	legalReview, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageLegal)
	if err != nil {
		t.Fatalf("create legal review: %v", err)
	}
	legalReview, err = f.svc.TriggerReview(ctx, legalReview.ID, uuid.New())
	if err != nil {
		t.Fatalf("trigger legal review: %v", err)
	}
	if legalReview.Status != types.ReviewComplete {
		t.Fatalf("legal review status: want=%s got=%s", types.ReviewComplete, legalReview.Status)
	}
	if legalReview.CompletedAt == nil {
		t.Fatalf("legal review completed_at not set")
	}
	if _, err := f.svc.RecordDecision(ctx, legalReview.ID, "lena", types.ActionApprove, "standard DPA in place", nil); err != nil {
		t.Fatalf("legal decision: %v", err)
	}

	if _, err := f.svc.ConfirmNDA(ctx, vendor.ID); err != nil {
		t.Fatalf("confirm nda: %v", err)
	}

	secReview, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageSecurity)
	if err != nil {
		t.Fatalf("create security review: %v", err)
	}
	if _, err := f.svc.TriggerReview(ctx, secReview.ID, uuid.New()); err != nil {
		t.Fatalf("trigger security review: %v", err)
	}
	if _, err := f.svc.RecordDecision(ctx, secReview.ID, "sam", types.ActionApproveWithConditions, "MFA gap", []string{"enforce MFA"}); err != nil {
		t.Fatalf("security decision: %v", err)
	}

	if _, _, err := f.svc.StartFinancialReview(ctx, vendor.ID); err != nil {
		t.Fatalf("start financial review: %v", err)
	}
	finReview, err := f.reviews.GetByVendorAndStage(ctx, nil, vendor.ID, types.StageFinancial)
	if err != nil {
		t.Fatalf("get financial review: %v", err)
	}
	if _, err := f.svc.SubmitFinancialForm(ctx, finReview.ID, financialForm(FinancialAcceptable)); err != nil {
		t.Fatalf("submit financial form: %v", err)
	}

	final, err := f.svc.CompleteOnboarding(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if final.Status != types.VendorOnboarded {
		t.Fatalf("final status: want=%s got=%s", types.VendorOnboarded, final.Status)
	}

	want := []string{
		EventIntakeStarted,
		EventUseCaseApproved,
		EventLegalReviewComplete,
		EventLegalDecisionApproved,
		EventNDAConfirmed,
		EventSecurityReviewComplete,
		EventSecurityDecisionApproved,
		EventFinancialReviewStarted,
		EventFinancialApproved,
		EventOnboardingComplete,
	}
	got := f.auditEvents(t, vendor.ID)
	if len(got) != len(want) {
		t.Fatalf("audit event count: want=%d got=%d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit event %d: want=%s got=%s", i, want[i], got[i])
		}
	}
}

func TestSecurityTriggerRequiresNDA(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t,
		&stubAnalyzer{stage: types.StageSecurity, report: approvingReport()},
	)
	vendor := f.createVendor(t)
	if err := f.vendors.UpdateStatus(ctx, nil, vendor.ID, types.VendorLegalApproved); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	review, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageSecurity)
	if err != nil {
		t.Fatalf("create security review: %v", err)
	}

	_, err = f.svc.TriggerReview(ctx, review.ID, uuid.New())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("trigger error: want=ErrPermissionDenied got=%v", err)
	}

	// The gated trigger must leave no trace: review untouched, no audit entry.
	stored, err := f.reviews.GetByID(ctx, nil, review.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if stored.Status != types.ReviewPending {
		t.Fatalf("review status: want=%s got=%s", types.ReviewPending, stored.Status)
	}
	if events := f.auditEvents(t, vendor.ID); len(events) != 0 {
		t.Fatalf("audit events: want=0 got=%v", events)
	}
}

func TestTriggerReviewAbsorbsAnalyzerFailure(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t,
		&stubAnalyzer{stage: types.StageLegal, err: errors.New("model returned malformed output")},
	)
	vendor := f.createVendor(t)
	if err := f.vendors.UpdateStatus(ctx, nil, vendor.ID, types.VendorUseCaseApproved); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	review, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageLegal)
	if err != nil {
		t.Fatalf("create legal review: %v", err)
	}

	review, err = f.svc.TriggerReview(ctx, review.ID, uuid.New())
	if err != nil {
		t.Fatalf("trigger should absorb analysis failure, got: %v", err)
	}
	if review.Status != types.ReviewError {
		t.Fatalf("review status: want=%s got=%s", types.ReviewError, review.Status)
	}
	if review.CompletedAt == nil {
		t.Fatalf("completed_at not set on failed review")
	}

	// Vendor progress is unchanged beyond the LEGAL_REVIEW mark, so the
	// stage can be retriggered.
	v, _ := f.vendors.GetByID(ctx, nil, vendor.ID)
	if v.Status != types.VendorLegalReview {
		t.Fatalf("vendor status: want=%s got=%s", types.VendorLegalReview, v.Status)
	}

	events := f.auditEvents(t, vendor.ID)
	if len(events) != 1 || events[0] != EventLegalReviewError {
		t.Fatalf("audit events: want=[%s] got=%v", EventLegalReviewError, events)
	}
}

func TestDecisionRequiresCompletedReview(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	vendor := f.createVendor(t)
	if err := f.vendors.UpdateStatus(ctx, nil, vendor.ID, types.VendorUseCaseApproved); err != nil {
		t.Fatalf("seed status: %v", err)
	}
	review, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageLegal)
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	_, err = f.svc.RecordDecision(ctx, review.ID, "lena", types.ActionApprove, "premature", nil)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("decision error: want=ErrInvalidState got=%v", err)
	}

	var count int64
	if err := f.db.Model(&types.Decision{}).Count(&count).Error; err != nil {
		t.Fatalf("count decisions: %v", err)
	}
	if count != 0 {
		t.Fatalf("decision rows: want=0 got=%d", count)
	}
}

func TestRecordDecisionPersistsConditions(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t,
		&stubAnalyzer{stage: types.StageSecurity, report: approvingReport()},
	)
	vendor := f.createVendor(t)
	if err := f.vendors.UpdateStatus(ctx, nil, vendor.ID, types.VendorSecurityReview); err != nil {
		t.Fatalf("seed status: %v", err)
	}
	review, err := f.svc.CreateAIReview(ctx, vendor.ID, types.StageSecurity)
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := f.svc.TriggerReview(ctx, review.ID, uuid.New()); err != nil {
		t.Fatalf("trigger review: %v", err)
	}

	conditions := []string{"enforce MFA", "quarterly pen test"}
	decision, err := f.svc.RecordDecision(ctx, review.ID, "sam", types.ActionApproveWithConditions, "gaps with remediation plan", conditions)
	if err != nil {
		t.Fatalf("record decision: %v", err)
	}
	if decision.Actor != "sam" || decision.Action != types.ActionApproveWithConditions {
		t.Fatalf("decision fields: got actor=%s action=%s", decision.Actor, decision.Action)
	}

	var stored []string
	if err := json.Unmarshal(decision.Conditions, &stored); err != nil {
		t.Fatalf("unmarshal conditions: %v", err)
	}
	if len(stored) != 2 || stored[0] != "enforce MFA" {
		t.Fatalf("conditions: want=%v got=%v", conditions, stored)
	}

	v, _ := f.vendors.GetByID(ctx, nil, vendor.ID)
	if v.Status != types.VendorSecurityApproved {
		t.Fatalf("vendor status: want=%s got=%s", types.VendorSecurityApproved, v.Status)
	}
}

func TestSubmitUseCaseFormRejects(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	vendor := f.createVendor(t)

	_, review, err := f.svc.StartIntake(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("start intake: %v", err)
	}
	if _, err := f.svc.SubmitUseCaseForm(ctx, review.ID, useCaseForm(RecommendationDoNotProceed)); err != nil {
		t.Fatalf("submit form: %v", err)
	}

	v, _ := f.vendors.GetByID(ctx, nil, vendor.ID)
	if v.Status != types.VendorRejected {
		t.Fatalf("vendor status: want=%s got=%s", types.VendorRejected, v.Status)
	}
	events := f.auditEvents(t, vendor.ID)
	if len(events) != 2 || events[1] != EventVendorRejected {
		t.Fatalf("audit events: want=[.. %s] got=%v", EventVendorRejected, events)
	}
}

func TestConfirmNDAWrongState(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	vendor := f.createVendor(t)

	_, err := f.svc.ConfirmNDA(ctx, vendor.ID)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("confirm nda error: want=ErrInvalidState got=%v", err)
	}
	v, _ := f.vendors.GetByID(ctx, nil, vendor.ID)
	if v.Status != types.VendorIntake {
		t.Fatalf("vendor status mutated: got=%s", v.Status)
	}
}

func TestRejectVendorFromAnyState(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	vendor := f.createVendor(t)
	if err := f.vendors.UpdateStatus(ctx, nil, vendor.ID, types.VendorFinancialReview); err != nil {
		t.Fatalf("seed status: %v", err)
	}

	v, err := f.svc.RejectVendor(ctx, vendor.ID, string(types.StageFinancial), "unacceptable concentration risk")
	if err != nil {
		t.Fatalf("reject vendor: %v", err)
	}
	if v.Status != types.VendorRejected {
		t.Fatalf("vendor status: want=%s got=%s", types.VendorRejected, v.Status)
	}
}
