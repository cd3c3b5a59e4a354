package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/llm"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
)

// -------------------- fakes --------------------

type fakeLLM struct {
	responses   []map[string]any
	errAt       int // 1-based call index that errors; 0 disables
	err         error
	calls       int
	userPrompts []string
}

func (f *fakeLLM) Complete(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeLLM) CompleteJSON(_ context.Context, _, user string) (map[string]any, error) {
	f.calls++
	f.userPrompts = append(f.userPrompts, user)
	if f.errAt != 0 && f.calls == f.errAt {
		return nil, f.err
	}
	return f.responses[f.calls-1], nil
}

func (f *fakeLLM) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type analysisStore struct {
	vendorQueryErr bool
}

func (s *analysisStore) CollectionExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (s *analysisStore) Add(_ context.Context, _ string, _ []string, _ [][]float32, _ []map[string]any) error {
	return nil
}

func (s *analysisStore) Query(_ context.Context, collection string, _ []float32, _ int) ([]string, error) {
	if strings.HasPrefix(collection, "vendor_") {
		if s.vendorQueryErr {
			return nil, fmt.Errorf("collection %s does not exist", collection)
		}
		return []string{"vendor excerpt"}, nil
	}
	return []string{"kb excerpt"}, nil
}

func (s *analysisStore) DeleteCollection(_ context.Context, _ string) error { return nil }

func domainResponse(risk, rec, summary string, conditions []string) map[string]any {
	conds := make([]any, len(conditions))
	for i, c := range conditions {
		conds[i] = c
	}
	return map[string]any{
		"regulation_findings": []any{},
		"overall_risk":        risk,
		"recommendation":      rec,
		"summary":             summary,
		"conditions":          conds,
	}
}

func newLegalForTest(f *fakeLLM, store *analysisStore) Analyzer {
	retriever := rag.NewRetriever(store, f)
	return NewLegalAnalyzer(logger.NewNop(), f, retriever)
}

// -------------------- aggregation --------------------

func TestAggregationWorstCaseWinsAtAnyPosition(t *testing.T) {
	for outlier := 0; outlier < 6; outlier++ {
		responses := make([]map[string]any, 6)
		for i := range responses {
			if i == outlier {
				responses[i] = domainResponse("high", "reject", "serious gaps found", nil)
			} else {
				responses[i] = domainResponse("low", "approve", fmt.Sprintf("fine %d", i), nil)
			}
		}
		f := &fakeLLM{responses: responses}
		a := newLegalForTest(f, &analysisStore{})

		report, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
		if err != nil {
			t.Fatalf("outlier=%d Analyze: %v", outlier, err)
		}
		if report.OverallRisk != "high" {
			t.Fatalf("outlier=%d overall_risk: want=high got=%s", outlier, report.OverallRisk)
		}
		if report.Recommendation != "reject" {
			t.Fatalf("outlier=%d recommendation: want=reject got=%s", outlier, report.Recommendation)
		}
		if report.Summary != "serious gaps found" {
			t.Fatalf("outlier=%d summary: got=%q", outlier, report.Summary)
		}
	}
}

func TestAggregationAllBestCaseFallsBackToLastSummary(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = domainResponse("low", "approve", fmt.Sprintf("summary %d", i), nil)
	}
	f := &fakeLLM{responses: responses}
	a := newLegalForTest(f, &analysisStore{})

	report, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Summary != "summary 5" {
		t.Fatalf("summary: want=%q got=%q", "summary 5", report.Summary)
	}
	if report.OverallRisk != "low" || report.Recommendation != "approve" {
		t.Fatalf("aggregate: got risk=%s rec=%s", report.OverallRisk, report.Recommendation)
	}
}

func TestAggregationDeduplicatesConditionsFirstSeen(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = domainResponse("low", "approve", "ok", nil)
	}
	responses[1] = domainResponse("medium", "approve_with_conditions", "needs work",
		[]string{"sign a DPA", "enable MFA"})
	responses[3] = domainResponse("medium", "approve_with_conditions", "needs work",
		[]string{"sign a DPA", "encrypt backups"})

	f := &fakeLLM{responses: responses}
	a := newLegalForTest(f, &analysisStore{})

	report, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []string{"sign a DPA", "enable MFA", "encrypt backups"}
	if len(report.Conditions) != len(want) {
		t.Fatalf("conditions: want=%v got=%v", want, report.Conditions)
	}
	for i := range want {
		if report.Conditions[i] != want[i] {
			t.Fatalf("conditions[%d]: want=%q got=%q", i, want[i], report.Conditions[i])
		}
	}
}

// -------------------- security risk score --------------------

func securityResponse(scores []int) map[string]any {
	findings := make([]any, len(scores))
	for i, s := range scores {
		findings[i] = map[string]any{
			"domain":     "access_control",
			"framework":  "NIST CSF",
			"control_id": "PR.AC",
			"status":     "partial",
			"finding":    "gap",
			"evidence":   "No evidence found",
			"risk_score": float64(s),
		}
	}
	return map[string]any{
		"control_findings": findings,
		"overall_risk":     "medium",
		"recommendation":   "approve_with_conditions",
		"summary":          "mixed",
		"conditions":       []any{},
	}
}

func TestSecurityRiskScoreIsMeanOfFindings(t *testing.T) {
	responses := []map[string]any{
		securityResponse([]int{2, 4}),
		securityResponse([]int{2, 4}),
		securityResponse([]int{2, 4}),
		securityResponse(nil),
		securityResponse(nil),
		securityResponse(nil),
	}
	f := &fakeLLM{responses: responses}
	retriever := rag.NewRetriever(&analysisStore{}, f)
	a := NewSecurityAnalyzer(logger.NewNop(), f, retriever)

	report, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.RiskScore == nil || *report.RiskScore != 3.0 {
		t.Fatalf("risk_score: want=3.0 got=%v", report.RiskScore)
	}
	if report.Payload["risk_score"] != 3.0 {
		t.Fatalf("payload risk_score: got=%v", report.Payload["risk_score"])
	}
}

func TestSecurityRiskScoreZeroWithoutFindings(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = securityResponse(nil)
	}
	f := &fakeLLM{responses: responses}
	retriever := rag.NewRetriever(&analysisStore{}, f)
	a := NewSecurityAnalyzer(logger.NewNop(), f, retriever)

	report, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.RiskScore == nil || *report.RiskScore != 0.0 {
		t.Fatalf("risk_score: want=0.0 got=%v", report.RiskScore)
	}
}

// -------------------- failure behavior --------------------

func TestVendorRetrievalFailureSubstitutesPlaceholder(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = domainResponse("low", "approve", "ok", nil)
	}
	f := &fakeLLM{responses: responses}
	a := newLegalForTest(f, &analysisStore{vendorQueryErr: true})

	if _, err := a.Analyze(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("missing vendor collection must not abort: %v", err)
	}
	if len(f.userPrompts) != 6 {
		t.Fatalf("llm calls: want=6 got=%d", len(f.userPrompts))
	}
	for i, p := range f.userPrompts {
		if !strings.Contains(p, "(No vendor document excerpts available)") {
			t.Fatalf("prompt %d missing placeholder:\n%s", i, p)
		}
	}
}

func TestMalformedOutputPropagates(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = domainResponse("low", "approve", "ok", nil)
	}
	f := &fakeLLM{
		responses: responses,
		errAt:     3,
		err:       &llm.MalformedOutputError{Raw: "not json", Err: fmt.Errorf("invalid character")},
	}
	a := newLegalForTest(f, &analysisStore{})

	_, err := a.Analyze(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected malformed output to propagate")
	}
	var malformed *llm.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type: want=MalformedOutputError got=%T (%v)", err, err)
	}
	if f.calls != 3 {
		t.Fatalf("domains after failure must not run: calls=%d", f.calls)
	}
}

func TestDomainsRunInDeclaredOrder(t *testing.T) {
	responses := make([]map[string]any, 6)
	for i := range responses {
		responses[i] = domainResponse("low", "approve", "ok", nil)
	}
	f := &fakeLLM{responses: responses}
	a := newLegalForTest(f, &analysisStore{})

	if _, err := a.Analyze(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	wantOrder := []string{
		"Data Privacy", "Data Security", "Data Subject Rights",
		"Processor Obligations", "Retention Deletion", "Cross Border Transfers",
	}
	for i, want := range wantOrder {
		if !strings.Contains(f.userPrompts[i], "## Compliance domain: "+want) {
			t.Fatalf("prompt %d: want domain %q, got:\n%s", i, want, f.userPrompts[i])
		}
	}
}
