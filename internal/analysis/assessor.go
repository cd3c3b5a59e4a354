package analysis

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/llm"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// Analyzer is the surface WorkflowService drives. A malformed-model-output
// error from the LLM client propagates out of Analyze unhandled; the
// orchestrator owns failure-state bookkeeping.
type Analyzer interface {
	Stage() types.ReviewStage
	Analyze(ctx context.Context, vendorID, docID uuid.UUID) (*Report, error)
}

// DomainQuery pairs a compliance domain with its canned retrieval query.
// Order is fixed by declaration; the assessor runs domains sequentially.
type DomainQuery struct {
	Domain string
	Query  string
}

// Config parameterizes the generic assessor for one stage. The legal and
// security analyzers differ only in this data plus their finding type.
type Config[F any] struct {
	Stage          types.ReviewStage
	KBCollection   string
	SystemPrompt   string
	Domains        []DomainQuery
	FindingsKey    string
	DomainHeading  string
	KBHeading      string
	VendorHeading  string
	Placeholder    string
	Instruction    string
	ParseFinding   func(domain string, raw map[string]any) F
	FindingScore   func(f F) int
}

// Assessor runs the domain-scoped RAG+LLM loop and aggregates per-domain
// results into a worst-case Report.
type Assessor[F any] struct {
	log       *logger.Logger
	llm       llm.Client
	retriever *rag.Retriever
	cfg       Config[F]
}

func NewAssessor[F any](log *logger.Logger, client llm.Client, retriever *rag.Retriever, cfg Config[F]) *Assessor[F] {
	return &Assessor[F]{
		log:       log.With("service", fmt.Sprintf("%sAnalyzer", titleWords(strings.ToLower(string(cfg.Stage))))),
		llm:       client,
		retriever: retriever,
		cfg:       cfg,
	}
}

func (a *Assessor[F]) Stage() types.ReviewStage { return a.cfg.Stage }

func (a *Assessor[F]) Analyze(ctx context.Context, vendorID, docID uuid.UUID) (*Report, error) {
	vendorCollection := rag.VendorCollection(vendorID, a.cfg.Stage, docID)

	var findings []F
	var domainResults []map[string]any

	for _, dq := range a.cfg.Domains {
		kbContext, err := a.retriever.Retrieve(ctx, dq.Query, a.cfg.KBCollection, 3)
		if err != nil {
			return nil, fmt.Errorf("retrieve %s context for domain %s: %w", a.cfg.KBCollection, dq.Domain, err)
		}

		// A missing or empty vendor collection must never abort the run; the
		// vendor may simply not have uploaded a document covering this domain.
		vendorContext, err := a.retriever.Retrieve(ctx, dq.Query, vendorCollection, 3)
		if err != nil {
			a.log.Warn("could not retrieve vendor context",
				"domain", dq.Domain,
				"collection", vendorCollection,
				"error", err.Error(),
			)
			vendorContext = ""
		}
		if vendorContext == "" {
			vendorContext = a.cfg.Placeholder
		}

		userPrompt := fmt.Sprintf("## %s: %s\n\n### %s\n%s\n\n### %s\n%s\n\n%s",
			a.cfg.DomainHeading, titleWords(dq.Domain),
			a.cfg.KBHeading, kbContext,
			a.cfg.VendorHeading, vendorContext,
			a.cfg.Instruction,
		)

		raw, err := a.llm.CompleteJSON(ctx, a.cfg.SystemPrompt, userPrompt)
		if err != nil {
			return nil, err
		}
		domainResults = append(domainResults, raw)

		for _, item := range asSlice(raw[a.cfg.FindingsKey]) {
			if m, ok := item.(map[string]any); ok {
				findings = append(findings, a.cfg.ParseFinding(dq.Domain, m))
			}
		}
	}

	report := aggregate(domainResults)
	report.Payload = map[string]any{
		a.cfg.FindingsKey: findings,
		"overall_risk":    report.OverallRisk,
		"recommendation":  report.Recommendation,
		"summary":         report.Summary,
		"conditions":      report.Conditions,
	}

	if a.cfg.FindingScore != nil {
		score := 0.0
		if len(findings) > 0 {
			sum := 0
			for _, f := range findings {
				sum += a.cfg.FindingScore(f)
			}
			score = math.Round(float64(sum)/float64(len(findings))*100) / 100
		}
		report.RiskScore = &score
		report.Payload["risk_score"] = score
	}
	return report, nil
}

// aggregate folds per-domain results into worst-case risk/recommendation.
// The summary follows whichever domain produced the final worst risk; if
// every domain was best-case it falls back to the last domain's summary.
func aggregate(domainResults []map[string]any) *Report {
	overallRisk := "low"
	recommendation := "approve"
	summary := ""
	var conditions []string

	for _, result := range domainResults {
		risk := getString(result, "overall_risk", "low")
		rec := getString(result, "recommendation", "approve")

		if riskOrder[risk] > riskOrder[overallRisk] {
			overallRisk = risk
			summary = getString(result, "summary", "")
		}
		if recommendationOrder[rec] > recommendationOrder[recommendation] {
			recommendation = rec
		}
		for _, c := range asSlice(result["conditions"]) {
			if s, ok := c.(string); ok {
				conditions = append(conditions, s)
			}
		}
	}

	if summary == "" && len(domainResults) > 0 {
		summary = getString(domainResults[len(domainResults)-1], "summary", "")
	}

	// Deduplicate conditions preserving first-seen order.
	seen := map[string]bool{}
	deduped := []string{}
	for _, c := range conditions {
		if !seen[c] {
			seen[c] = true
			deduped = append(deduped, c)
		}
	}

	return &Report{
		OverallRisk:    overallRisk,
		Recommendation: recommendation,
		Summary:        summary,
		Conditions:     deduped,
	}
}

// -------------------- payload helpers --------------------

func getString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func getInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func titleWords(domain string) string {
	words := strings.Split(strings.ReplaceAll(domain, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
