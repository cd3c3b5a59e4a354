package analysis

import (
	"github.com/AlexPerrin/GRC-AI-Automation/internal/kb"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/llm"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// RegulationFinding is one per-regulation assessment from the legal analyzer.
type RegulationFinding struct {
	Regulation string `json:"regulation"`
	Article    string `json:"article"`
	Status     string `json:"status"`
	Finding    string `json:"finding"`
	Evidence   string `json:"evidence"`
}

// legalDomains fixes both the set of compliance domains and the order the
// analyzer visits them in.
var legalDomains = []DomainQuery{
	{"data_privacy", "personal data processing lawful basis consent privacy policy transparency GDPR PIPEDA CPPA"},
	{"data_security", "encryption security safeguards technical organisational measures breach notification GDPR Art. 32 PIPEDA 4.7"},
	{"data_subject_rights", "right access erasure portability rectification objection restriction GDPR Art. 13 PIPEDA 4.9"},
	{"processor_obligations", "data processing agreement DPA sub-processor controller obligations audit rights GDPR Art. 28"},
	{"retention_deletion", "data retention deletion disposal anonymisation storage limitation GDPR Art. 5 PCI DSS Req. 3"},
	{"cross_border_transfers", "international data transfer standard contractual clauses adequacy third country GDPR PIPEDA"},
}

const legalSystemPrompt = `You are a legal and regulatory compliance analyst specialising in data privacy law.

Your task is to assess a vendor's compliance with applicable regulations based on:
1. Regulatory requirements retrieved from the knowledge base.
2. Excerpts from the vendor's own documentation.

You MUST output a single JSON object — no markdown fences, no commentary — with exactly this schema:

{
  "regulation_findings": [
    {
      "regulation": "<e.g. GDPR>",
      "article": "<e.g. Art. 28>",
      "status": "<compliant|partial|non_compliant|not_applicable>",
      "finding": "<1–3 sentence assessment>",
      "evidence": "<quoted text from vendor document OR 'No evidence found'>"
    }
  ],
  "overall_risk": "<low|medium|high|critical>",
  "recommendation": "<approve|approve_with_conditions|reject>",
  "summary": "<2–4 sentence overall assessment>",
  "conditions": ["<condition if approve_with_conditions, else empty list>"]
}

Risk / recommendation guidance:
- low    → approve
- medium → approve_with_conditions (list specific remediation steps in conditions)
- high   → approve_with_conditions or reject depending on severity
- critical → reject

Be specific. Cite article numbers and quote vendor text as evidence wherever possible.`

// NewLegalAnalyzer builds the Stage 2 legal/regulatory compliance analyzer
// over the kb_legal knowledge base.
func NewLegalAnalyzer(log *logger.Logger, client llm.Client, retriever *rag.Retriever) *Assessor[RegulationFinding] {
	return NewAssessor(log, client, retriever, Config[RegulationFinding]{
		Stage:         types.StageLegal,
		KBCollection:  kb.CollectionLegal,
		SystemPrompt:  legalSystemPrompt,
		Domains:       legalDomains,
		FindingsKey:   "regulation_findings",
		DomainHeading: "Compliance domain",
		KBHeading:     "Regulatory knowledge base excerpts",
		VendorHeading: "Vendor document excerpts",
		Placeholder:   "(No vendor document excerpts available)",
		Instruction:   "Analyse the vendor's compliance for this domain and return the JSON object.",
		ParseFinding: func(_ string, raw map[string]any) RegulationFinding {
			return RegulationFinding{
				Regulation: getString(raw, "regulation", ""),
				Article:    getString(raw, "article", ""),
				Status:     getString(raw, "status", "not_applicable"),
				Finding:    getString(raw, "finding", ""),
				Evidence:   getString(raw, "evidence", "No evidence found"),
			}
		},
	})
}
