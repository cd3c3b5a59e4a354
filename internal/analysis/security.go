package analysis

import (
	"github.com/AlexPerrin/GRC-AI-Automation/internal/kb"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/llm"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// ControlFinding is one per-control assessment from the security analyzer.
// RiskScore runs 1 (fully met) to 5 (absent or critically deficient).
type ControlFinding struct {
	Domain    string `json:"domain"`
	Framework string `json:"framework"`
	ControlID string `json:"control_id"`
	Status    string `json:"status"`
	Finding   string `json:"finding"`
	Evidence  string `json:"evidence"`
	RiskScore int    `json:"risk_score"`
}

var securityDomains = []DomainQuery{
	{"access_control", "MFA multi-factor authentication least privilege access management"},
	{"data_protection", "encryption at rest in transit key management data security"},
	{"incident_response", "incident response breach notification SLA detection"},
	{"vulnerability_management", "penetration testing patching vulnerability scanning CVE"},
	{"business_continuity", "disaster recovery RTO RPO backup business continuity"},
	{"supply_chain", "third party vendor assessment software composition supply chain"},
}

const securitySystemPrompt = `You are a senior information security analyst performing a vendor security risk assessment.

You will be given:
1. Security control requirements retrieved from the knowledge base (NIST CSF, SOC 2, ISO 27001).
2. Excerpts from the vendor's security documentation.

You MUST output a single JSON object — no markdown fences, no commentary — with exactly this schema:

{
  "control_findings": [
    {
      "domain": "<control domain, e.g. access_control>",
      "framework": "<e.g. NIST CSF>",
      "control_id": "<e.g. PR.AC>",
      "status": "<met|partial|not_met|not_applicable>",
      "finding": "<1-3 sentence assessment>",
      "evidence": "<quoted text from vendor document OR 'No evidence found'>",
      "risk_score": <integer 1-5>
    }
  ],
  "overall_risk": "<low|medium|high|critical>",
  "recommendation": "<approve|approve_with_conditions|reject>",
  "summary": "<2-4 sentence overall assessment>",
  "conditions": ["<remediation condition if approve_with_conditions, else empty list>"]
}

Risk score guidance (per finding):
  1 = control fully met, no gaps
  2 = minor gaps, low risk
  3 = significant gaps, medium risk
  4 = major deficiencies, high risk
  5 = control absent or critically deficient

Overall risk / recommendation guidance:
  avg score <= 2.0  -> low    -> approve
  avg score <= 3.0  -> medium -> approve_with_conditions
  avg score <= 4.0  -> high   -> approve_with_conditions or reject
  avg score > 4.0   -> critical -> reject

Be specific. Reference control IDs and cite vendor text wherever possible.`

// NewSecurityAnalyzer builds the Stage 3 security risk analyzer over the
// kb_security knowledge base. The NDA gate (vendor must be in SECURITY_REVIEW
// status) is enforced by WorkflowService before Analyze is called.
func NewSecurityAnalyzer(log *logger.Logger, client llm.Client, retriever *rag.Retriever) *Assessor[ControlFinding] {
	return NewAssessor(log, client, retriever, Config[ControlFinding]{
		Stage:         types.StageSecurity,
		KBCollection:  kb.CollectionSecurity,
		SystemPrompt:  securitySystemPrompt,
		Domains:       securityDomains,
		FindingsKey:   "control_findings",
		DomainHeading: "Security control domain",
		KBHeading:     "Control requirements (knowledge base)",
		VendorHeading: "Vendor security documentation excerpts",
		Placeholder:   "(No vendor documentation excerpts available)",
		Instruction:   "Assess the vendor's controls for this domain and return the JSON object.",
		ParseFinding: func(domain string, raw map[string]any) ControlFinding {
			return ControlFinding{
				Domain:    getString(raw, "domain", domain),
				Framework: getString(raw, "framework", ""),
				ControlID: getString(raw, "control_id", ""),
				Status:    getString(raw, "status", "not_applicable"),
				Finding:   getString(raw, "finding", ""),
				Evidence:  getString(raw, "evidence", "No evidence found"),
				RiskScore: getInt(raw, "risk_score", 3),
			}
		},
		FindingScore: func(f ControlFinding) int { return f.RiskScore },
	})
}
