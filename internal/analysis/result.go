package analysis

// Ordinal scales for worst-case aggregation. These are shared between the
// legal and security assessors and must stay exact: aggregation compares
// positions, not strings.
var riskOrder = map[string]int{
	"low":      0,
	"medium":   1,
	"high":     2,
	"critical": 3,
}

var recommendationOrder = map[string]int{
	"approve":                 0,
	"approve_with_conditions": 1,
	"reject":                  2,
}

// Report is the aggregated outcome of one analyzer run. Payload carries the
// stage-specific shape (findings under the configured key, plus risk_score
// for the security variant) ready to persist into Review.ai_output.
type Report struct {
	OverallRisk    string
	Recommendation string
	Summary        string
	Conditions     []string
	RiskScore      *float64
	Payload        map[string]any
}
