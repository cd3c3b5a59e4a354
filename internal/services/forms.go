package services

// Human-submitted form payloads for Stage 1 (Use Case) and Stage 4
// (Financial Risk). Binding tags drive gin validation; failures surface as a
// per-field error list with status 422.

const (
	RecommendationProceed      = "PROCEED"
	RecommendationDoNotProceed = "DO_NOT_PROCEED"

	FinancialAcceptable               = "ACCEPTABLE"
	FinancialAcceptableWithConditions = "ACCEPTABLE_WITH_CONDITIONS"
	FinancialUnacceptable             = "UNACCEPTABLE"
)

type UseCaseFormInput struct {
	UseCaseDescription     string   `json:"use_case_description" binding:"required"`
	BusinessJustification  string   `json:"business_justification" binding:"required"`
	DataTypesInvolved      []string `json:"data_types_involved" binding:"required"`
	EstimatedUsers         int      `json:"estimated_users" binding:"required,min=1"`
	AlternativesConsidered string   `json:"alternatives_considered" binding:"required"`
	ReviewerName           string   `json:"reviewer_name" binding:"required"`
	Recommendation         string   `json:"recommendation" binding:"required,oneof=PROCEED DO_NOT_PROCEED"`
	Notes                  string   `json:"notes,omitempty"`
}

type FinancialRiskFormInput struct {
	VendorAnnualRevenue          string   `json:"vendor_annual_revenue,omitempty"`
	YearsInOperation             int      `json:"years_in_operation,omitempty"`
	FinancialDocumentsReviewed   []string `json:"financial_documents_reviewed" binding:"required"`
	ConcentrationRiskFlag        bool     `json:"concentration_risk_flag"`
	FinancialStabilityAssessment string   `json:"financial_stability_assessment" binding:"required,oneof=STABLE CONCERN HIGH_RISK"`
	ContractValue                string   `json:"contract_value,omitempty"`
	ReviewerName                 string   `json:"reviewer_name" binding:"required"`
	Recommendation               string   `json:"recommendation" binding:"required,oneof=ACCEPTABLE ACCEPTABLE_WITH_CONDITIONS UNACCEPTABLE"`
	Conditions                   []string `json:"conditions,omitempty"`
	Notes                        string   `json:"notes,omitempty"`
}
