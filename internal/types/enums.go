package types

// VendorStatus is the vendor's position in the onboarding state machine.
// NDA_PENDING is declared for parity with the product's status vocabulary but
// no transition currently assigns it; the NDA gate moves LEGAL_APPROVED
// directly to SECURITY_REVIEW.
type VendorStatus string

const (
	VendorIntake            VendorStatus = "INTAKE"
	VendorUseCaseReview     VendorStatus = "USE_CASE_REVIEW"
	VendorUseCaseApproved   VendorStatus = "USE_CASE_APPROVED"
	VendorLegalReview       VendorStatus = "LEGAL_REVIEW"
	VendorLegalApproved     VendorStatus = "LEGAL_APPROVED"
	VendorNDAPending        VendorStatus = "NDA_PENDING"
	VendorSecurityReview    VendorStatus = "SECURITY_REVIEW"
	VendorSecurityApproved  VendorStatus = "SECURITY_APPROVED"
	VendorFinancialReview   VendorStatus = "FINANCIAL_REVIEW"
	VendorFinancialApproved VendorStatus = "FINANCIAL_APPROVED"
	VendorOnboarded         VendorStatus = "ONBOARDED"
	VendorRejected          VendorStatus = "REJECTED"
)

// ReviewStage names one of the four sequential review phases. Documents are
// tagged with the stage they support.
type ReviewStage string

const (
	StageUseCase   ReviewStage = "USE_CASE"
	StageLegal     ReviewStage = "LEGAL"
	StageSecurity  ReviewStage = "SECURITY"
	StageFinancial ReviewStage = "FINANCIAL"
)

type ReviewType string

const (
	ReviewAIAnalysis ReviewType = "AI_ANALYSIS"
	ReviewHumanForm  ReviewType = "HUMAN_FORM"
)

type ReviewStatus string

const (
	ReviewPending    ReviewStatus = "PENDING"
	ReviewInProgress ReviewStatus = "IN_PROGRESS"
	ReviewComplete   ReviewStatus = "COMPLETE"
	ReviewError      ReviewStatus = "ERROR"
)

type DecisionAction string

const (
	ActionApprove               DecisionAction = "APPROVE"
	ActionReject                DecisionAction = "REJECT"
	ActionApproveWithConditions DecisionAction = "APPROVE_WITH_CONDITIONS"
)
