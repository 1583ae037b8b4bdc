package dto

import "github.com/willyyyaj/medical-system/internal/app/ai/validator"

// ValidateSummaryRequest carries a transcript/summary pair to cross-check.
type ValidateSummaryRequest struct {
	Transcript string `json:"transcript" binding:"required"`
	Summary    string `json:"summary" binding:"required"`
}

// SmartModifyRequest carries a transcript/summary pair for automatic
// correction.
type SmartModifyRequest struct {
	Transcript string `json:"transcript" binding:"required"`
	Summary    string `json:"summary" binding:"required"`
}

// ValidateSummaryResponse is the full QA report plus improvement
// recommendations.
type ValidateSummaryResponse struct {
	FactConsistency []validator.Issue          `json:"fact_consistency"`
	Highlights      []validator.Highlight      `json:"highlights"`
	MissingAlerts   []validator.Issue          `json:"missing_alerts"`
	Anomalies       []validator.Anomaly        `json:"anomalies"`
	OverallScore    int                        `json:"overall_score"`
	Recommendations []validator.Recommendation `json:"recommendations"`
}

// ValidationStatsResponse describes the validation capabilities on offer.
type ValidationStatsResponse struct {
	AIAgentStatus        string   `json:"ai_agent_status"`
	SupportedValidations []string `json:"supported_validations"`
	ValidationCategories []string `json:"validation_categories"`
}
