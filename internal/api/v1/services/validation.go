package services

import (
	"context"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/ai/validator"
	"github.com/willyyyaj/medical-system/internal/app/markdown"
	"github.com/willyyyaj/medical-system/internal/app/model"
)

// ValidationServiceImpl implements ValidationService
type ValidationServiceImpl struct {
	validator *validator.Validator
}

// NewValidationService creates a new validation service. v may be nil when
// no AI key is configured.
func NewValidationService(v *validator.Validator) ValidationService {
	return &ValidationServiceImpl{validator: v}
}

// ValidateSummary runs the QA checks and attaches improvement
// recommendations.
func (s *ValidationServiceImpl) ValidateSummary(ctx context.Context, user model.User, req *dto.ValidateSummaryRequest) (*dto.ValidateSummaryResponse, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}
	if s.validator == nil {
		return nil, errors.NewInternalError("Validation model is not configured")
	}

	report, err := s.validator.ValidateSummary(ctx, req.Transcript, req.Summary)
	if err != nil {
		return nil, errors.NewInternalError("Summary validation failed")
	}

	return &dto.ValidateSummaryResponse{
		FactConsistency: report.FactConsistency,
		Highlights:      report.Highlights,
		MissingAlerts:   report.MissingAlerts,
		Anomalies:       report.Anomalies,
		OverallScore:    report.OverallScore,
		Recommendations: validator.BuildRecommendations(report),
	}, nil
}

// SmartModify corrects the summary in place. The summary is normalized to
// the fixed Markdown layout before and after patching so heading structure
// survives the edit.
func (s *ValidationServiceImpl) SmartModify(ctx context.Context, user model.User, req *dto.SmartModifyRequest) (*validator.ModifyResult, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}
	if s.validator == nil {
		return nil, errors.NewInternalError("Validation model is not configured")
	}

	normalized := markdown.NormalizeSummary(req.Summary)
	result, err := s.validator.SmartModify(ctx, req.Transcript, normalized)
	if err != nil {
		return nil, errors.NewInternalError("Smart modify failed")
	}
	if result.PatchedSummary != "" {
		result.PatchedSummary = markdown.NormalizeSummary(result.PatchedSummary)
	}
	return result, nil
}

// Stats describes the validation capabilities currently active.
func (s *ValidationServiceImpl) Stats(user model.User) (*dto.ValidationStatsResponse, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}

	status := "active"
	if s.validator == nil {
		status = "disabled"
	}
	return &dto.ValidationStatsResponse{
		AIAgentStatus: status,
		SupportedValidations: []string{
			"事實一致性校驗",
			"關鍵資訊高亮",
			"潛在遺漏提醒",
			"異常數值標記",
		},
		ValidationCategories: []string{
			"symptom_mismatch",
			"value_error",
			"diagnosis_inconsistency",
			"treatment_unfounded",
			"vital_signs",
			"lab_values",
			"medications",
			"symptoms",
			"diagnosis",
			"treatment",
		},
	}, nil
}
