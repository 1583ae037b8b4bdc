// Package validator is the summary QA agent: it cross-checks an AI visit
// summary against its transcript, flags anomalous vital signs, scores the
// result, and can apply structure-safe corrections.
package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/willyyyaj/medical-system/internal/app/ai"
)

// Level grades how serious a finding is.
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Issue is a single validation finding.
type Issue struct {
	Level      Level  `json:"level"`
	Message    string `json:"message"`
	Category   string `json:"category"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Highlight marks a span of key medical information inside the summary.
type Highlight struct {
	Text       string  `json:"text"`
	StartPos   int     `json:"start_pos"`
	EndPos     int     `json:"end_pos"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Importance string  `json:"importance"`
}

// Anomaly is a vital-sign value outside its normal range.
type Anomaly struct {
	Value       string `json:"value"`
	NormalRange string `json:"normal_range"`
	Severity    string `json:"severity"`
	Suggestion  string `json:"suggestion"`
	Position    [2]int `json:"position"`
}

// Report is the full validation result for one summary.
type Report struct {
	FactConsistency []Issue     `json:"fact_consistency"`
	Highlights      []Highlight `json:"highlights"`
	MissingAlerts   []Issue     `json:"missing_alerts"`
	Anomalies       []Anomaly   `json:"anomalies"`
	OverallScore    int         `json:"overall_score"`
}

// Modification is one suggested correction to the summary.
type Modification struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	OriginalText string `json:"original_text"`
	CorrectText  string `json:"correct_text"`
	Reason       string `json:"reason"`
	Severity     string `json:"severity"`
	Category     string `json:"category"`
	Start        *int   `json:"start,omitempty"`
	End          *int   `json:"end,omitempty"`
}

// ModifyResult is the outcome of a smart-modify run.
type ModifyResult struct {
	OriginalSummary  string         `json:"original_summary"`
	PatchedSummary   string         `json:"patched_summary"`
	Modifications    []Modification `json:"modifications"`
	ValidationResult *Report        `json:"validation_result"`
}

// Validator runs the QA checks over a TextGenerator.
type Validator struct {
	gen ai.TextGenerator
}

// New creates a Validator on top of the given generator.
func New(gen ai.TextGenerator) *Validator {
	return &Validator{gen: gen}
}

// ValidateSummary runs the four checks and computes the overall score.
// Individual model-backed checks degrade gracefully: a failed fact check is
// reported as an error finding, failed highlight/missing checks yield empty
// lists.
func (v *Validator) ValidateSummary(ctx context.Context, transcript, summary string) (*Report, error) {
	report := &Report{}

	report.FactConsistency = v.factConsistencyCheck(ctx, transcript, summary)
	report.Highlights = v.extractHighlights(ctx, summary)
	report.MissingAlerts = v.detectMissingInformation(ctx, transcript, summary)
	report.Anomalies = DetectAnomalies(summary)
	report.OverallScore = calculateOverallScore(report.FactConsistency, report.MissingAlerts, report.Anomalies)

	return report, nil
}

const factConsistencyPrompt = `
作為醫療摘要品質控制專家，請檢查以下摘要是否與原始對話逐字稿一致：

原始對話逐字稿：
---
%s
---

生成的摘要：
---
%s
---

請檢查以下項目：
1. 症狀描述是否一致
2. 數值是否準確
3. 診斷建議是否基於原始內容
4. 治療計畫是否合理

請以 JSON 格式回傳結果，使用繁體中文：
{
    "consistency_score": 0-100,
    "issues": [
        {
            "type": "symptom_mismatch|value_error|diagnosis_inconsistency|treatment_unfounded",
            "severity": "low|medium|high|critical",
            "description": "具體問題描述，請詳細說明哪裡不一致",
            "suggestion": "具體的改善建議，請說明如何修正"
        }
    ]
}
`

func (v *Validator) factConsistencyCheck(ctx context.Context, transcript, summary string) []Issue {
	text, err := v.gen.GenerateText(ctx, fmt.Sprintf(factConsistencyPrompt, transcript, summary))
	if err != nil {
		slog.Error("fact consistency check failed", "error", err)
		return []Issue{{
			Level:    LevelError,
			Message:  fmt.Sprintf("事實一致性校驗失敗: %v", err),
			Category: "validation_error",
		}}
	}

	var parsed struct {
		Issues []struct {
			Type        string `json:"type"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Suggestion  string `json:"suggestion"`
		} `json:"issues"`
	}
	if err := unmarshalModelJSON(text, &parsed); err != nil {
		slog.Error("fact consistency check returned unparseable output", "error", err)
		return []Issue{{
			Level:    LevelError,
			Message:  fmt.Sprintf("事實一致性校驗失敗: %v", err),
			Category: "validation_error",
		}}
	}

	issues := []Issue{}
	for _, issue := range parsed.Issues {
		issues = append(issues, Issue{
			Level:      severityToLevel(issue.Severity),
			Message:    issue.Description,
			Category:   issue.Type,
			Suggestion: issue.Suggestion,
		})
	}
	return issues
}

const highlightPrompt = `
作為醫療資訊專家，請從以下摘要中識別並標記關鍵醫療資訊：

摘要內容：
---
%s
---

請識別以下類型的關鍵資訊：
1. 生命徵象數值（血壓、心率、體溫、呼吸頻率等）
2. 實驗室檢查結果（血糖、膽固醇、血紅素等）
3. 藥物名稱和劑量
4. 重要症狀描述
5. 診斷結果
6. 治療建議

請以 JSON 格式回傳，使用繁體中文：
{
    "highlights": [
        {
            "text": "識別到的關鍵資訊",
            "start_pos": 起始位置,
            "end_pos": 結束位置,
            "category": "vital_signs|lab_values|medications|symptoms|diagnosis|treatment",
            "confidence": 0.0-1.0,
            "importance": "low|medium|high|critical"
        }
    ]
}
`

func (v *Validator) extractHighlights(ctx context.Context, summary string) []Highlight {
	text, err := v.gen.GenerateText(ctx, fmt.Sprintf(highlightPrompt, summary))
	if err != nil {
		slog.Error("key information highlighting failed", "error", err)
		return []Highlight{}
	}

	var parsed struct {
		Highlights []Highlight `json:"highlights"`
	}
	if err := unmarshalModelJSON(text, &parsed); err != nil {
		slog.Error("highlight extraction returned unparseable output", "error", err)
		return []Highlight{}
	}
	if parsed.Highlights == nil {
		return []Highlight{}
	}
	return parsed.Highlights
}

const missingInfoPrompt = `
作為醫療品質控制專家，請檢查摘要是否遺漏了重要資訊：

原始對話逐字稿：
---
%s
---

生成的摘要：
---
%s
---

請檢查是否遺漏以下重要資訊，並詳細說明缺漏的具體內容：
1. 重要症狀描述（症狀的詳細描述、持續時間、嚴重程度等）
2. 關鍵生命徵象（血壓、心率、體溫、呼吸頻率、血氧飽和度等）
3. 藥物過敏史（過敏藥物名稱、過敏反應類型等）
4. 既往病史（過去疾病、手術史、慢性病等）
5. 家族病史（家族遺傳疾病、相關疾病史等）
6. 社會史（吸菸、飲酒、職業暴露、生活習慣等）

請以 JSON 格式回傳，使用繁體中文，並詳細說明缺漏的具體內容：
{
    "missing_items": [
        {
            "type": "symptom|vital_sign|allergy|medical_history|family_history|social_history",
            "severity": "low|medium|high|critical",
            "description": "詳細說明缺漏的具體資訊內容",
            "suggestion": "具體建議如何補充這些資訊"
        }
    ]
}
`

func (v *Validator) detectMissingInformation(ctx context.Context, transcript, summary string) []Issue {
	text, err := v.gen.GenerateText(ctx, fmt.Sprintf(missingInfoPrompt, transcript, summary))
	if err != nil {
		slog.Error("missing information detection failed", "error", err)
		return []Issue{}
	}

	var parsed struct {
		MissingItems []struct {
			Type        string `json:"type"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Suggestion  string `json:"suggestion"`
		} `json:"missing_items"`
	}
	if err := unmarshalModelJSON(text, &parsed); err != nil {
		slog.Error("missing information detection returned unparseable output", "error", err)
		return []Issue{}
	}

	alerts := []Issue{}
	for _, item := range parsed.MissingItems {
		alerts = append(alerts, Issue{
			Level:      severityToLevel(item.Severity),
			Message:    fmt.Sprintf("可能遺漏: %s", item.Description),
			Category:   item.Type,
			Suggestion: item.Suggestion,
		})
	}
	return alerts
}

// severityToLevel maps model severities to validation levels: low →
// warning, medium/high → error, anything else (critical) → critical.
func severityToLevel(severity string) Level {
	switch severity {
	case "low":
		return LevelWarning
	case "medium", "high":
		return LevelError
	default:
		return LevelCritical
	}
}

// calculateOverallScore starts from 100 and deducts per finding.
func calculateOverallScore(factCheck, missingAlerts []Issue, anomalies []Anomaly) int {
	score := 100

	for _, issue := range factCheck {
		switch issue.Level {
		case LevelCritical:
			score -= 20
		case LevelError:
			score -= 10
		case LevelWarning:
			score -= 5
		}
	}

	for _, alert := range missingAlerts {
		switch alert.Level {
		case LevelCritical:
			score -= 15
		case LevelError:
			score -= 8
		case LevelWarning:
			score -= 3
		}
	}

	for _, anomaly := range anomalies {
		switch anomaly.Severity {
		case "high":
			score -= 12
		case "medium":
			score -= 6
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

var jsonFenceRe = regexp.MustCompile("```(?:json)?\\s*")

// unmarshalModelJSON extracts the JSON object embedded in free-form model
// output (code fences, leading prose) and unmarshals it.
func unmarshalModelJSON(text string, target interface{}) error {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		text = text[start : end+1]
	}

	text = strings.TrimSpace(jsonFenceRe.ReplaceAllString(text, ""))

	if err := json.Unmarshal([]byte(text), target); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}
