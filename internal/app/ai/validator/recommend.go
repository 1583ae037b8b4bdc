package validator

import "fmt"

// Recommendation is an aggregated improvement suggestion derived from a
// validation report.
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// BuildRecommendations rolls the report's findings up into actionable
// suggestions for the reviewing doctor.
func BuildRecommendations(report *Report) []Recommendation {
	recommendations := []Recommendation{}

	if len(report.FactConsistency) > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:        "fact_consistency",
			Priority:    "high",
			Title:       "事實一致性問題",
			Description: fmt.Sprintf("發現 %d 個事實一致性問題，建議重新檢查摘要內容", len(report.FactConsistency)),
			Actions:     []string{"檢查症狀描述是否準確", "確認數值是否正確", "驗證診斷建議的合理性"},
		})
	}

	if len(report.MissingAlerts) > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:        "missing_information",
			Priority:    "medium",
			Title:       "資訊遺漏提醒",
			Description: fmt.Sprintf("可能遺漏 %d 項重要資訊", len(report.MissingAlerts)),
			Actions:     []string{"檢查是否包含所有重要症狀", "確認生命徵象完整性", "補充必要的病史資訊"},
		})
	}

	if len(report.Anomalies) > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:        "anomalous_values",
			Priority:    "high",
			Title:       "異常數值檢測",
			Description: fmt.Sprintf("發現 %d 個異常數值", len(report.Anomalies)),
			Actions:     []string{"重新確認數值準確性", "檢查測量單位", "考慮是否需要重新測量"},
		})
	}

	if report.OverallScore < 70 {
		recommendations = append(recommendations, Recommendation{
			Type:        "overall_quality",
			Priority:    "critical",
			Title:       "摘要品質需要改善",
			Description: fmt.Sprintf("整體品質分數為 %d，建議大幅修改摘要內容", report.OverallScore),
			Actions:     []string{"重新生成摘要", "手動檢查所有內容", "尋求同事協助審核"},
		})
	} else if report.OverallScore < 85 {
		recommendations = append(recommendations, Recommendation{
			Type:        "overall_quality",
			Priority:    "medium",
			Title:       "摘要品質可進一步提升",
			Description: fmt.Sprintf("整體品質分數為 %d，建議進行小幅調整", report.OverallScore),
			Actions:     []string{"檢查標記的問題", "補充遺漏資訊", "確認異常數值"},
		})
	}

	return recommendations
}
