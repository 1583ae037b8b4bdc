package validator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

const modificationPrompt = `
作為醫療摘要審核專家，請仔細比較逐字稿和摘要，檢測任何不一致之處。

逐字稿：
%s

當前摘要（請注意保持 Markdown 格式）：
%s

請積極檢查以下問題，即使是很小的差異也要報告：

1. **用詞差異**：摘要中的用詞是否與逐字稿完全一致？例如：「幾個月」vs「過去幾個月」
2. **細節差異**：摘要是否遺漏了逐字稿中的重要細節？
3. **表達方式**：摘要的表達是否與逐字稿的語氣和風格一致？
4. **事實不一致**：摘要中的資訊是否與逐字稿不符？
5. **數值錯誤**：摘要中的數值是否與逐字稿中的數值一致？
6. **時間錯誤**：摘要中的時間描述是否正確？

請以 JSON 格式回傳檢測結果，使用繁體中文：
{
    "modifications": [
        {
            "type": "replace|highlight|remove",
            "title": "錯誤標題",
            "description": "發現的具體錯誤",
            "original_text": "摘要中需要修改的具體文字",
            "correct_text": "應該替換成的正確文字",
            "reason": "為什麼這是錯誤的",
            "severity": "critical|high|medium|low",
            "category": "hallucination|fact_error|value_error|time_error|diagnosis_error|treatment_error"
        }
    ]
}

⚠️ 重要警告：你絕對不能破壞 Markdown 格式！⚠️

重要要求：
1. **絕對嚴禁更動 Markdown 結構**：不得修改標題格式（## 看診重點摘要）、粗體標題（**看診原因**、**診斷結果**等）、換行與空行。
2. **僅允許句內最小範圍替換**：不得把多行合併成一行，不得修改段落結構。
3. original_text 必須是摘要中實際存在的文字，且不包含換行字元。
4. correct_text 必須是基於逐字稿的正確內容，且不包含換行字元。
5. 如果檢測到幻覺內容，使用 remove 類型；若為事實錯誤，使用 replace 類型。
6. 請同時提供該 original_text 在摘要中的字元位置：start（含）與 end（不含）。
7. **請積極檢測錯誤**：即使是很小的用詞差異也要報告，不要過於保守。
8. **保持完整格式**：修改後的摘要必須保持原始的 Markdown 格式，包括標題、粗體、段落分隔。
9. **格式範例**：正確的格式應該是「## 看診重點摘要」而不是「看診重點摘要」，應該是「**看診原因**」而不是「看診原因」。
10. **如果沒有發現錯誤，請回傳空的 modifications 陣列**：{"modifications": []}

🚨 特別提醒：如果你破壞了 Markdown 格式（例如把「## 看診重點摘要」改成「看診重點摘要」），這將被視為嚴重錯誤！
`

// SmartModify validates the summary, asks the model for minimal inline
// corrections, and applies only the ones that cannot disturb the Markdown
// structure.
func (v *Validator) SmartModify(ctx context.Context, transcript, summary string) (*ModifyResult, error) {
	report, err := v.ValidateSummary(ctx, transcript, summary)
	if err != nil {
		return nil, err
	}

	modifications := v.generateModifications(ctx, transcript, summary, report)
	patched := applyInlineReplacements(summary, modifications)

	slog.Info("smart modify completed",
		"original_len", len(summary),
		"patched_len", len(patched),
		"modifications", len(modifications))

	return &ModifyResult{
		OriginalSummary:  summary,
		PatchedSummary:   patched,
		Modifications:    modifications,
		ValidationResult: report,
	}, nil
}

func (v *Validator) generateModifications(ctx context.Context, transcript, summary string, report *Report) []Modification {
	text, err := v.gen.GenerateText(ctx, fmt.Sprintf(modificationPrompt, transcript, summary))
	if err != nil {
		slog.Error("modification generation failed, falling back to rule-based detection", "error", err)
		return v.generateErrorDetection(transcript, summary, report)
	}

	var parsed struct {
		Modifications []Modification `json:"modifications"`
	}
	if err := unmarshalModelJSON(text, &parsed); err != nil {
		slog.Error("modification generation returned unparseable output", "error", err)
		return v.generateErrorDetection(transcript, summary, report)
	}

	modifications := parsed.Modifications
	for i := range modifications {
		if modifications[i].Type == "" {
			modifications[i].Type = "highlight"
		}
		if modifications[i].Severity == "" {
			modifications[i].Severity = "medium"
		}
		if modifications[i].Category == "" {
			modifications[i].Category = "fact_error"
		}
	}

	if len(modifications) == 0 {
		modifications = v.generateErrorDetection(transcript, summary, report)
	}

	if len(modifications) > 10 {
		modifications = modifications[:10]
	}
	return modifications
}

// hallucinationTerms are flagged when they appear in a summary sentence but
// nowhere in the transcript.
var hallucinationTerms = []string{"診斷", "治療", "藥物", "手術", "檢查"}

// generateErrorDetection derives modification hints from the validation
// report and a simple hallucination scan when the model produced none.
func (v *Validator) generateErrorDetection(transcript, summary string, report *Report) []Modification {
	modifications := []Modification{}

	for _, issue := range report.FactConsistency {
		if issue.Level != LevelError && issue.Level != LevelCritical {
			continue
		}
		severity := "medium"
		if issue.Level == LevelCritical {
			severity = "high"
		}
		modifications = append(modifications, Modification{
			Type:         "highlight",
			Title:        "事實不一致",
			Description:  fmt.Sprintf("摘要中的內容與逐字稿不符：%s", issue.Message),
			OriginalText: "摘要中的錯誤內容",
			CorrectText:  "逐字稿中的正確內容",
			Reason:       "摘要內容與原始逐字稿不一致",
			Severity:     severity,
			Category:     "fact_error",
		})
	}

	for _, anomaly := range report.Anomalies {
		if anomaly.Severity != "high" && anomaly.Severity != "medium" {
			continue
		}
		modifications = append(modifications, Modification{
			Type:         "highlight",
			Title:        "數值異常",
			Description:  fmt.Sprintf("數值 %s 可能異常，正常範圍：%s", anomaly.Value, anomaly.NormalRange),
			OriginalText: anomaly.Value,
			CorrectText:  fmt.Sprintf("請確認數值是否正確（正常範圍：%s）", anomaly.NormalRange),
			Reason:       "數值超出正常範圍，需要確認",
			Severity:     anomaly.Severity,
			Category:     "value_error",
		})
	}

	transcriptLower := strings.ToLower(transcript)
	for _, sentence := range strings.Split(summary, "。") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		for _, term := range hallucinationTerms {
			if strings.Contains(sentence, term) && !strings.Contains(transcriptLower, term) {
				modifications = append(modifications, Modification{
					Type:         "highlight",
					Title:        "可能的幻覺內容",
					Description:  fmt.Sprintf("摘要中提到「%s」但逐字稿中未提及", term),
					OriginalText: sentence,
					CorrectText:  "請確認此內容是否在逐字稿中出現",
					Reason:       "摘要中的內容在逐字稿中找不到對應",
					Severity:     "high",
					Category:     "hallucination",
				})
				break
			}
		}
	}

	return modifications
}

type span struct {
	start, end  int
	replacement string
}

// applyInlineReplacements applies only type=replace modifications, and only
// when the replacement cannot disturb the Markdown structure: heading and
// bold-title lines are protected, replacements never span a newline, and
// spans are applied right-to-left so positions stay valid.
func applyInlineReplacements(summary string, modifications []Modification) string {
	if len(modifications) == 0 {
		return summary
	}

	lines := splitKeepEnds(summary)

	protected := map[int]bool{}
	for idx, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "**") {
			protected[idx] = true
		}
	}

	inProtectedLine := func(start, end int) bool {
		pos := 0
		for i, line := range lines {
			next := pos + len(line)
			if start < next && end <= next {
				return protected[i]
			}
			pos = next
		}
		return false
	}

	var spans []span
	for _, mod := range modifications {
		if mod.Type != "replace" {
			continue
		}
		orig := strings.ReplaceAll(mod.OriginalText, "\n", "")
		corr := strings.ReplaceAll(mod.CorrectText, "\n", "")
		if orig == "" {
			continue
		}

		start, end := locateSpan(summary, orig, mod.Start, mod.End)
		if start == -1 {
			continue
		}
		if inProtectedLine(start, end) {
			continue
		}

		spans = append(spans, span{start: start, end: end, replacement: corr})
	}

	if len(spans) == 0 {
		return summary
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })

	text := summary
	for _, s := range spans {
		// Earlier replacements may have shrunk the text; a span that now
		// overlaps an already-patched region is dropped.
		if s.end > len(text) {
			continue
		}
		segment := text[s.start:s.end]
		if strings.Contains(segment, "\n") {
			continue
		}
		text = text[:s.start] + s.replacement + text[s.end:]
	}

	return text
}

// locateSpan resolves a modification to byte offsets in summary. The model
// reports character positions, so Start/End are trusted only when they point
// at original_text, first read as byte offsets and then as rune indexes.
// Otherwise the text itself is searched. Returns (-1, -1) when the
// modification cannot be placed.
func locateSpan(summary, orig string, startPtr, endPtr *int) (int, int) {
	if startPtr != nil && endPtr != nil {
		s, e := *startPtr, *endPtr
		if s >= 0 && s < e {
			if e <= len(summary) && summary[s:e] == orig {
				return s, e
			}
			runes := []rune(summary)
			if e <= len(runes) && string(runes[s:e]) == orig {
				start := len(string(runes[:s]))
				return start, start + len(orig)
			}
		}
	}
	idx := strings.Index(summary, orig)
	if idx == -1 {
		return -1, -1
	}
	return idx, idx + len(orig)
}

// splitKeepEnds splits text into lines keeping the trailing newline on each
// line, so byte positions can be mapped back to line indexes.
func splitKeepEnds(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
