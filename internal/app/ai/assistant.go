package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/willyyyaj/medical-system/internal/app/markdown"
)

// Prompts are in Traditional Chinese because the generated content is shown
// to patients as-is.
const visitSummaryPrompt = `
角色：你是一位有耐心、善於溝通的家庭醫師或衛教護理師。你的專長是將複雜的醫療資訊，用溫暖、簡單易懂的語言解釋給病患聽。

任務：請將以下的「醫病對話逐字稿」，轉換成一份給病患本人看的「看診重點摘要」。這份摘要的目的是幫助病患回家後，能清楚回顧看診內容、了解自己的狀況並遵循醫囑。

⚠️ 格式要求（必須嚴格遵守）：

你必須使用以下 EXACT 格式，不得有任何偏差：

## 看診重點摘要

**看診原因**
[內容]

**診斷結果**
[內容]

**治療計畫**
[內容]

**注意事項**
[內容]

🚨 重要警告：
1. 標題必須是「## 看診重點摘要」（包含兩個井號和空格）
2. 小標題必須是「**看診原因**」、「**診斷結果**」、「**治療計畫**」、「**注意事項**」（包含兩個星號）
3. 每個部分之間必須有空行分隔
4. 絕對不能省略 Markdown 格式符號（## 和 **）
5. 如果你不按照這個格式，就是錯誤的！

內容指引：
- 用1-2個段落描述每個部分
- 用白話解釋，避免專業術語
- 嚴格基於逐字稿，不添加額外資訊
- 重點突出最重要的診斷、治療和注意事項

醫病對話逐字稿：
---
%s
---

請嚴格按照上述格式生成摘要，開始：
`

const soapSummaryPrompt = `
角色：你是一位專業的醫療記錄專家，專門將醫病對話逐字稿轉換成標準的 SOAP 格式醫療記錄。

任務：請將以下的「醫病對話逐字稿」，轉換成標準的 SOAP 格式醫療記錄。

SOAP 格式說明：
- S (Subjective): 主觀症狀 - 病患描述的主訴、症狀、感受
- O (Objective): 客觀發現 - 醫師觀察到的客觀事實、檢查結果、生命徵象
- A (Assessment): 評估 - 醫師的診斷、判斷、分析
- P (Plan): 計畫 - 治療計畫、用藥、追蹤、衛教

重要規則：
1. 嚴格按照 SOAP 格式分類資訊
2. 使用專業但簡潔的醫療術語
3. 內容必須基於逐字稿，不可添加額外資訊
4. 使用繁體中文
5. 每個部分都要有具體內容，如果某部分沒有資訊則標註「無」

醫病對話逐字稿：
---
%s
---

請按照以下 JSON 格式回傳 SOAP 摘要：
{
    "subjective": "主觀症狀內容",
    "objective": "客觀發現內容",
    "assessment": "評估內容",
    "plan": "計畫內容"
}
`

const educationTagsPrompt = `
角色：你是一個專業的醫療衛教助理。
任務：請仔細分析以下的「看診摘要」，從中提取出所有對病患有用的衛教關鍵字。
關鍵字類型應包含：
- 疾病或症狀 (例如: 高血壓, 頭暈)
- 飲食建議 (例如: 少鹽飲食, 戒酒, 地瓜)
- 生活作息建議 (例如: 規律運動, 充足睡眠)
- 藥物名稱或類型 (例如: 阿斯匹靈, 降血糖藥)
- 追蹤指標 (例如: 血糖監測, 血壓測量)
輸出規則：
- 每個關鍵字都是一個簡短的詞語。
- 所有關鍵字合併成一個單一的字串。
- 關鍵字之間用「英文逗號」分隔。
- 不要包含 # 符號。
- 除了逗號分隔的關鍵字字串，不要有任何其他文字或解釋。
看診摘要：
---
%s
---
請生成關鍵字字串：
`

// SOAPSummary is the structured clinical record extracted from a visit
// transcript.
type SOAPSummary struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Assistant runs the clinic's generative workflows over a TextGenerator.
type Assistant struct {
	gen TextGenerator
}

// NewAssistant creates an Assistant on top of the given generator.
func NewAssistant(gen TextGenerator) *Assistant {
	return &Assistant{gen: gen}
}

// SummarizeVisit turns a visit transcript into the patient-facing Markdown
// summary, normalized into the fixed layout.
func (a *Assistant) SummarizeVisit(ctx context.Context, transcript string) (string, error) {
	text, err := a.gen.GenerateText(ctx, fmt.Sprintf(visitSummaryPrompt, transcript))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown.NormalizeSummary(text)), nil
}

// GenerateEducationTags extracts a comma-separated keyword string from an
// approved summary.
func (a *Assistant) GenerateEducationTags(ctx context.Context, summary string) (string, error) {
	text, err := a.gen.GenerateText(ctx, fmt.Sprintf(educationTagsPrompt, summary))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*")

// GenerateSOAP turns a visit transcript into a SOAP record. When the model
// does not return clean JSON, the response is parsed by section keywords.
func (a *Assistant) GenerateSOAP(ctx context.Context, transcript string) (*SOAPSummary, error) {
	text, err := a.gen.GenerateText(ctx, fmt.Sprintf(soapSummaryPrompt, transcript))
	if err != nil {
		return nil, err
	}

	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))

	var soap SOAPSummary
	if err := json.Unmarshal([]byte(cleaned), &soap); err == nil {
		return &soap, nil
	}

	return parseSOAPText(cleaned), nil
}

// parseSOAPText salvages a SOAP record from non-JSON model output by
// scanning for section keywords.
func parseSOAPText(text string) *SOAPSummary {
	soap := &SOAPSummary{
		Subjective: "無主觀症狀描述",
		Objective:  "無客觀發現",
		Assessment: "無評估結果",
		Plan:       "無治療計畫",
	}

	sections := map[string][]string{
		"subjective": {"subjective", "主觀", "s:", "症狀"},
		"objective":  {"objective", "客觀", "o:", "發現"},
		"assessment": {"assessment", "評估", "a:", "診斷"},
		"plan":       {"plan", "計畫", "p:", "治療"},
	}

	lower := strings.ToLower(text)
	for section, keywords := range sections {
		for _, keyword := range keywords {
			start := strings.Index(lower, keyword)
			if start == -1 {
				continue
			}

			content := extractSectionContent(text[start:], section, sections)
			if content != "" {
				switch section {
				case "subjective":
					soap.Subjective = content
				case "objective":
					soap.Objective = content
				case "assessment":
					soap.Assessment = content
				case "plan":
					soap.Plan = content
				}
			}
			break
		}
	}

	return soap
}

// extractSectionContent collects lines after the keyword line until a line
// that belongs to a different section starts.
func extractSectionContent(remaining, section string, sections map[string][]string) string {
	lines := strings.Split(remaining, "\n")
	var content []string

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if belongsToOtherSection(line, section, sections) {
			break
		}
		content = append(content, line)
	}

	return strings.Join(content, "\n")
}

func belongsToOtherSection(line, section string, sections map[string][]string) bool {
	lower := strings.ToLower(line)
	for other, keywords := range sections {
		if other == section {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
	}
	return false
}
