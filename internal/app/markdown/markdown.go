// Package markdown normalizes AI-generated visit summaries into the fixed
// Markdown layout the client renders.
package markdown

import (
	"regexp"
	"strings"
)

// SummaryHeading is the standardized top heading of every visit summary.
const SummaryHeading = "## 看診重點摘要"

// SectionTitles are the four bold section headings, in display order.
var SectionTitles = []string{
	"看診原因",
	"診斷結果",
	"治療計畫",
	"注意事項",
}

var (
	leadingMarkersRe = regexp.MustCompile(`^[#*\s]+`)
	trailingColonRe  = regexp.MustCompile(`[：:]+$`)
)

// normalizeLineEndings converts CRLF/CR to LF. When the text carries many
// literal \n sequences but almost no real newlines (common after JSON
// transport), the literal sequences are converted too.
func normalizeLineEndings(text string) string {
	if text == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.Count(text, `\n`) >= 3 && strings.Count(text, "\n") <= 1 {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}
	return text
}

// isHeadingVariant reports whether the line is the expected heading in any
// markdown dressing (#, **, trailing colon).
func isHeadingVariant(line, expected string) bool {
	s := strings.TrimSpace(line)
	s = leadingMarkersRe.ReplaceAllString(s, "")
	s = trailingColonRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s) == expected
}

// NormalizeSummary forces a summary into the exact expected structure
// without altering content: the standardized top heading, bold section
// titles, and single blank lines between blocks.
func NormalizeSummary(text string) string {
	if text == "" {
		return text
	}

	text = normalizeLineEndings(text)
	lines := strings.Split(text, "\n")

	firstIdx := 0
	for firstIdx < len(lines) && strings.TrimSpace(lines[firstIdx]) == "" {
		firstIdx++
	}

	result := []string{SummaryHeading, ""}

	// Skip an existing variant of the title in the original.
	i := firstIdx
	if firstIdx < len(lines) && isHeadingVariant(lines[firstIdx], "看診重點摘要") {
		i++
	}

	for i < len(lines) {
		raw := lines[i]
		stripped := strings.TrimSpace(raw)

		if stripped == "" {
			if result[len(result)-1] != "" {
				result = append(result, "")
			}
			i++
			continue
		}

		matched := ""
		for _, title := range SectionTitles {
			if isHeadingVariant(stripped, title) {
				matched = title
				break
			}
		}

		if matched != "" {
			if result[len(result)-1] != "" {
				result = append(result, "")
			}
			result = append(result, "**"+matched+"**", "")
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
				i++
			}
			continue
		}

		result = append(result, strings.TrimRight(raw, " \t"))
		i++
	}

	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}

	collapsed := make([]string, 0, len(result))
	for _, line := range result {
		if line == "" && len(collapsed) > 0 && collapsed[len(collapsed)-1] == "" {
			continue
		}
		collapsed = append(collapsed, line)
	}

	return strings.Join(collapsed, "\n")
}
