package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestApplyInlineReplacements_NoModifications(t *testing.T) {
	summary := "## 看診重點摘要\n\n內容"

	assert.Equal(t, summary, applyInlineReplacements(summary, nil))
}

func TestApplyInlineReplacements_ReplaceByText(t *testing.T) {
	summary := "## 看診重點摘要\n\n**看診原因**\n\n病患主訴頭痛兩天。"

	patched := applyInlineReplacements(summary, []Modification{{
		Type:         "replace",
		OriginalText: "兩天",
		CorrectText:  "三天",
	}})

	assert.Contains(t, patched, "頭痛三天")
	assert.NotContains(t, patched, "兩天")
}

func TestApplyInlineReplacements_ReplaceByPosition(t *testing.T) {
	summary := "line one\nvalue 120\nline three"
	start := strings.Index(summary, "120")

	patched := applyInlineReplacements(summary, []Modification{{
		Type:         "replace",
		OriginalText: "120",
		CorrectText:  "130",
		Start:        intPtr(start),
		End:          intPtr(start + 3),
	}})

	assert.Contains(t, patched, "value 130")
}

func TestApplyInlineReplacements_ProtectsHeadings(t *testing.T) {
	summary := "## 看診重點摘要\n\n**看診原因**\n\n頭痛"

	patched := applyInlineReplacements(summary, []Modification{
		{Type: "replace", OriginalText: "看診重點摘要", CorrectText: "別的標題"},
		{Type: "replace", OriginalText: "看診原因", CorrectText: "別的小節"},
	})

	// Heading and bold-title lines must never change.
	assert.Equal(t, summary, patched)
}

func TestApplyInlineReplacements_IgnoresNonReplaceTypes(t *testing.T) {
	summary := "病患主訴頭痛兩天。"

	patched := applyInlineReplacements(summary, []Modification{
		{Type: "highlight", OriginalText: "兩天", CorrectText: "三天"},
		{Type: "remove", OriginalText: "兩天", CorrectText: ""},
	})

	assert.Equal(t, summary, patched)
}

func TestApplyInlineReplacements_SkipsMissingText(t *testing.T) {
	summary := "病患主訴頭痛。"

	patched := applyInlineReplacements(summary, []Modification{{
		Type:         "replace",
		OriginalText: "不存在的文字",
		CorrectText:  "whatever",
	}})

	assert.Equal(t, summary, patched)
}

func TestApplyInlineReplacements_OverlappingSpansDoNotPanic(t *testing.T) {
	// 100 bytes, one line. The right-most span deletes its text, shrinking
	// the summary below the second span's end offset; that span is dropped
	// instead of sliced out of range.
	summary := strings.Repeat("a", 50) + strings.Repeat("b", 45) + strings.Repeat("c", 5)

	patched := applyInlineReplacements(summary, []Modification{
		{
			Type:         "replace",
			OriginalText: summary[90:100],
			CorrectText:  "",
			Start:        intPtr(90),
			End:          intPtr(100),
		},
		{
			Type:         "replace",
			OriginalText: summary[50:95],
			CorrectText:  "z",
			Start:        intPtr(50),
			End:          intPtr(95),
		},
	})

	assert.Equal(t, strings.Repeat("a", 50)+strings.Repeat("b", 40), patched)
}

func TestApplyInlineReplacements_RunePositions(t *testing.T) {
	summary := "病患主訴頭痛兩天，已服用止痛藥。"

	// 「兩天」 sits at rune indexes 6..8 (byte offsets 18..24). The model
	// counts characters, not bytes.
	patched := applyInlineReplacements(summary, []Modification{{
		Type:         "replace",
		OriginalText: "兩天",
		CorrectText:  "三天",
		Start:        intPtr(6),
		End:          intPtr(8),
	}})

	assert.Contains(t, patched, "頭痛三天")
	assert.NotContains(t, patched, "兩天")
}

func TestApplyInlineReplacements_WrongPositionsFallBackToText(t *testing.T) {
	summary := "病患主訴頭痛兩天，已服用止痛藥。"

	// Positions that point at neither the bytes nor the runes of
	// original_text must not corrupt unrelated text.
	patched := applyInlineReplacements(summary, []Modification{{
		Type:         "replace",
		OriginalText: "兩天",
		CorrectText:  "三天",
		Start:        intPtr(0),
		End:          intPtr(2),
	}})

	assert.Contains(t, patched, "病患主訴")
	assert.Contains(t, patched, "頭痛三天")
}

func TestApplyInlineReplacements_MultipleSpansRightToLeft(t *testing.T) {
	summary := "血壓 150，心率 110，其他正常。"

	patched := applyInlineReplacements(summary, []Modification{
		{Type: "replace", OriginalText: "150", CorrectText: "120"},
		{Type: "replace", OriginalText: "110", CorrectText: "72"},
	})

	assert.Contains(t, patched, "血壓 120")
	assert.Contains(t, patched, "心率 72")
}

func TestSplitKeepEnds(t *testing.T) {
	lines := splitKeepEnds("a\nbb\nccc")

	require.Equal(t, []string{"a\n", "bb\n", "ccc"}, lines)
	assert.Equal(t, "a\nbb\nccc", strings.Join(lines, ""))
}

func TestGenerateErrorDetection_Hallucination(t *testing.T) {
	v := New(&scriptedGenerator{})
	transcript := "醫師：最近睡得好嗎？病患：還可以。"
	summary := "病患接受手術後恢復良好。"

	mods := v.generateErrorDetection(transcript, summary, &Report{})

	require.Len(t, mods, 1)
	assert.Equal(t, "hallucination", mods[0].Category)
	assert.Contains(t, mods[0].Description, "手術")
}

func TestGenerateErrorDetection_FromReport(t *testing.T) {
	v := New(&scriptedGenerator{})
	report := &Report{
		FactConsistency: []Issue{
			{Level: LevelCritical, Message: "數值不符"},
			{Level: LevelInfo, Message: "僅供參考"},
		},
		Anomalies: []Anomaly{{Severity: "high", Value: "190/120", NormalRange: "90-140/60-90"}},
	}

	mods := v.generateErrorDetection("逐字稿", "摘要", report)

	require.Len(t, mods, 2)
	assert.Equal(t, "fact_error", mods[0].Category)
	assert.Equal(t, "high", mods[0].Severity)
	assert.Equal(t, "value_error", mods[1].Category)
}
