package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSummary_EmptyInput(t *testing.T) {
	assert.Equal(t, "", NormalizeSummary(""))
}

func TestNormalizeSummary_AddsStandardHeading(t *testing.T) {
	out := NormalizeSummary("病患主訴頭痛三天。")

	lines := strings.Split(out, "\n")
	assert.Equal(t, SummaryHeading, lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "病患主訴頭痛三天。", lines[2])
}

func TestNormalizeSummary_ReplacesHeadingVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"h1 heading", "# 看診重點摘要\n內容"},
		{"bold heading", "**看診重點摘要**\n內容"},
		{"trailing colon", "看診重點摘要：\n內容"},
		{"leading blank lines", "\n\n## 看診重點摘要\n內容"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NormalizeSummary(tt.input)
			assert.True(t, strings.HasPrefix(out, SummaryHeading+"\n"))
			// The original heading must not survive as a second copy.
			assert.Equal(t, 1, strings.Count(out, "看診重點摘要"))
			assert.Contains(t, out, "內容")
		})
	}
}

func TestNormalizeSummary_BoldsSectionTitles(t *testing.T) {
	input := "### 看診原因\n頭痛\n\n診斷結果：\n偏頭痛"

	out := NormalizeSummary(input)

	assert.Contains(t, out, "**看診原因**")
	assert.Contains(t, out, "**診斷結果**")
	assert.NotContains(t, out, "###")
	assert.NotContains(t, out, "診斷結果：")
}

func TestNormalizeSummary_CollapsesBlankLines(t *testing.T) {
	input := "看診原因\n\n\n\n頭痛\n\n\n"

	out := NormalizeSummary(input)

	assert.NotContains(t, out, "\n\n\n")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestNormalizeSummary_ConvertsLiteralNewlines(t *testing.T) {
	// Text that went through JSON transport carries \n as two characters.
	input := `看診原因\n頭痛\n\n診斷結果\n偏頭痛`

	out := NormalizeSummary(input)

	assert.Contains(t, out, "**看診原因**")
	assert.Contains(t, out, "**診斷結果**")
	assert.NotContains(t, out, `\n`)
}

func TestNormalizeSummary_CRLFInput(t *testing.T) {
	out := NormalizeSummary("看診原因\r\n頭痛")

	assert.NotContains(t, out, "\r")
	assert.Contains(t, out, "**看診原因**")
}
