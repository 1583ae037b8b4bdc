package dto

import "github.com/willyyyaj/medical-system/internal/app/ai"

// SummarizeRequest carries the consultation transcript to summarize.
type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// SummaryResponse is the patient-facing visit summary in Markdown.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// TranscribeResponse is the speech-to-text result for an uploaded recording.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// SOAPRequest carries the transcript to convert into a SOAP record.
type SOAPRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// SOAPResponse is the structured medical record.
type SOAPResponse = ai.SOAPSummary
