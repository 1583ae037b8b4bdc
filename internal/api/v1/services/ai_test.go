package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/ai"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

type fakeTranscriber struct {
	transcript string
	err        error
	lastPath   string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filePath string) (string, error) {
	f.lastPath = filePath
	return f.transcript, f.err
}

type fakeArchive struct {
	key      string
	err      error
	archived []string
}

func (f *fakeArchive) Archive(ctx context.Context, localPath, originalName string) (string, error) {
	f.archived = append(f.archived, originalName)
	return f.key, f.err
}

func TestSummarize(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")

	assistant := ai.NewAssistant(&fixedGenerator{text: "病人頭痛三天，建議多休息。"})
	service := NewAIService(assistant, nil, nil)

	summary, err := service.Summarize(context.Background(), doctorUser, "醫生：哪裡不舒服？病人：頭痛三天。")
	require.NoError(t, err)

	// The raw model output is normalized into the fixed Markdown layout.
	assert.True(t, strings.HasPrefix(summary, "## 看診重點摘要"))
	assert.Contains(t, summary, "病人頭痛三天")
}

func TestSummarize_Errors(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")
	patientUser, _ := seedPatient(t, repo, "meiling")
	assistant := ai.NewAssistant(&fixedGenerator{text: "ok"})

	// Patients cannot run summarization.
	_, err := NewAIService(assistant, nil, nil).Summarize(context.Background(), patientUser, "x")
	requireAPIError(t, err, apierrors.KindForbidden)

	// No assistant configured.
	_, err = NewAIService(nil, nil, nil).Summarize(context.Background(), doctorUser, "x")
	requireAPIError(t, err, apierrors.KindInternal)

	// Quota exhaustion surfaces as service unavailable.
	exhausted := ai.NewAssistant(&fixedGenerator{err: ai.ErrQuotaExhausted})
	_, err = NewAIService(exhausted, nil, nil).Summarize(context.Background(), doctorUser, "x")
	requireAPIError(t, err, apierrors.KindServiceUnavailable)

	// Any other model failure stays internal.
	broken := ai.NewAssistant(&fixedGenerator{err: errors.New("boom")})
	_, err = NewAIService(broken, nil, nil).Summarize(context.Background(), doctorUser, "x")
	requireAPIError(t, err, apierrors.KindInternal)
}

func TestGenerateSOAP(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")

	assistant := ai.NewAssistant(&fixedGenerator{
		text: `{"subjective": "頭痛三天", "objective": "血壓 120/80", "assessment": "緊張性頭痛", "plan": "多休息"}`,
	})
	service := NewAIService(assistant, nil, nil)

	soap, err := service.GenerateSOAP(context.Background(), doctorUser, "醫生：哪裡不舒服？病人：頭痛三天。")
	require.NoError(t, err)

	assert.Equal(t, "頭痛三天", soap.Subjective)
	assert.Equal(t, "緊張性頭痛", soap.Assessment)
}

func TestGenerateSOAP_PatientForbidden(t *testing.T) {
	repo := testutil.NewMemRepo()
	patientUser, _ := seedPatient(t, repo, "meiling")

	service := NewAIService(ai.NewAssistant(&fixedGenerator{text: "{}"}), nil, nil)

	_, err := service.GenerateSOAP(context.Background(), patientUser, "x")
	requireAPIError(t, err, apierrors.KindForbidden)
}

func TestTranscribe(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "病人自述頭痛三天。"}
	archive := &fakeArchive{key: "uploads/visit.mp3"}
	service := NewAIService(nil, transcriber, archive)

	transcript, err := service.Transcribe(context.Background(), "/tmp/visit.mp3", "visit.mp3")
	require.NoError(t, err)

	assert.Equal(t, "病人自述頭痛三天。", transcript)
	assert.Equal(t, "/tmp/visit.mp3", transcriber.lastPath)
	assert.Equal(t, []string{"visit.mp3"}, archive.archived)
}

func TestTranscribe_ArchiveFailureDoesNotFailRequest(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: "ok"}
	archive := &fakeArchive{err: errors.New("bucket unreachable")}
	service := NewAIService(nil, transcriber, archive)

	transcript, err := service.Transcribe(context.Background(), "/tmp/visit.mp3", "visit.mp3")
	require.NoError(t, err)
	assert.Equal(t, "ok", transcript)
}

func TestTranscribe_Errors(t *testing.T) {
	// Not configured.
	_, err := NewAIService(nil, nil, nil).Transcribe(context.Background(), "/tmp/visit.mp3", "visit.mp3")
	requireAPIError(t, err, apierrors.KindInternal)

	// Speech-to-text failure.
	failing := &fakeTranscriber{err: errors.New("api error")}
	_, err = NewAIService(nil, failing, nil).Transcribe(context.Background(), "/tmp/visit.mp3", "visit.mp3")
	requireAPIError(t, err, apierrors.KindInternal)
}
