package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-score-go/internal/config"
	"ats-score-go/internal/scorer"
)

// 测试用文本提取器，直接返回预设文本或错误
type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, s.err
}

const handlerTestResume = `Summary
Backend engineer building data pipelines with measurable outcomes.

Experience
Ran golang services processing 20000 events per minute across 4 clusters,
cut latency 35 percent, mentored 3 engineers and led 2 platform migrations
touching 12 services, retired 6 legacy jobs and saved 25 percent in compute spend.

Skills
Golang, Docker, Kubernetes, SQL

Education
BSc Computer Science`

func newTestHandler(extractor scorer.TextExtractor) *ScoreHandler {
	cfg := &config.Config{}
	service := scorer.NewService(scorer.NewEngine(), scorer.NewGapAnalyzer(8))
	return NewScoreHandler(cfg, service, extractor, nil)
}

func TestHandleScoreUploadWithFile(t *testing.T) {
	h := newTestHandler(&stubExtractor{text: handlerTestResume})

	result, err := h.HandleScoreUpload(context.Background(), &ScoreUploadRequest{
		FileBytes: []byte("%PDF-fake"),
		MimeType:  "application/pdf",
		Filename:  "resume.pdf",
		JDText:    "golang kubernetes kafka",
		Identity:  "user-1",
	})
	require.NoError(t, err)
	assert.Contains(t, result.MatchedKeywords, "golang")
	assert.Contains(t, result.MissingKeywords, "kafka")
	assert.GreaterOrEqual(t, result.Score, 10)
	assert.LessOrEqual(t, result.Score, 100)
}

func TestHandleScoreUploadWithRawText(t *testing.T) {
	// 不传文件时直接使用resume_text
	h := newTestHandler(&stubExtractor{err: scorer.NewUnreadableDocumentError("", "不应被调用")})

	result, err := h.HandleScoreUpload(context.Background(), &ScoreUploadRequest{
		ResumeText: handlerTestResume,
	})
	require.NoError(t, err)
	assert.Greater(t, result.Score, 0)
}

func TestHandleScoreUploadExtractionFailure(t *testing.T) {
	h := newTestHandler(&stubExtractor{err: scorer.NewUnreadableDocumentError("", "解析失败")})

	_, err := h.HandleScoreUpload(context.Background(), &ScoreUploadRequest{
		FileBytes: []byte("broken"),
		MimeType:  "application/pdf",
	})
	assert.ErrorIs(t, err, scorer.ErrUnreadableDocument)
}

func TestHandleScoreUploadMissingResume(t *testing.T) {
	h := newTestHandler(&stubExtractor{})

	_, err := h.HandleScoreUpload(context.Background(), &ScoreUploadRequest{})
	assert.ErrorIs(t, err, ErrMissingResume)
}

func TestHandleHistory(t *testing.T) {
	h := newTestHandler(&stubExtractor{})

	_, err := h.HandleScoreUpload(context.Background(), &ScoreUploadRequest{
		ResumeText: handlerTestResume,
		Identity:   "user-9",
	})
	require.NoError(t, err)

	entries, err := h.HandleHistory(context.Background(), "user-9", 5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestQueryEndpointsWithoutStorage(t *testing.T) {
	// 未配置MySQL时查询类接口统一报存储不可用
	h := newTestHandler(&stubExtractor{})

	_, err := h.HandleLatestRecord(context.Background(), "")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = h.HandleListRecords(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = h.HandleDeleteRecord(context.Background(), "some-uuid")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
