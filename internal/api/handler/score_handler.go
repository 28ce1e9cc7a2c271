package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"ats-score-go/internal/config"
	"ats-score-go/internal/logger"
	"ats-score-go/internal/scorer"
	"ats-score-go/internal/storage"
	"ats-score-go/internal/storage/models"
	"ats-score-go/internal/types"
)

// ScoreHandler 评分处理器，协调文本提取、评分服务和查询操作
type ScoreHandler struct {
	cfg       *config.Config
	service   *scorer.Service
	extractor scorer.TextExtractor
	store     *storage.Storage // 可选，查询类接口依赖MySQL
}

// NewScoreHandler 创建评分处理器
func NewScoreHandler(
	cfg *config.Config,
	service *scorer.Service,
	extractor scorer.TextExtractor,
	store *storage.Storage,
) *ScoreHandler {
	return &ScoreHandler{
		cfg:       cfg,
		service:   service,
		extractor: extractor,
		store:     store,
	}
}

// ScoreUploadRequest 一次评分请求的原始输入。
// FileBytes与ResumeText二选一，同时提供时以文件为准。
type ScoreUploadRequest struct {
	FileBytes  []byte
	MimeType   string
	Filename   string
	ResumeText string
	JDText     string
	Identity   string
	Sector     string
	Email      string
	Phone      string
}

// ErrMissingResume 请求中既无文件也无文本
var ErrMissingResume = errors.New("请求中缺少简历文件或简历文本")

// HandleScoreUpload 执行完整的上传评分流程
func (h *ScoreHandler) HandleScoreUpload(ctx context.Context, req *ScoreUploadRequest) (*types.ScoreResult, error) {
	rawText := req.ResumeText
	if len(req.FileBytes) > 0 {
		text, err := h.extractor.ExtractText(ctx, req.FileBytes, req.MimeType)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("filename", req.Filename).
				Str("mime", req.MimeType).
				Msg("简历文本提取失败")
			return nil, err
		}
		rawText = text
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrMissingResume
	}

	return h.service.ScoreResume(ctx, scorer.ScoreRequest{
		RawText:  rawText,
		JDText:   req.JDText,
		Identity: req.Identity,
		Filename: req.Filename,
		Sector:   req.Sector,
		Email:    req.Email,
		Phone:    req.Phone,
	})
}

// HandleHistory 查询指定身份的评分历史，最近优先
func (h *ScoreHandler) HandleHistory(ctx context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error) {
	return h.service.GetHistory(ctx, identity, limit)
}

// ScoreRecordResponse 持久化评分记录的API表示
type ScoreRecordResponse struct {
	RecordUUID      string                `json:"record_uuid"`
	Identity        string                `json:"identity,omitempty"`
	Score           int                   `json:"score"`
	Filename        string                `json:"filename,omitempty"`
	Sector          string                `json:"sector,omitempty"`
	Breakdown       *types.ScoreBreakdown `json:"breakdown,omitempty"`
	MatchedKeywords []string              `json:"matchedKeywords,omitempty"`
	MissingKeywords []string              `json:"missingKeywords,omitempty"`
	ScoringVersion  string                `json:"scoring_version"`
	CreatedAt       string                `json:"created_at"`
}

// ErrStorageUnavailable 查询类接口依赖的MySQL未初始化
var ErrStorageUnavailable = errors.New("评分记录存储不可用")

// HandleLatestRecord 查询最近一条评分记录，identity为空时查全局
func (h *ScoreHandler) HandleLatestRecord(ctx context.Context, identity string) (*ScoreRecordResponse, error) {
	if h.store == nil || h.store.MySQL == nil {
		return nil, ErrStorageUnavailable
	}
	record, err := h.store.MySQL.GetLatestScoreRecord(ctx, identity)
	if err != nil {
		return nil, err
	}
	return toRecordResponse(record), nil
}

// HandleListRecords 按时间倒序分页列出评分记录
func (h *ScoreHandler) HandleListRecords(ctx context.Context, identity string, limit int) ([]*ScoreRecordResponse, error) {
	if h.store == nil || h.store.MySQL == nil {
		return nil, ErrStorageUnavailable
	}
	records, err := h.store.MySQL.ListScoreRecords(ctx, identity, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]*ScoreRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toRecordResponse(&records[i]))
	}
	return responses, nil
}

// HandleDeleteRecord 按UUID删除评分记录
func (h *ScoreHandler) HandleDeleteRecord(ctx context.Context, recordUUID string) error {
	if h.store == nil || h.store.MySQL == nil {
		return ErrStorageUnavailable
	}
	return h.store.MySQL.DeleteScoreRecord(ctx, recordUUID)
}

func toRecordResponse(record *models.ScoreRecord) *ScoreRecordResponse {
	resp := &ScoreRecordResponse{
		RecordUUID:     record.RecordUUID,
		Identity:       record.Identity,
		Score:          record.Score,
		Filename:       record.Filename,
		Sector:         record.Sector,
		ScoringVersion: record.ScoringVersion,
		CreatedAt:      record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	// JSON列损坏时对应字段留空，不让单条脏数据拖垮整个响应
	if len(record.BreakdownJSON) > 0 {
		var breakdown types.ScoreBreakdown
		if err := json.Unmarshal(record.BreakdownJSON, &breakdown); err == nil {
			resp.Breakdown = &breakdown
		}
	}
	if len(record.MatchedKeywordsJSON) > 0 {
		_ = json.Unmarshal(record.MatchedKeywordsJSON, &resp.MatchedKeywords)
	}
	if len(record.MissingKeywordsJSON) > 0 {
		_ = json.Unmarshal(record.MissingKeywordsJSON, &resp.MissingKeywords)
	}
	return resp
}
