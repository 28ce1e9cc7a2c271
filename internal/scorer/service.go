package scorer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ats-score-go/internal/constants"
	"ats-score-go/internal/history"
	"ats-score-go/internal/logger"
	"ats-score-go/internal/storage"
	"ats-score-go/internal/storage/models"
	"ats-score-go/internal/textproc"
	"ats-score-go/internal/types"
)

// ScoreRequest 一次评分请求的全部输入。
// RawText由外部文本提取协作方产出，本服务不接触原始文件。
type ScoreRequest struct {
	RawText  string // 提取后的简历纯文本
	JDText   string // 可选的岗位描述文本
	Identity string // 历史记录归属身份 (用户/会话)
	Filename string
	Sector   string
	Email    string
	Phone    string
}

// Service 评分服务，串联分词、特征提取、打分、差距分析、
// 历史追加和结果持久化。除历史追加外整条流水线无共享可变状态，
// 不同文档的并发评分完全独立。
type Service struct {
	engine       *Engine
	gap          *GapAnalyzer
	history      history.Store
	store        *storage.Storage // 可选，nil时跳过持久化与事件发布
	keywordLimit int
	excerptLen   int
}

// ServiceOption 评分服务的选项函数类型
type ServiceOption func(*Service)

// WithHistoryStore 指定历史存储实现
func WithHistoryStore(store history.Store) ServiceOption {
	return func(s *Service) {
		s.history = store
	}
}

// WithStorage 注入存储聚合，启用评分记录持久化和事件发布
func WithStorage(store *storage.Storage) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithKeywordLimit 覆盖JD关键词top-N上限
func WithKeywordLimit(limit int) ServiceOption {
	return func(s *Service) {
		s.keywordLimit = limit
	}
}

// WithExcerptLength 覆盖持久化时的简历文本截断长度
func WithExcerptLength(length int) ServiceOption {
	return func(s *Service) {
		s.excerptLen = length
	}
}

// NewService 创建评分服务。历史存储默认为进程内实现。
func NewService(engine *Engine, gap *GapAnalyzer, opts ...ServiceOption) *Service {
	s := &Service{
		engine:       engine,
		gap:          gap,
		keywordLimit: constants.DefaultKeywordLimit,
		excerptLen:   constants.DefaultExcerptLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.NewMemoryStore(constants.DefaultHistoryCap)
	}
	return s
}

// ExtractJDKeywords 校验limit并提取JD关键词。
// 这是唯一会对非法limit报错的入口，提取本身对空文本永不失败。
func ExtractJDKeywords(text string, limit int) (*types.KeywordSet, error) {
	if limit <= 0 {
		return nil, NewInvalidLimitError("limit必须为正数")
	}
	return textproc.ExtractKeywords(text, limit), nil
}

// ScoreResume 执行完整评分流水线并返回结果。
// 空文本返回 ErrEmptyDocument；历史追加、落库和事件发布都是
// 尽力而为——它们的失败只记日志，不影响调用方拿到评分结果。
func (s *Service) ScoreResume(ctx context.Context, req ScoreRequest) (*types.ScoreResult, error) {
	recordUUID := uuid.NewString()

	if strings.TrimSpace(req.RawText) == "" {
		return nil, NewEmptyDocumentError(recordUUID, "简历文本为空")
	}

	features := textproc.ExtractFeatures(req.RawText)
	resumeTokens := textproc.TokenSet(textproc.Tokenize(req.RawText))

	var jdKeywords *types.KeywordSet
	if strings.TrimSpace(req.JDText) != "" {
		jdKeywords = s.jdKeywords(ctx, req.JDText)
	}

	result, err := s.engine.ComputeScore(features, jdKeywords, resumeTokens)
	if err != nil {
		return nil, &ScoreProcessError{RecordUUID: recordUUID, Op: "compute_score", BaseErr: err}
	}

	report := s.gap.Analyze(features, resumeTokens, jdKeywords)
	result.Strengths = report.Strengths
	result.Weaknesses = report.Weaknesses
	result.Suggestions = report.Suggestions

	s.appendHistory(ctx, req, result)
	s.persistRecord(ctx, recordUUID, req, result)
	s.publishEvent(ctx, recordUUID, req, result, jdKeywords != nil)

	return result, nil
}

// GetHistory 按最近优先返回指定身份的评分历史，limit默认10
func (s *Service) GetHistory(ctx context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.history.Get(ctx, identity, limit)
}

// jdKeywords 提取JD关键词，Redis可用时走缓存。
// 缓存读写失败都只是降级为现算，不向上冒错。
func (s *Service) jdKeywords(ctx context.Context, jdText string) *types.KeywordSet {
	var cacheKey string
	if s.store != nil && s.store.Redis != nil {
		sum := md5.Sum([]byte(jdText))
		cacheKey = hex.EncodeToString(sum[:])
		if cached, err := s.store.Redis.GetCachedJDKeywords(ctx, cacheKey); err == nil {
			return cached
		}
	}

	set := textproc.ExtractKeywords(jdText, s.keywordLimit)

	if cacheKey != "" {
		if err := s.store.Redis.CacheJDKeywords(ctx, cacheKey, set); err != nil {
			logger.Debug().Err(err).Msg("写入JD关键词缓存失败")
		}
	}
	return set
}

func (s *Service) appendHistory(ctx context.Context, req ScoreRequest, result *types.ScoreResult) {
	identity := req.Identity
	if identity == "" {
		identity = "anonymous"
	}
	entry := types.ScoreHistoryEntry{
		Score:     result.Score,
		Filename:  req.Filename,
		Sector:    req.Sector,
		Timestamp: result.GeneratedAt,
	}
	if err := s.history.Append(ctx, identity, entry); err != nil {
		logger.Warn().Err(err).Str("identity", identity).Msg("追加评分历史失败")
	}
}

func (s *Service) persistRecord(ctx context.Context, recordUUID string, req ScoreRequest, result *types.ScoreResult) {
	if s.store == nil || s.store.MySQL == nil {
		return
	}

	breakdown, _ := json.Marshal(result.Breakdown)
	matched, _ := json.Marshal(result.MatchedKeywords)
	missing, _ := json.Marshal(result.MissingKeywords)

	excerpt := req.RawText
	if len(excerpt) > s.excerptLen {
		excerpt = excerpt[:s.excerptLen]
	}

	record := &models.ScoreRecord{
		RecordUUID:          recordUUID,
		Identity:            req.Identity,
		Score:               result.Score,
		Filename:            req.Filename,
		Sector:              req.Sector,
		Email:               req.Email,
		Phone:               req.Phone,
		BreakdownJSON:       datatypes.JSON(breakdown),
		MatchedKeywordsJSON: datatypes.JSON(matched),
		MissingKeywordsJSON: datatypes.JSON(missing),
		ResumeExcerpt:       excerpt,
		ScoringVersion:      constants.DefaultScoringVersion,
	}
	if err := s.store.MySQL.CreateScoreRecord(ctx, record); err != nil {
		logger.Warn().Err(err).Str("record_uuid", recordUUID).Msg("持久化评分记录失败")
	}
}

func (s *Service) publishEvent(ctx context.Context, recordUUID string, req ScoreRequest, result *types.ScoreResult, jdProvided bool) {
	if s.store == nil || s.store.RabbitMQ == nil {
		return
	}
	event := &storage.ScoreEventMessage{
		RecordUUID: recordUUID,
		Identity:   req.Identity,
		Score:      result.Score,
		Filename:   req.Filename,
		Sector:     req.Sector,
		JDProvided: jdProvided,
		Timestamp:  result.GeneratedAt,
	}
	if err := s.store.RabbitMQ.PublishScoreEvent(ctx, event); err != nil {
		logger.Warn().Err(err).Str("record_uuid", recordUUID).Msg("发布评分事件失败")
	}
}
