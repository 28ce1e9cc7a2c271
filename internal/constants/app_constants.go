package constants

import "time"

const (
	// Application-level constants
	DefaultScoringVersion = "1.0" // 当前打分算法版本，写入评分记录

	// Redis键常量
	HistoryKeyPrefix   = "ats:history:" // 评分历史列表键前缀，后接身份标识
	JDKeywordsCacheKey = "ats:jd_kw:"   // JD关键词缓存键前缀，后接JD文本MD5
	JDCacheDuration    = 24 * time.Hour // JD关键词缓存过期时间

	// 上传限制
	MaxUploadBytes = 10 * 1024 * 1024 // 原始文件上限10MB，超出直接拒绝
)

// 默认评分参数，均可被配置覆盖，见 config.ScoringConfig
const (
	DefaultKeywordLimit    = 40   // JD关键词集合上限 (top-N)
	DefaultSuggestionLimit = 8    // 建议条数上限 (top-K缺失关键词)
	DefaultHistoryCap      = 20   // 每个身份保留的历史条数 (FIFO)
	DefaultExcerptLength   = 5000 // 持久化的简历文本截断长度
	DefaultSectionBonus    = 5    // 每命中一个规范章节的加分
	DefaultKeywordBonus    = 3    // 每命中一个参考关键词的加分
	DefaultFormatPenalty   = 10   // 存在复杂排版标记时的扣分
	DefaultJitterRange     = 5    // 抖动幅度 (±5)，默认关闭
)

// StopWords 分词阶段过滤的常见英文虚词
var StopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"while": {}, "with": {}, "to": {}, "of": {}, "in": {}, "on": {}, "for": {},
	"by": {}, "is": {}, "are": {}, "was": {}, "were": {}, "as": {}, "at": {},
	"be": {}, "this": {}, "that": {}, "these": {}, "those": {}, "it": {},
	"its": {}, "from": {}, "about": {}, "which": {}, "into": {}, "has": {},
	"have": {}, "had": {}, "will": {}, "would": {}, "can": {}, "could": {},
}

// CanonicalSections 规范章节名称，检测顺序固定，保证输出确定
var CanonicalSections = []string{
	"experience",
	"skills",
	"education",
	"projects",
	"summary",
	"certifications",
}

// SectionSynonyms 每个规范章节的同义词表，任一出现即视为章节存在
var SectionSynonyms = map[string][]string{
	"experience":     {"experience", "work history", "employment"},
	"skills":         {"skills", "technical skills", "technologies"},
	"education":      {"education", "academic"},
	"projects":       {"projects", "portfolio"},
	"summary":        {"summary", "objective", "profile"},
	"certifications": {"certifications", "certificates", "licenses"},
}

// ReferenceKeywords 固定参考关键词表 (技术栈 + 软技能)，
// 用于统计简历的领域关键词命中数，每个词只计一次
var ReferenceKeywords = []string{
	"python", "javascript", "react", "node", "express", "mongodb", "sql",
	"aws", "docker", "kubernetes", "git", "html", "css", "java", "c++",
	"machine learning", "data analysis", "agile",
	"leadership", "team", "project", "developed", "built", "designed",
}

// FormatMarkers 复杂排版标记，出现任意一个即认为ATS解析友好度下降
var FormatMarkers = []string{"table", "image", "graphic"}
