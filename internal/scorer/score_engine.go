// Package scorer 实现简历与JD兼容性评分的核心算法：
// 加权启发式打分、差距分析和顶层评分服务。
package scorer

import (
	"math"
	"math/rand"
	"time"

	"ats-score-go/internal/constants"
	"ats-score-go/internal/types"
)

// 得分钳制区间。两端刻意不取0和100，绝对化的得分会误导用户。
const (
	jdModeFloor   = 10
	jdModeCeiling = 100
	noJDFloor     = 25
	noJDCeiling   = 98
)

// 基准分：JD模式下基准更低，因为匹配率还会在后面补分
const (
	baseScoreNoJD = 50
	baseScoreJD   = 40
)

// Engine 评分引擎。关闭抖动时 ComputeScore 是纯函数，
// 相同输入永远产生相同得分。
type Engine struct {
	weights     Weights
	jitterRange int
	rng         *rand.Rand // nil表示抖动关闭
}

// NewEngine 创建评分引擎，默认权重、抖动关闭
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights:     DefaultWeights(),
		jitterRange: constants.DefaultJitterRange,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeScore 对提取出的简历特征计算ATS兼容性得分。
// jdKeywords 和 resumeTokens 可以为nil，此时走无JD路径。
// 特征为空 (无可提取文本) 返回 ErrEmptyDocument 而不是零分，
// 强制调用方显式处理不可读的上传。
func (e *Engine) ComputeScore(features *types.DocumentFeatures, jdKeywords *types.KeywordSet, resumeTokens map[string]struct{}) (*types.ScoreResult, error) {
	if features == nil || features.WordCount == 0 {
		return nil, ErrEmptyDocument
	}

	// JD存在但提取不出任何关键词时退回无JD路径，
	// 匹配率对空集合无意义
	jdMode := jdKeywords != nil && !jdKeywords.IsEmpty()

	score := baseScoreNoJD
	if jdMode {
		score = baseScoreJD
	}

	// 长度调整：过短或过密的简历对ATS解析都不友好
	switch {
	case features.WordCount < e.weights.ShortWordLimit:
		score -= e.weights.ShortPenalty
	case features.WordCount > e.weights.LongWordLimit:
		score -= e.weights.LongPenalty
	default:
		score += e.weights.LengthBonus
	}

	// 章节完整性
	score += len(features.SectionsFound) * e.weights.SectionBonus

	// 参考关键词命中，上限由参考词表长度隐式约束
	score += features.KeywordHits * e.weights.KeywordBonus

	// 量化成果
	switch {
	case features.QuantifiedAchievements > e.weights.QuantHighThreshold:
		score += e.weights.QuantHighBonus
	case features.QuantifiedAchievements > e.weights.QuantMidThreshold:
		score += e.weights.QuantMidBonus
	}

	// 复杂排版
	if features.HasFormatPenalty() {
		score -= e.weights.FormatPenalty
	}

	var matched, missing []string
	if jdMode {
		matched, missing = MatchKeywords(jdKeywords, resumeTokens)
		ratio := float64(len(matched)) / float64(jdKeywords.Len())
		score += int(math.Round(ratio * float64(e.weights.JDMatchWeight)))
	}

	if e.rng != nil {
		score += e.rng.Intn(2*e.jitterRange+1) - e.jitterRange
	}

	if jdMode {
		score = clamp(score, jdModeFloor, jdModeCeiling)
	} else {
		score = clamp(score, noJDFloor, noJDCeiling)
	}

	return &types.ScoreResult{
		Score:           score,
		Breakdown:       deriveBreakdown(score),
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Suggestions:     []string{},
		GeneratedAt:     time.Now(),
	}, nil
}

// deriveBreakdown 从最终得分派生分类子得分。
// 这些子得分仅用于展示，不是独立计算的信号，
// 也绝不能作为其他逻辑的输入。
func deriveBreakdown(score int) types.ScoreBreakdown {
	return types.ScoreBreakdown{
		Skills:     minInt(95, score+5),
		Formatting: maxInt(40, score-10),
		Keywords:   minInt(90, score),
		Experience: maxInt(35, score-15),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
