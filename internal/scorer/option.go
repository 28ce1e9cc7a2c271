package scorer

import (
	"math/rand"

	"ats-score-go/internal/constants"
)

// Weights 评分引擎的全部权重常量，
// 集中成一套默认值并通过配置覆盖，而不是散落在代码里。
type Weights struct {
	SectionBonus int // 每命中一个规范章节的加分
	KeywordBonus int // 每命中一个参考关键词的加分

	ShortWordLimit int // 词数低于该值视为过短
	LongWordLimit  int // 词数高于该值视为过长
	ShortPenalty   int // 过短扣分
	LongPenalty    int // 过长扣分
	LengthBonus    int // 长度适中的加分

	QuantHighThreshold int // 数字序列数量的高档阈值
	QuantHighBonus     int
	QuantMidThreshold  int // 数字序列数量的中档阈值
	QuantMidBonus      int

	FormatPenalty int // 复杂排版标记扣分
	JDMatchWeight int // JD匹配率的满分权重
}

// DefaultWeights 返回统一后的默认权重
func DefaultWeights() Weights {
	return Weights{
		SectionBonus:       constants.DefaultSectionBonus,
		KeywordBonus:       constants.DefaultKeywordBonus,
		ShortWordLimit:     200,
		LongWordLimit:      800,
		ShortPenalty:       20,
		LongPenalty:        10,
		LengthBonus:        10,
		QuantHighThreshold: 10,
		QuantHighBonus:     12,
		QuantMidThreshold:  5,
		QuantMidBonus:      6,
		FormatPenalty:      constants.DefaultFormatPenalty,
		JDMatchWeight:      20,
	}
}

// EngineOption 评分引擎的选项函数类型
type EngineOption func(*Engine)

// WithWeights 整体替换权重配置
func WithWeights(w Weights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithSectionBonus 单独覆盖章节加分
func WithSectionBonus(bonus int) EngineOption {
	return func(e *Engine) {
		e.weights.SectionBonus = bonus
	}
}

// WithKeywordBonus 单独覆盖关键词加分
func WithKeywordBonus(bonus int) EngineOption {
	return func(e *Engine) {
		e.weights.KeywordBonus = bonus
	}
}

// WithJitter 开启得分抖动并指定随机种子。
// 抖动默认关闭：非确定性的得分既难测试也损害用户信任，
// 只有显式传入种子才会启用，同一种子序列产生同一抖动序列。
func WithJitter(seed int64) EngineOption {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithJitterRange 覆盖抖动幅度 (±n)，仅在抖动开启时生效
func WithJitterRange(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.jitterRange = n
		}
	}
}
