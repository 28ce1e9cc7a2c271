package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-score-go/internal/types"
)

func keywordSet(terms ...string) *types.KeywordSet {
	set := &types.KeywordSet{Keywords: make([]types.Keyword, 0, len(terms))}
	for _, term := range terms {
		set.Keywords = append(set.Keywords, types.Keyword{Term: term, Count: 1})
	}
	return set
}

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func TestComputeScoreEmptyDocument(t *testing.T) {
	engine := NewEngine()

	_, err := engine.ComputeScore(nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = engine.ComputeScore(&types.DocumentFeatures{WordCount: 0}, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestComputeScoreNoJDBaseline(t *testing.T) {
	engine := NewEngine()
	features := &types.DocumentFeatures{
		SectionsFound: []string{"experience", "skills"},
		KeywordHits:   2,
		WordCount:     300,
	}

	result, err := engine.ComputeScore(features, nil, nil)
	require.NoError(t, err)
	// 50基础 +10长度适中 +10章节 +6关键词
	assert.Equal(t, 76, result.Score)
	assert.Empty(t, result.MatchedKeywords)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestComputeScoreLengthAdjustments(t *testing.T) {
	engine := NewEngine()

	short, err := engine.ComputeScore(&types.DocumentFeatures{WordCount: 100}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, short.Score) // 50 - 20

	long, err := engine.ComputeScore(&types.DocumentFeatures{WordCount: 1000}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, long.Score) // 50 - 10
}

func TestComputeScoreQuantifiedTiers(t *testing.T) {
	engine := NewEngine()
	base := &types.DocumentFeatures{WordCount: 300}

	none, _ := engine.ComputeScore(base, nil, nil)

	mid := *base
	mid.QuantifiedAchievements = 6
	midResult, _ := engine.ComputeScore(&mid, nil, nil)
	assert.Equal(t, none.Score+6, midResult.Score)

	high := *base
	high.QuantifiedAchievements = 11
	highResult, _ := engine.ComputeScore(&high, nil, nil)
	assert.Equal(t, none.Score+12, highResult.Score)

	// 阈值本身不触发加分
	edge := *base
	edge.QuantifiedAchievements = 5
	edgeResult, _ := engine.ComputeScore(&edge, nil, nil)
	assert.Equal(t, none.Score, edgeResult.Score)
}

func TestComputeScoreFormatPenalty(t *testing.T) {
	engine := NewEngine()

	plain, _ := engine.ComputeScore(&types.DocumentFeatures{WordCount: 300}, nil, nil)
	marked, _ := engine.ComputeScore(&types.DocumentFeatures{WordCount: 300, HasTableMarker: true}, nil, nil)
	assert.Equal(t, plain.Score-10, marked.Score)
}

func TestComputeScoreClampNoJD(t *testing.T) {
	engine := NewEngine()

	// 各项全满远超上限，钳到98
	strong := &types.DocumentFeatures{
		SectionsFound: []string{"experience", "skills", "education", "projects", "summary", "certifications"},
		KeywordHits:   24,
		WordCount:     500,
	}
	high, err := engine.ComputeScore(strong, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 98, high.Score)

	// 过短加复杂排版，钳到25
	weak := &types.DocumentFeatures{WordCount: 100, HasImageMarker: true}
	low, err := engine.ComputeScore(weak, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, low.Score)
}

func TestComputeScoreJDMode(t *testing.T) {
	engine := NewEngine()
	features := &types.DocumentFeatures{WordCount: 300}
	jd := keywordSet("golang", "kafka", "redis", "terraform")
	resume := tokenSet("golang", "kafka", "other")

	result, err := engine.ComputeScore(features, jd, resume)
	require.NoError(t, err)
	// 40基础 +10长度 +10 (匹配率0.5×20)
	assert.Equal(t, 60, result.Score)
	assert.Equal(t, []string{"golang", "kafka"}, result.MatchedKeywords)
	assert.Equal(t, []string{"redis", "terraform"}, result.MissingKeywords)
}

func TestComputeScoreJDFullMatch(t *testing.T) {
	engine := NewEngine()
	features := &types.DocumentFeatures{WordCount: 300}
	jd := keywordSet("golang", "kafka")
	resume := tokenSet("golang", "kafka")

	result, err := engine.ComputeScore(features, jd, resume)
	require.NoError(t, err)
	assert.Equal(t, 70, result.Score) // 40 + 10 + 20
	assert.Empty(t, result.MissingKeywords)
}

func TestComputeScoreEmptyJDFallsBackToNoJD(t *testing.T) {
	engine := NewEngine()
	features := &types.DocumentFeatures{WordCount: 300}

	// JD提供但提取不出关键词时按无JD路径计分
	withEmpty, err := engine.ComputeScore(features, &types.KeywordSet{}, tokenSet("golang"))
	require.NoError(t, err)
	withNil, err := engine.ComputeScore(features, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, withNil.Score, withEmpty.Score)
	assert.Empty(t, withEmpty.MatchedKeywords)
}

func TestComputeScoreDeterministic(t *testing.T) {
	// 抖动默认关闭，同一输入任意次计算结果一致
	engine := NewEngine()
	features := &types.DocumentFeatures{
		SectionsFound:          []string{"experience"},
		KeywordHits:            3,
		QuantifiedAchievements: 7,
		WordCount:              450,
	}
	jd := keywordSet("python", "django", "celery")
	resume := tokenSet("python", "celery")

	first, err := engine.ComputeScore(features, jd, resume)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := engine.ComputeScore(features, jd, resume)
		require.NoError(t, err)
		assert.Equal(t, first.Score, again.Score)
		assert.Equal(t, first.MatchedKeywords, again.MatchedKeywords)
	}
}

func TestComputeScoreJitterSeeded(t *testing.T) {
	features := &types.DocumentFeatures{WordCount: 300}

	baseline, err := NewEngine().ComputeScore(features, nil, nil)
	require.NoError(t, err)

	// 同一种子的两个引擎产生相同的抖动序列
	a := NewEngine(WithJitter(42))
	b := NewEngine(WithJitter(42))
	for i := 0; i < 10; i++ {
		ra, err := a.ComputeScore(features, nil, nil)
		require.NoError(t, err)
		rb, err := b.ComputeScore(features, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, ra.Score, rb.Score)
		// 抖动幅度不超过±5
		assert.InDelta(t, baseline.Score, ra.Score, 5)
	}
}

func TestDeriveBreakdown(t *testing.T) {
	engine := NewEngine()
	features := &types.DocumentFeatures{
		SectionsFound: []string{"experience", "skills"},
		KeywordHits:   2,
		WordCount:     300,
	}

	result, err := engine.ComputeScore(features, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 76, result.Score)
	// 子得分由最终得分派生，仅用于展示
	assert.Equal(t, 81, result.Breakdown.Skills)     // min(95, 76+5)
	assert.Equal(t, 66, result.Breakdown.Formatting) // max(40, 76-10)
	assert.Equal(t, 76, result.Breakdown.Keywords)   // min(90, 76)
	assert.Equal(t, 61, result.Breakdown.Experience) // max(35, 76-15)
}
