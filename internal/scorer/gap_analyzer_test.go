package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-score-go/internal/types"
)

func TestMatchKeywordsPartition(t *testing.T) {
	jd := keywordSet("golang", "kafka", "redis", "terraform")
	resume := tokenSet("golang", "redis", "extra")

	matched, missing := MatchKeywords(jd, resume)
	// 交集与差集不相交，并集等于JD全集，顺序沿用JD排名
	assert.Equal(t, []string{"golang", "redis"}, matched)
	assert.Equal(t, []string{"kafka", "terraform"}, missing)
	assert.Equal(t, jd.Len(), len(matched)+len(missing))
}

func TestMatchKeywordsNilJD(t *testing.T) {
	matched, missing := MatchKeywords(nil, tokenSet("golang"))
	assert.Empty(t, matched)
	assert.Empty(t, missing)
	assert.NotNil(t, matched)
	assert.NotNil(t, missing)
}

func TestAnalyzeStrongResume(t *testing.T) {
	analyzer := NewGapAnalyzer(8)
	features := &types.DocumentFeatures{
		SectionsFound:          []string{"experience", "skills"},
		KeywordHits:            5,
		QuantifiedAchievements: 8,
		SummaryLength:          120,
	}
	jd := keywordSet("golang", "kafka")
	resume := tokenSet("golang", "kafka")

	report := analyzer.Analyze(features, resume, jd)
	// 全部规则都落在优势侧
	assert.Equal(t, []string{
		"个人总结篇幅充实",
		"技术关键词覆盖良好",
		"工作经历章节完整",
		"量化成果描述充足",
		"已覆盖 2 个JD关键词",
	}, report.Strengths)
	assert.Empty(t, report.Weaknesses)
	assert.Empty(t, report.Suggestions)
}

func TestAnalyzeWeakResume(t *testing.T) {
	analyzer := NewGapAnalyzer(8)
	features := &types.DocumentFeatures{SectionsFound: []string{}}
	jd := keywordSet("golang", "kafka", "redis")

	report := analyzer.Analyze(features, tokenSet(), jd)
	assert.Empty(t, report.Strengths)
	// 劣势按固定规则顺序输出
	assert.Equal(t, []string{
		"个人总结偏短，建议补充量化成果",
		"技术硬技能关键词偏少，建议补充",
		"缺少工作经历章节 (公司、职位、职责)",
		"量化成果不足，建议用数字描述业绩",
		"缺失 3 个JD关键词",
	}, report.Weaknesses)
}

func TestAnalyzeSuggestionsTopK(t *testing.T) {
	analyzer := NewGapAnalyzer(2)
	features := &types.DocumentFeatures{}
	jd := keywordSet("golang", "kafka", "redis", "terraform")

	report := analyzer.Analyze(features, tokenSet(), jd)
	// 建议只取排名最高的K个缺失关键词
	require.Len(t, report.Suggestions, 2)
	assert.Equal(t, "补充关键词及相关上下文: golang", report.Suggestions[0])
	assert.Equal(t, "补充关键词及相关上下文: kafka", report.Suggestions[1])
}

func TestAnalyzeWithoutJD(t *testing.T) {
	analyzer := NewGapAnalyzer(8)
	features := &types.DocumentFeatures{
		SectionsFound: []string{"experience"},
		SummaryLength: 90,
	}

	report := analyzer.Analyze(features, tokenSet(), nil)
	// 无JD时只输出结构性诊断，不出现关键词覆盖条目
	assert.Contains(t, report.Strengths, "个人总结篇幅充实")
	assert.Contains(t, report.Strengths, "工作经历章节完整")
	assert.Empty(t, report.Suggestions)
	for _, s := range report.Strengths {
		assert.NotContains(t, s, "JD关键词")
	}
}

func TestAnalyzeDeterministicOrder(t *testing.T) {
	analyzer := NewGapAnalyzer(8)
	features := &types.DocumentFeatures{KeywordHits: 4, SummaryLength: 100}
	jd := keywordSet("golang", "kafka")
	resume := tokenSet("golang")

	first := analyzer.Analyze(features, resume, jd)
	for i := 0; i < 5; i++ {
		again := analyzer.Analyze(features, resume, jd)
		assert.Equal(t, first, again)
	}
}
