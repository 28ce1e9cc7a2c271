package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsRankedByFrequency(t *testing.T) {
	set := ExtractKeywords("kubernetes docker kubernetes linux kubernetes docker", 10)
	require.Equal(t, 3, set.Len())
	assert.Equal(t, "kubernetes", set.Keywords[0].Term)
	assert.Equal(t, 3, set.Keywords[0].Count)
	assert.Equal(t, "docker", set.Keywords[1].Term)
	assert.Equal(t, 2, set.Keywords[1].Count)
	assert.Equal(t, "linux", set.Keywords[2].Term)
	assert.Equal(t, 1, set.Keywords[2].Count)
}

func TestExtractKeywordsTieBreakByFirstAppearance(t *testing.T) {
	// 同频关键词保持原文首次出现顺序，输出完全确定
	set := ExtractKeywords("golang rust golang rust python python", 10)
	assert.Equal(t, []string{"golang", "rust", "python"}, set.Terms())
}

func TestExtractKeywordsLimitTruncation(t *testing.T) {
	set := ExtractKeywords("alpha alpha beta beta gamma delta epsilon", 2)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"alpha", "beta"}, set.Terms())
}

func TestExtractKeywordsFiltersShortTokens(t *testing.T) {
	// 长度不足3的token不参与统计
	set := ExtractKeywords("go go go golang", 10)
	assert.Equal(t, []string{"golang"}, set.Terms())
}

func TestExtractKeywordsFiltersStopWords(t *testing.T) {
	set := ExtractKeywords("the the the engineering", 10)
	assert.Equal(t, []string{"engineering"}, set.Terms())
}

func TestExtractKeywordsEmptyText(t *testing.T) {
	set := ExtractKeywords("", 10)
	assert.True(t, set.IsEmpty())
	assert.NotNil(t, set.Keywords)
}

func TestExtractKeywordsNonPositiveLimit(t *testing.T) {
	set := ExtractKeywords("kubernetes docker", 0)
	assert.True(t, set.IsEmpty())
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	// 大量同频词多次提取结果必须一致
	text := strings.Repeat("omega zeta theta iota kappa ", 3)
	first := ExtractKeywords(text, 40).Terms()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractKeywords(text, 40).Terms())
	}
}
