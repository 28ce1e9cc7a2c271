package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Summary
Backend engineer focused on distributed systems and measurable impact.

Experience
Delivered services handling 5000 requests per second across 3 regions.

Skills
Python, Docker, Kubernetes, SQL

Education
BSc Computer Science`

func TestExtractFeaturesSections(t *testing.T) {
	features := ExtractFeatures(sampleResume)
	// 章节按固定检测顺序输出，不受原文出现顺序影响
	assert.Equal(t, []string{"experience", "skills", "education", "summary"}, features.SectionsFound)
	assert.True(t, features.HasSection("experience"))
	assert.False(t, features.HasSection("projects"))
}

func TestExtractFeaturesKeywordHitsDistinct(t *testing.T) {
	features := ExtractFeatures(sampleResume)
	// python/docker/kubernetes/sql 各命中一次，重复出现不重复计数
	assert.Equal(t, 4, features.KeywordHits)

	repeated := ExtractFeatures("python python python")
	assert.Equal(t, 1, repeated.KeywordHits)
}

func TestExtractFeaturesQuantified(t *testing.T) {
	features := ExtractFeatures(sampleResume)
	// "5000" 和 "3" 两个数字序列
	assert.Equal(t, 2, features.QuantifiedAchievements)
}

func TestExtractFeaturesWordCount(t *testing.T) {
	features := ExtractFeatures("one two three")
	assert.Equal(t, 3, features.WordCount)
}

func TestExtractFeaturesSummaryLength(t *testing.T) {
	features := ExtractFeatures(sampleResume)
	assert.Greater(t, features.SummaryLength, 0)

	// 未检出总结章节时长度为0
	noSummary := ExtractFeatures("Experience\nBuilt things.")
	assert.Equal(t, 0, noSummary.SummaryLength)
}

func TestExtractFeaturesSummaryStopsAtBlankLine(t *testing.T) {
	text := "Objective: ship reliable software\n\nExperience\nmany many words here"
	features := ExtractFeatures(text)
	// 总结段落在空行处截断，不吞掉后续章节
	assert.Equal(t, len(": ship reliable software"), features.SummaryLength)
}

func TestExtractFeaturesFormatMarkers(t *testing.T) {
	features := ExtractFeatures("Presented results in a table format")
	assert.True(t, features.HasTableMarker)
	assert.True(t, features.HasFormatPenalty())

	clean := ExtractFeatures("plain text resume")
	assert.False(t, clean.HasFormatPenalty())
}

func TestExtractFeaturesEmptyText(t *testing.T) {
	features := ExtractFeatures("   ")
	require.NotNil(t, features)
	assert.Empty(t, features.SectionsFound)
	assert.Zero(t, features.WordCount)
	assert.Zero(t, features.KeywordHits)
	assert.False(t, features.HasFormatPenalty())
}
