package textproc

import (
	"regexp"
	"strings"

	"ats-score-go/internal/constants"
	"ats-score-go/internal/types"
)

// 数字序列匹配，作为量化成果的代理指标
var digitRunPattern = regexp.MustCompile(`\d+`)

// 个人总结段落最多截取的字符数
const summaryWindow = 400

// ExtractFeatures 从简历原始文本提取结构化特征。
// 章节与关键词检测都是大小写不敏感的子串搜索——刻意保持简单，
// 不做任何NLP层面的实体识别。空文本返回零值特征。
func ExtractFeatures(text string) *types.DocumentFeatures {
	features := &types.DocumentFeatures{SectionsFound: []string{}}
	if strings.TrimSpace(text) == "" {
		return features
	}

	lower := strings.ToLower(text)

	// 章节检测：任一同义词出现即视为章节存在，检测顺序固定
	for _, section := range constants.CanonicalSections {
		for _, synonym := range constants.SectionSynonyms[section] {
			if strings.Contains(lower, synonym) {
				features.SectionsFound = append(features.SectionsFound, section)
				break
			}
		}
	}

	// 参考关键词命中：每个词无论重复出现多少次只计一次
	for _, kw := range constants.ReferenceKeywords {
		if strings.Contains(lower, kw) {
			features.KeywordHits++
		}
	}

	features.QuantifiedAchievements = len(digitRunPattern.FindAllString(text, -1))
	features.WordCount = WordCount(text)
	features.SummaryLength = summaryLength(lower)

	features.HasTableMarker = strings.Contains(lower, "table")
	features.HasImageMarker = strings.Contains(lower, "image")
	features.HasGraphicMarker = strings.Contains(lower, "graphic")

	return features
}

// summaryLength 截取个人总结标题之后的一段文本并返回其长度。
// 以首个总结类同义词的出现位置为起点，到下一个空行或
// summaryWindow个字符为止。未检出总结章节返回0。
func summaryLength(lower string) int {
	start := -1
	for _, synonym := range constants.SectionSynonyms["summary"] {
		if idx := strings.Index(lower, synonym); idx >= 0 {
			candidate := idx + len(synonym)
			if start < 0 || candidate < start {
				start = candidate
			}
		}
	}
	if start < 0 || start >= len(lower) {
		return 0
	}

	window := lower[start:]
	if len(window) > summaryWindow {
		window = window[:summaryWindow]
	}
	if cut := strings.Index(window, "\n\n"); cut >= 0 {
		window = window[:cut]
	}
	return len(strings.TrimSpace(window))
}
