package scorer

import (
	"fmt"

	"ats-score-go/internal/constants"
	"ats-score-go/internal/types"
)

// 个人总结判定为"充实"的最小字符数
const strongSummaryLength = 80

// 技术关键词命中数达到该值视为硬技能覆盖良好
const strongKeywordHits = 4

// GapReport 差距分析结果
type GapReport struct {
	Matched     []string // JD关键词 ∩ 简历token，按JD排名顺序
	Missing     []string // JD关键词 − Matched，与Matched不相交
	Strengths   []string
	Weaknesses  []string
	Suggestions []string
}

// MatchKeywords 计算JD关键词与简历token集合的交集与差集。
// 两个返回值不相交，并集等于JD关键词全集，顺序沿用JD排名。
func MatchKeywords(jdKeywords *types.KeywordSet, resumeTokens map[string]struct{}) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	if jdKeywords == nil {
		return matched, missing
	}
	for _, kw := range jdKeywords.Keywords {
		if _, ok := resumeTokens[kw.Term]; ok {
			matched = append(matched, kw.Term)
		} else {
			missing = append(missing, kw.Term)
		}
	}
	return matched, missing
}

// GapAnalyzer 根据固定阈值规则生成优势、劣势和改进建议
type GapAnalyzer struct {
	suggestionLimit int
}

// NewGapAnalyzer 创建差距分析器，limit非正时使用默认建议条数
func NewGapAnalyzer(suggestionLimit int) *GapAnalyzer {
	if suggestionLimit <= 0 {
		suggestionLimit = constants.DefaultSuggestionLimit
	}
	return &GapAnalyzer{suggestionLimit: suggestionLimit}
}

// Analyze 对简历特征与JD关键词做差距分析。
// 规则按固定顺序逐条评估且互相独立，输出完全确定、可测试。
// jdKeywords 可以为nil (无JD模式)，此时只输出结构性诊断。
func (g *GapAnalyzer) Analyze(features *types.DocumentFeatures, resumeTokens map[string]struct{}, jdKeywords *types.KeywordSet) *GapReport {
	report := &GapReport{
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
	}
	report.Matched, report.Missing = MatchKeywords(jdKeywords, resumeTokens)

	// 规则1：个人总结篇幅
	if features.SummaryLength > strongSummaryLength {
		report.Strengths = append(report.Strengths, "个人总结篇幅充实")
	} else {
		report.Weaknesses = append(report.Weaknesses, "个人总结偏短，建议补充量化成果")
	}

	// 规则2：硬技能关键词覆盖
	if features.KeywordHits >= strongKeywordHits {
		report.Strengths = append(report.Strengths, "技术关键词覆盖良好")
	} else {
		report.Weaknesses = append(report.Weaknesses, "技术硬技能关键词偏少，建议补充")
	}

	// 规则3：工作经历章节
	if features.HasSection("experience") {
		report.Strengths = append(report.Strengths, "工作经历章节完整")
	} else {
		report.Weaknesses = append(report.Weaknesses, "缺少工作经历章节 (公司、职位、职责)")
	}

	// 规则4：量化成果
	if features.QuantifiedAchievements > 5 {
		report.Strengths = append(report.Strengths, "量化成果描述充足")
	} else {
		report.Weaknesses = append(report.Weaknesses, "量化成果不足，建议用数字描述业绩")
	}

	// 规则5/6：JD关键词覆盖情况
	if len(report.Matched) > 0 {
		report.Strengths = append(report.Strengths, fmt.Sprintf("已覆盖 %d 个JD关键词", len(report.Matched)))
	}
	if len(report.Missing) > 0 {
		report.Weaknesses = append(report.Weaknesses, fmt.Sprintf("缺失 %d 个JD关键词", len(report.Missing)))
	}

	// 建议：取排名最高的K个缺失关键词
	limit := g.suggestionLimit
	if limit > len(report.Missing) {
		limit = len(report.Missing)
	}
	for _, kw := range report.Missing[:limit] {
		report.Suggestions = append(report.Suggestions, fmt.Sprintf("补充关键词及相关上下文: %s", kw))
	}

	return report
}
