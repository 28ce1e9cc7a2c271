// Package types 定义评分流水线各组件共享的数据结构
package types

import "time"

// Keyword 带出现频次的关键词
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// KeywordSet 按频次降序排列的关键词集合。
// 频次相同的词保持其在原文中的首次出现顺序，集合上限由提取时的limit决定。
type KeywordSet struct {
	Keywords []Keyword `json:"keywords"`
}

// Len 返回集合中的关键词数量
func (s *KeywordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Keywords)
}

// IsEmpty 判断集合是否为空
func (s *KeywordSet) IsEmpty() bool {
	return s.Len() == 0
}

// Terms 按排名顺序返回所有关键词文本
func (s *KeywordSet) Terms() []string {
	if s == nil {
		return nil
	}
	terms := make([]string, 0, len(s.Keywords))
	for _, kw := range s.Keywords {
		terms = append(terms, kw.Term)
	}
	return terms
}

// Contains 判断集合中是否包含指定关键词
func (s *KeywordSet) Contains(term string) bool {
	if s == nil {
		return false
	}
	for _, kw := range s.Keywords {
		if kw.Term == term {
			return true
		}
	}
	return false
}

// DocumentFeatures 从简历原始文本提取出的结构化特征
type DocumentFeatures struct {
	SectionsFound          []string `json:"sections_found"`          // 命中的规范章节名，按固定检测顺序排列
	KeywordHits            int      `json:"keyword_hits"`            // 命中的参考关键词数量，每词只计一次
	QuantifiedAchievements int      `json:"quantified_achievements"` // 数字序列出现次数，作为量化成果的代理指标
	WordCount              int      `json:"word_count"`              // 按空白切分的原始词数 (未过滤停用词)
	SummaryLength          int      `json:"summary_length"`          // 个人总结段落的字符长度，未检出总结章节时为0
	HasTableMarker         bool     `json:"has_table_marker"`        // 复杂排版标记
	HasImageMarker         bool     `json:"has_image_marker"`
	HasGraphicMarker       bool     `json:"has_graphic_marker"`
}

// HasFormatPenalty 任一复杂排版标记存在即返回true
func (f *DocumentFeatures) HasFormatPenalty() bool {
	return f.HasTableMarker || f.HasImageMarker || f.HasGraphicMarker
}

// HasSection 判断指定规范章节是否被检出
func (f *DocumentFeatures) HasSection(name string) bool {
	for _, s := range f.SectionsFound {
		if s == name {
			return true
		}
	}
	return false
}

// ScoreBreakdown 分类子得分，仅由最终得分派生用于展示，
// 不参与任何后续计算
type ScoreBreakdown struct {
	Skills     int `json:"skills"`
	Formatting int `json:"formatting"`
	Keywords   int `json:"keywords"`
	Experience int `json:"experience"`
}

// ScoreResult 一次评分的完整输出
type ScoreResult struct {
	Score           int            `json:"score"`            // 最终得分，已按模式钳制
	Breakdown       ScoreBreakdown `json:"breakdown"`        // 展示用分类子得分
	MatchedKeywords []string       `json:"matchedKeywords"`  // JD关键词中简历已覆盖的部分，按JD排名顺序
	MissingKeywords []string       `json:"missingKeywords"`  // JD关键词中简历缺失的部分，与matched不相交
	Strengths       []string       `json:"strengths"`        // 优势诊断，固定规则顺序
	Weaknesses      []string       `json:"weaknesses"`       // 劣势诊断，固定规则顺序
	Suggestions     []string       `json:"suggestions"`      // 改进建议 (top-K缺失关键词)
	GeneratedAt     time.Time      `json:"generatedAt"`      // 结果生成时间
}

// ScoreHistoryEntry 单条评分历史记录，创建后不可变
type ScoreHistoryEntry struct {
	Score     int       `json:"score"`
	Filename  string    `json:"filename"`
	Sector    string    `json:"sector"`
	Timestamp time.Time `json:"timestamp"`
}
