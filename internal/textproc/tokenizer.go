// Package textproc 提供简历与JD文本的归一化、分词和特征提取。
// 所有函数均为无副作用的纯函数，空输入返回空结果而不是错误。
package textproc

import (
	"strings"

	"ats-score-go/internal/constants"
)

// Tokenize 将原始文本归一化为token序列：
// 全部转小写，非[a-z0-9\s]字符替换为空格，按空白切分，
// 丢弃空串和停用词。结果是有限的物化序列，可重复消费。
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, t := range fields {
		if _, stop := constants.StopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// TokenSet 将token序列收敛为去重集合，用于关键词匹配
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// WordCount 统计按空白切分的原始词数。
// 注意这里不做停用词过滤，长度评分依据的是完整词数。
func WordCount(text string) int {
	return len(strings.Fields(text))
}
