package textproc

import (
	"sort"

	"ats-score-go/internal/types"
)

// 参与关键词统计的最短词长，更短的token多为噪音
const minKeywordLength = 3

// ExtractKeywords 从文本中提取按频次排名的关键词集合。
// 先分词，再统计词频，过滤长度不足minKeywordLength的token，
// 按频次降序稳定排序 (同频保持原文首次出现顺序)，截断到limit。
// 空文本返回空集合，不报错；limit必须为正数，由调用方保证
// (顶层入口对非法limit返回 ErrInvalidLimit)。
func ExtractKeywords(text string, limit int) *types.KeywordSet {
	set := &types.KeywordSet{Keywords: []types.Keyword{}}
	if limit <= 0 {
		return set
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return set
	}

	freq := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	for i, t := range tokens {
		if len(t) < minKeywordLength {
			continue
		}
		if _, ok := freq[t]; !ok {
			firstSeen[t] = i
		}
		freq[t]++
	}

	keywords := make([]types.Keyword, 0, len(freq))
	for term, count := range freq {
		keywords = append(keywords, types.Keyword{Term: term, Count: count})
	}

	// 频次降序，同频按原文首次出现顺序，排序结果完全确定
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return firstSeen[keywords[i].Term] < firstSeen[keywords[j].Term]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	set.Keywords = keywords
	return set
}
