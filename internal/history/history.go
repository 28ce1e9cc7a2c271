// Package history 实现评分历史的追加式存储。
// 每个身份维护一条按时间倒序的记录列表，超出容量上限时
// 淘汰最旧的条目 (简单FIFO，访问模式始终是按新近度读取)。
package history

import (
	"context"

	"ats-score-go/internal/constants"
	"ats-score-go/internal/types"
)

// Store 评分历史存储接口。
// Append 对同一身份的并发调用不允许丢失条目；
// Get 按最近优先返回，limit非正时由实现取默认值。
type Store interface {
	Append(ctx context.Context, identity string, entry types.ScoreHistoryEntry) error
	Get(ctx context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error)
}

// NormalizeCap 容量上限非正时回退到默认值
func NormalizeCap(cap int) int {
	if cap <= 0 {
		return constants.DefaultHistoryCap
	}
	return cap
}
