package history

import (
	"context"

	"ats-score-go/internal/storage"
	"ats-score-go/internal/types"
)

// RedisStore Redis列表实现的历史存储，多实例部署共享同一份历史。
// 追加通过LPUSH+LTRIM的事务pipeline完成，对同一身份的并发追加
// 不会互相覆盖。
type RedisStore struct {
	redis *storage.Redis
	cap   int
}

// NewRedisStore 创建Redis历史存储
func NewRedisStore(redis *storage.Redis, cap int) *RedisStore {
	return &RedisStore{
		redis: redis,
		cap:   NormalizeCap(cap),
	}
}

// Append 追加一条历史记录并按容量上限淘汰最旧条目
func (r *RedisStore) Append(ctx context.Context, identity string, entry types.ScoreHistoryEntry) error {
	return r.redis.AppendScoreHistory(ctx, identity, entry, r.cap)
}

// Get 按最近优先返回最多limit条记录
func (r *RedisStore) Get(ctx context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error) {
	if limit <= 0 || limit > r.cap {
		limit = r.cap
	}
	return r.redis.GetScoreHistory(ctx, identity, limit)
}
