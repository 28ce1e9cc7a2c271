package history

import (
	"context"
	"sync"

	"ats-score-go/internal/types"
)

// MemoryStore 进程内历史存储，用于测试和未配置Redis的部署。
// 互斥锁保证同一身份的并发追加串行执行，不丢条目。
type MemoryStore struct {
	mu      sync.Mutex
	cap     int
	entries map[string][]types.ScoreHistoryEntry
}

// NewMemoryStore 创建进程内历史存储
func NewMemoryStore(cap int) *MemoryStore {
	return &MemoryStore{
		cap:     NormalizeCap(cap),
		entries: make(map[string][]types.ScoreHistoryEntry),
	}
}

// Append 头插新条目并裁剪到容量上限，最旧的先被淘汰
func (m *MemoryStore) Append(_ context.Context, identity string, entry types.ScoreHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append([]types.ScoreHistoryEntry{entry}, m.entries[identity]...)
	if len(list) > m.cap {
		list = list[:m.cap]
	}
	m.entries[identity] = list
	return nil
}

// Get 按最近优先返回最多limit条记录
func (m *MemoryStore) Get(_ context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[identity]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]types.ScoreHistoryEntry, limit)
	copy(out, list[:limit])
	return out, nil
}
