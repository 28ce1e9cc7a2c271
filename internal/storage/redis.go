package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"ats-score-go/internal/config"
	"ats-score-go/internal/constants"
	"ats-score-go/internal/types"
)

// ErrNotFound Redis中键不存在时返回，包装底层的redis.Nil便于上层抽象
var ErrNotFound = redis.Nil

// Redis 键值存储，承载评分历史列表和JD关键词缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接并做一次连通性探测
func NewRedisAdapter(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("为Redis安装OpenTelemetry钩子失败: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis失败 (%s): %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Ping(ctx).Err()
}

// historyKey 拼接指定身份的历史列表键
func historyKey(identity string) string {
	return constants.HistoryKeyPrefix + identity
}

// AppendScoreHistory 头插一条历史记录并裁剪到容量上限。
// LPUSH+LTRIM在同一pipeline中执行，并发追加不会丢条目，
// 超出上限时最旧的条目先被淘汰。
func (r *Redis) AppendScoreHistory(ctx context.Context, identity string, entry types.ScoreHistoryEntry, cap int) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("序列化历史记录失败: %w", err)
	}

	key := historyKey(identity)
	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(cap-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("追加历史记录失败: %w", err)
	}
	return nil
}

// GetScoreHistory 按最近优先返回最多limit条历史记录
func (r *Redis) GetScoreHistory(ctx context.Context, identity string, limit int) ([]types.ScoreHistoryEntry, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}
	if limit <= 0 {
		limit = constants.DefaultHistoryCap
	}

	raw, err := r.Client.LRange(ctx, historyKey(identity), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取历史记录失败: %w", err)
	}

	entries := make([]types.ScoreHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry types.ScoreHistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// 跳过损坏的条目而不是让整条查询失败
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CacheJDKeywords 缓存JD关键词提取结果，键为JD文本的MD5
func (r *Redis) CacheJDKeywords(ctx context.Context, jdMD5 string, set *types.KeywordSet) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("序列化JD关键词失败: %w", err)
	}
	return r.Client.Set(ctx, constants.JDKeywordsCacheKey+jdMD5, payload, constants.JDCacheDuration).Err()
}

// GetCachedJDKeywords 读取JD关键词缓存，未命中返回ErrNotFound
func (r *Redis) GetCachedJDKeywords(ctx context.Context, jdMD5 string) (*types.KeywordSet, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}
	raw, err := r.Client.Get(ctx, constants.JDKeywordsCacheKey+jdMD5).Result()
	if err != nil {
		return nil, err // redis.Nil 即 ErrNotFound
	}
	var set types.KeywordSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("反序列化JD关键词缓存失败: %w", err)
	}
	return &set, nil
}
