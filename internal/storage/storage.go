// Package storage 聚合所有外部存储依赖：
// MySQL承载评分记录，Redis承载评分历史，RabbitMQ承载评分事件。
package storage

import (
	"context"
	"fmt"
	"strings"

	"ats-score-go/internal/config"
	"ats-score-go/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖。
// 每个后端都是可选的：未配置的后端保持nil，由调用方降级处理。
type Storage struct {
	// 关系型数据库 (评分记录)
	MySQL *MySQL

	// 键值存储 (评分历史)
	Redis *Redis

	// 消息队列 (评分事件)
	RabbitMQ *RabbitMQ
}

// NewStorage 按配置初始化各存储后端。
// 单个后端初始化失败只记警告不中断启动，全部失败才返回错误，
// 保证本地开发可以在没有任何外部依赖的情况下起服务。
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var initErrors []string
	configured := 0

	if cfg.MySQL.Host != "" {
		configured++
		mysql, err := NewMySQL(&cfg.MySQL)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MySQL失败，评分记录持久化不可用")
			initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
		} else {
			storage.MySQL = mysql
			logger.Info().Msg("MySQL客户端初始化成功")
		}
	}

	if cfg.Redis.Address != "" {
		configured++
		redis, err := NewRedisAdapter(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化Redis失败，历史存储退回进程内实现")
			initErrors = append(initErrors, fmt.Sprintf("Redis: %v", err))
		} else {
			storage.Redis = redis
			logger.Info().Msg("Redis客户端初始化成功")
		}
	}

	if cfg.RabbitMQ.URL != "" {
		configured++
		rabbit, err := NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化RabbitMQ失败，评分事件不发布")
			initErrors = append(initErrors, fmt.Sprintf("RabbitMQ: %v", err))
		} else {
			storage.RabbitMQ = rabbit
			logger.Info().Msg("RabbitMQ客户端初始化成功")
		}
	}

	if configured > 0 && len(initErrors) == configured {
		return nil, fmt.Errorf("所有已配置的存储后端均初始化失败: %s", strings.Join(initErrors, "; "))
	}

	return storage, nil
}

// Close 关闭所有已初始化的存储后端
func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
}
