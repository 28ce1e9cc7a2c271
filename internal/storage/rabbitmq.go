package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ats-score-go/internal/config"
)

// RabbitMQ 评分事件发布器。
// 每次评分成功后向下游 (报表、看板消费者) 广播一条JSON事件，
// 未配置时整个发布环节被跳过。
type RabbitMQ struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	publishMutex sync.Mutex // amqp channel不是并发安全的
	cfg          *config.RabbitMQConfig
}

// NewRabbitMQ 创建RabbitMQ客户端并声明评分事件交换机
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("无法连接到RabbitMQ服务器: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建RabbitMQ通道失败: %w", err)
	}

	// 声明评分事件交换机 (topic, durable)
	if err := ch.ExchangeDeclare(
		cfg.ScoreEventExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明评分事件交换机失败: %w", err)
	}

	return &RabbitMQ{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
	}, nil
}

// Close 关闭通道和连接
func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// PublishScoreEvent 发布一条评分事件，消息持久化
func (r *RabbitMQ) PublishScoreEvent(ctx context.Context, event *ScoreEventMessage) error {
	if r == nil || r.channel == nil {
		return fmt.Errorf("RabbitMQ通道未初始化")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化评分事件失败: %w", err)
	}

	r.publishMutex.Lock()
	defer r.publishMutex.Unlock()

	err = r.channel.PublishWithContext(
		ctx,
		r.cfg.ScoreEventExchange,
		r.cfg.ScoreEventKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("发布评分事件失败: %w", err)
	}
	return nil
}
