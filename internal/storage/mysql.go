package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ats-score-go/internal/config"
	"ats-score-go/internal/storage/models"
	"ats-score-go/internal/tracing"
)

var mysqlTracer = otel.Tracer("ats-score-go/storage/mysql")

// ErrRecordNotFound 查询不到评分记录时返回，包装gorm的同名错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// MySQL 评分记录的关系型存储
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 建立MySQL连接并迁移评分记录表
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, fmt.Errorf("mysql配置不能为空")
	}

	logLevel := gormlogger.Warn
	switch cfg.LogLevel {
	case "silent":
		logLevel = gormlogger.Silent
	case "error":
		logLevel = gormlogger.Error
	case "info":
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeMins) * time.Minute)

	if err := db.AutoMigrate(&models.ScoreRecord{}); err != nil {
		return nil, fmt.Errorf("迁移score_records表失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

// DB 暴露底层gorm实例，仅供测试和迁移工具使用
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭底层连接池
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateScoreRecord 写入一条评分记录
func (m *MySQL) CreateScoreRecord(ctx context.Context, record *models.ScoreRecord) error {
	ctx, span := m.startSpan(ctx, "CreateScoreRecord", record.RecordUUID)
	defer span.End()

	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "插入评分记录失败")
		return fmt.Errorf("插入评分记录失败: %w", err)
	}
	return nil
}

// GetLatestScoreRecord 返回指定身份最近的一条评分记录。
// identity为空时返回全局最近一条。
func (m *MySQL) GetLatestScoreRecord(ctx context.Context, identity string) (*models.ScoreRecord, error) {
	ctx, span := m.startSpan(ctx, "GetLatestScoreRecord", identity)
	defer span.End()

	query := m.db.WithContext(ctx).Order("created_at DESC")
	if identity != "" {
		query = query.Where("identity = ?", identity)
	}

	var record models.ScoreRecord
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "查询最近评分记录失败")
		return nil, fmt.Errorf("查询最近评分记录失败: %w", err)
	}
	return &record, nil
}

// ListScoreRecords 按时间倒序返回评分记录，排除大文本摘录字段
func (m *MySQL) ListScoreRecords(ctx context.Context, identity string, limit int) ([]models.ScoreRecord, error) {
	ctx, span := m.startSpan(ctx, "ListScoreRecords", identity)
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	query := m.db.WithContext(ctx).
		Omit("resume_excerpt").
		Order("created_at DESC").
		Limit(limit)
	if identity != "" {
		query = query.Where("identity = ?", identity)
	}

	var records []models.ScoreRecord
	if err := query.Find(&records).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "查询评分记录列表失败")
		return nil, fmt.Errorf("查询评分记录列表失败: %w", err)
	}
	return records, nil
}

// DeleteScoreRecord 按UUID删除评分记录，记录不存在时返回ErrRecordNotFound
func (m *MySQL) DeleteScoreRecord(ctx context.Context, recordUUID string) error {
	ctx, span := m.startSpan(ctx, "DeleteScoreRecord", recordUUID)
	defer span.End()

	result := m.db.WithContext(ctx).Where("record_uuid = ?", recordUUID).Delete(&models.ScoreRecord{})
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "删除评分记录失败")
		return fmt.Errorf("删除评分记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// startSpan 为MySQL操作开启span。
// 宿主未接入TracerProvider时这些span是无操作的，开销可忽略。
func (m *MySQL) startSpan(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return mysqlTracer.Start(ctx, "mysql."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mysql"),
			attribute.String("db.operation", op),
			attribute.String("db.key", tracing.MaskAttribute("identity", tracing.TruncateString(key, tracing.MaxRedisLength))),
		),
	)
}
