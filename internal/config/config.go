// Package config 应用配置的加载与默认值处理
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ats-score-go/internal/constants"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// MySQL配置 (评分记录持久化)
	MySQL MySQLConfig `yaml:"mysql"`

	// Redis配置 (评分历史)
	Redis RedisConfig `yaml:"redis"`

	// RabbitMQ配置 (评分事件发布，可选)
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`

	// 评分算法配置
	Scoring ScoringConfig `yaml:"scoring"`

	// 历史记录配置
	History HistoryConfig `yaml:"history"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address        string `yaml:"address"`         // 监听地址，例如 ":8080"
	APIKey         string `yaml:"api_key"`         // 非空时启用keyauth中间件
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 整条评分流水线的调用方超时
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// MySQLConfig MySQL连接配置
type MySQLConfig struct {
	Host            string `yaml:"host"` // 为空时禁用MySQL持久化
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifeMins int    `yaml:"conn_max_life_minutes"`
	LogLevel        string `yaml:"log_level"` // silent, error, warn, info
}

// DSN 构造go-sql-driver格式的连接串
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Address  string `yaml:"address"` // 为空时历史存储退回进程内实现
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// RabbitMQConfig RabbitMQ配置
type RabbitMQConfig struct {
	URL                string `yaml:"url"` // 为空时不发布评分事件
	ScoreEventExchange string `yaml:"score_event_exchange"`
	ScoreEventKey      string `yaml:"score_event_routing_key"`
}

// ScoringConfig 评分算法配置，默认值可按部署覆盖
type ScoringConfig struct {
	SectionBonus    int   `yaml:"section_bonus"`    // 每个章节的加分，默认5
	KeywordBonus    int   `yaml:"keyword_bonus"`    // 每个参考关键词的加分，默认3
	FormatPenalty   int   `yaml:"format_penalty"`   // 复杂排版扣分，默认10
	KeywordLimit    int   `yaml:"keyword_limit"`    // JD关键词top-N，默认40
	SuggestionLimit int   `yaml:"suggestion_limit"` // 建议条数top-K，默认8
	ExcerptLength   int   `yaml:"excerpt_length"`   // 持久化文本截断长度，默认5000
	EnableJitter    bool  `yaml:"enable_jitter"`    // 得分抖动开关，默认关闭
	JitterSeed      int64 `yaml:"jitter_seed"`      // 抖动随机种子，0表示使用时间种子
}

// HistoryConfig 历史记录配置
type HistoryConfig struct {
	Cap int `yaml:"cap"` // 每个身份保留的条数上限，默认20
}

// LoadConfig 从文件加载配置。
// 未指定路径时在常见位置查找；找不到文件则返回带默认值的配置，
// 方便本地开发和测试直接起服务。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		if envPath := os.Getenv("ATS_CONFIG_PATH"); envPath != "" {
			configPath = envPath
		}
	}
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"../config/config.yaml",
			"../../config/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".ats-score", "config.yaml"),
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			cfg := &Config{}
			cfg.applyDefaults()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.applyDefaults()
	applyEnvOverrides(&config)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyEnvOverrides 从环境变量覆盖敏感配置（如果存在）
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ATS_MYSQL_PASSWORD"); v != "" {
		cfg.MySQL.Password = v
	}
	if v := os.Getenv("ATS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ATS_RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("ATS_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
}

// applyDefaults 填充未设置的默认值
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 30
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = constants.MaxUploadBytes
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
	if c.MySQL.Port == 0 {
		c.MySQL.Port = 3306
	}
	if c.MySQL.MaxOpenConns <= 0 {
		c.MySQL.MaxOpenConns = 25
	}
	if c.MySQL.MaxIdleConns <= 0 {
		c.MySQL.MaxIdleConns = 5
	}
	if c.MySQL.ConnMaxLifeMins <= 0 {
		c.MySQL.ConnMaxLifeMins = 60
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.MinIdleConns <= 0 {
		c.Redis.MinIdleConns = 2
	}
	if c.Redis.DialTimeoutSeconds <= 0 {
		c.Redis.DialTimeoutSeconds = 5
	}
	if c.Redis.ReadTimeoutSeconds <= 0 {
		c.Redis.ReadTimeoutSeconds = 3
	}
	if c.Redis.WriteTimeoutSeconds <= 0 {
		c.Redis.WriteTimeoutSeconds = 3
	}
	if c.RabbitMQ.ScoreEventExchange == "" {
		c.RabbitMQ.ScoreEventExchange = "ats.score.events"
	}
	if c.RabbitMQ.ScoreEventKey == "" {
		c.RabbitMQ.ScoreEventKey = "score.created"
	}
	if c.Scoring.SectionBonus <= 0 {
		c.Scoring.SectionBonus = constants.DefaultSectionBonus
	}
	if c.Scoring.KeywordBonus <= 0 {
		c.Scoring.KeywordBonus = constants.DefaultKeywordBonus
	}
	if c.Scoring.FormatPenalty <= 0 {
		c.Scoring.FormatPenalty = constants.DefaultFormatPenalty
	}
	if c.Scoring.KeywordLimit <= 0 {
		c.Scoring.KeywordLimit = constants.DefaultKeywordLimit
	}
	if c.Scoring.SuggestionLimit <= 0 {
		c.Scoring.SuggestionLimit = constants.DefaultSuggestionLimit
	}
	if c.Scoring.ExcerptLength <= 0 {
		c.Scoring.ExcerptLength = constants.DefaultExcerptLength
	}
	if c.History.Cap <= 0 {
		c.History.Cap = constants.DefaultHistoryCap
	}
}

// validate 做基本的配置健全性检查
func (c *Config) validate() error {
	if !strings.Contains(c.Server.Address, ":") {
		return fmt.Errorf("服务器地址格式无效: %s", c.Server.Address)
	}
	if c.MySQL.Host != "" && c.MySQL.Database == "" {
		return fmt.Errorf("配置了MySQL主机但缺少数据库名")
	}
	return nil
}
