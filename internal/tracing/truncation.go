// Package tracing 提供追踪属性的截断与脱敏辅助函数，
// 避免把超长的简历文本或个人信息写进span属性。
package tracing

import (
	"strings"
)

const (
	// DefaultMaxLength 默认最大属性长度
	DefaultMaxLength = 200

	// MaxSQLLength SQL语句最大长度
	MaxSQLLength = 500

	// MaxRedisLength Redis键值最大长度
	MaxRedisLength = 100

	// MaxResumeLength 简历文本最大长度
	MaxResumeLength = 150
)

// maskPIILookup 需要掩码处理的关键字映射
var maskPIILookup = map[string]bool{
	"email":    true,
	"phone":    true,
	"password": true,
	"identity": true,
	"address":  true,
	"name":     true,
	"姓名":       true,
	"电话":       true,
	"邮箱":       true,
}

// TruncateString 将字符串截断到maxLen，超出部分用省略号标记
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "...(截断)"
}

// MaskAttribute 属性键命中PII关键字时掩码其值
func MaskAttribute(key, value string) string {
	lowered := strings.ToLower(key)
	for pii := range maskPIILookup {
		if strings.Contains(lowered, pii) {
			return maskValue(value)
		}
	}
	return value
}

// maskValue 保留首尾各一个字符，中间全部用星号替换
func maskValue(v string) string {
	runes := []rune(v)
	if len(runes) <= 2 {
		return "**"
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
