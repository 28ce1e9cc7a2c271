package scorer

import (
	"errors"
	"fmt"
)

// 定义基础错误类型，调用方用 errors.Is 区分处理
var (
	ErrEmptyDocument      = errors.New("文档为空或无可提取文本")
	ErrUnreadableDocument = errors.New("文档无法读取，文本提取失败")
	ErrInvalidLimit       = errors.New("关键词数量上限必须为正数")
)

// ScoreProcessError 包含详细上下文的评分流程错误
type ScoreProcessError struct {
	RecordUUID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *ScoreProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.RecordUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.RecordUUID)
}

func (e *ScoreProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ScoreProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewEmptyDocumentError(uuid, detail string) error {
	return &ScoreProcessError{
		RecordUUID: uuid,
		Op:         "extract_features",
		BaseErr:    ErrEmptyDocument,
		Detail:     detail,
	}
}

func NewUnreadableDocumentError(uuid, detail string) error {
	return &ScoreProcessError{
		RecordUUID: uuid,
		Op:         "extract_text",
		BaseErr:    ErrUnreadableDocument,
		Detail:     detail,
	}
}

func NewInvalidLimitError(detail string) error {
	return &ScoreProcessError{
		Op:      "extract_keywords",
		BaseErr: ErrInvalidLimit,
		Detail:  detail,
	}
}

// UserMessage 将错误映射为面向用户的提示语，
// 永远不向用户透出原始错误链
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyDocument):
		return "简历内容为空或无法提取文本，请上传文本型PDF"
	case errors.Is(err, ErrUnreadableDocument):
		return "无法读取该文件，请尝试更简单的PDF或纯文本格式"
	case errors.Is(err, ErrInvalidLimit):
		return "关键词数量参数无效"
	default:
		return "简历分析失败，请稍后重试"
	}
}
