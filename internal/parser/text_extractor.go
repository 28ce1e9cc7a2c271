package parser

import (
	"context"
	"strings"
	"unicode/utf8"

	"ats-score-go/internal/scorer"
)

// PlainTextExtractor 纯文本直通提取器，用于.txt上传
type PlainTextExtractor struct{}

var _ scorer.TextExtractor = (*PlainTextExtractor)(nil)

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText 纯文本不需要解析，仅做UTF-8与非空校验
func (e *PlainTextExtractor) ExtractText(_ context.Context, data []byte, _ string) (string, error) {
	if !utf8.Valid(data) {
		return "", scorer.NewUnreadableDocumentError("", "文本文件不是合法UTF-8编码")
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", scorer.NewUnreadableDocumentError("", "文本文件为空")
	}
	return text, nil
}

// Dispatcher 按MIME类型把字节流路由到具体提取器。
// 未知类型一律按纯文本尝试，让校验逻辑决定是否可读。
type Dispatcher struct {
	pdf   scorer.TextExtractor
	plain scorer.TextExtractor
}

var _ scorer.TextExtractor = (*Dispatcher)(nil)

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		pdf:   NewPDFExtractor(),
		plain: NewPlainTextExtractor(),
	}
}

func (d *Dispatcher) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if strings.Contains(mime, "pdf") {
		return d.pdf.ExtractText(ctx, data, mimeType)
	}
	return d.plain.ExtractText(ctx, data, mimeType)
}
