package parser

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"ats-score-go/internal/logger"
	"ats-score-go/internal/scorer"
)

// PDFExtractor 基于纯Go库的PDF文本提取器，
// 只支持文本型PDF，扫描件会因提取不出文本而报错
type PDFExtractor struct{}

// 确保PDFExtractor实现了TextExtractor接口
var _ scorer.TextExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor 创建PDF文本提取器
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText 从PDF字节流逐页提取纯文本。
// 单页解析失败只跳过该页，全部页面都无文本才算不可读。
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte, _ string) (string, error) {
	if len(data) == 0 {
		return "", scorer.NewUnreadableDocumentError("", "PDF数据为空")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", scorer.NewUnreadableDocumentError("", "PDF解析失败: "+err.Error())
	}

	var builder strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败继续处理其余页面
			logger.Debug().Err(err).Int("page", pageIndex).Msg("PDF单页文本提取失败，已跳过")
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", scorer.NewUnreadableDocumentError("", "PDF中未提取到任何文本")
	}
	return text, nil
}
