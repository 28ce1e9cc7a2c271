package scorer

import "context"

// TextExtractor 外部文本提取协作方。
// 核心不关心文件格式细节，只消费提取后的纯文本；
// 损坏、扫描件或空内容应返回 ErrUnreadableDocument 链上的错误。
type TextExtractor interface {
	// ExtractText 从原始字节中提取纯文本，mimeType为上传方声明的类型
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}
