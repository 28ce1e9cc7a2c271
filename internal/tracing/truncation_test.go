package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))

	long := strings.Repeat("a", 30)
	truncated := TruncateString(long, 10)
	assert.Equal(t, "aaaaaaaaaa...(截断)", truncated)

	// maxLen非正时使用默认值
	assert.Equal(t, "short", TruncateString("short", 0))
}

func TestTruncateStringMultibyte(t *testing.T) {
	// 按rune截断，不产生半个多字节字符
	s := strings.Repeat("简", 10)
	truncated := TruncateString(s, 4)
	assert.Equal(t, "简简简简...(截断)", truncated)
}

func TestMaskAttribute(t *testing.T) {
	assert.Equal(t, "u**********m", MaskAttribute("user.email", "user@foo.com"))
	assert.Equal(t, "**", MaskAttribute("phone", "13"))
	// 非PII键不做掩码
	assert.Equal(t, "fintech", MaskAttribute("sector", "fintech"))
}
