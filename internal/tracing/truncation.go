package tracing

import (
	"strings"
)

const (
	// MaxAttributeLength 默认最大属性长度
	MaxAttributeLength = 200

	// MaxRedisLength Redis键最大长度
	MaxRedisLength = 100

	// MaxResumeLength 简历内容最大长度
	MaxResumeLength = 150
)

// 需要掩码处理的属性名关键字
var piiKeywords = []string{
	"email", "phone", "password", "身份证", "id_card", "address", "地址",
	"name", "姓名", "age", "年龄", "secret", "token", "api_key",
}

// SafeAttributeValue 属性名包含敏感关键字时返回掩码值，否则按 maxLength 截断
func SafeAttributeValue(name string, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for _, keyword := range piiKeywords {
		if strings.Contains(lowerName, keyword) {
			return MaskPII(value)
		}
	}
	return TruncateString(value, maxLength)
}

// MaskPII 对个人敏感信息进行掩码处理
//
//	"张三" -> "张*"，"王小明" -> "王*明"，"13812345678" -> "13*******78"
func MaskPII(value string) string {
	runes := []rune(value)
	n := len(runes)

	switch {
	case n == 0:
		return ""
	case n == 1:
		return "*"
	case n == 2:
		return string(runes[0]) + "*"
	case n <= 4:
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	}
	return string(runes[:2]) + strings.Repeat("*", n-4) + string(runes[n-2:])
}

// TruncateString 截断字符串，保留首尾，中间用...连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := max((maxLength-3)/2, 1)
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeRedisKey 安全处理Redis键
func SafeRedisKey(key string) string {
	return TruncateString(key, MaxRedisLength)
}

// SafeResumeContent 简历内容只保留首尾片段，且对其中的手机号做掩码
func SafeResumeContent(content string) string {
	return TruncateString(maskDigits(content), MaxResumeLength)
}

// maskDigits 连续11位以上数字（手机号、身份证号）做掩码
func maskDigits(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j-i >= 11 {
			b.WriteString(MaskPII(string(runes[i:j])))
			i = j
			continue
		}
		if j > i {
			b.WriteString(string(runes[i:j]))
			i = j
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}
