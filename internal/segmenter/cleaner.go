package segmenter

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// 保留：单词字符、空白、中日韩统一表意文字、常用中英文标点
	disallowedChars = regexp.MustCompile(`[^\w\s\p{Han},.，。:：;；!！?？、“”‘’"'（）()【】\[\]{}+#/\-]`)
)

// CleanText 规整简历文本：连续空白合并为一个空格，去除特殊字符，首尾去空白
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
