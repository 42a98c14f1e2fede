// Package segmenter 将超长简历文本切分为模型可处理的段落。
// 所有长度均按字符(rune)计算。
package segmenter

import (
	"strings"
	"unicode/utf8"
)

// Separator 段落拼接时使用的分隔符，NER偏移量修正依赖该约定（每段 +1）
const Separator = " "

// isSentenceEnd 句子结束符，保留在前一句末尾
func isSentenceEnd(r rune) bool {
	switch r {
	case '。', '.', '!', '！', '?', '？', '\n':
		return true
	}
	return false
}

// SplitSentences 按句末标点切分文本，标点保留在句尾，空白句丢弃
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if isSentenceEnd(r) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	// 最后一句可能没有结束符
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// Segment 将文本切分为不超过 maxLength 个字符的段落。
// 先按句子贪心合并（句间以单个空格连接），仍超长的段落再按字符强制切分。
// 文本不超过 maxLength 时原样返回单个段落；空文本返回 [""]。
func Segment(text string, maxLength int) []string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	var segments []string
	var buf strings.Builder
	bufLen := 0 // 含末尾分隔符

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			segments = append(segments, s)
		}
		buf.Reset()
		bufLen = 0
	}

	for _, sentence := range SplitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if bufLen+n > maxLength {
			flush()
		}
		buf.WriteString(sentence)
		buf.WriteString(Separator)
		bufLen += n + 1
	}
	flush()

	final := make([]string, 0, len(segments))
	for _, seg := range segments {
		if utf8.RuneCountInString(seg) <= maxLength {
			final = append(final, seg)
			continue
		}
		final = append(final, forceSplit(seg, maxLength)...)
	}
	return final
}

// forceSplit 按固定字符数切分
func forceSplit(s string, size int) []string {
	runes := []rune(s)
	chunks := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
