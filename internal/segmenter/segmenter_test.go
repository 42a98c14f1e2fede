package segmenter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentShortText(t *testing.T) {
	text := "张三，男，硕士学历。"
	segs := Segment(text, 450)
	require.Len(t, segs, 1, "短文本不应切分")
	assert.Equal(t, text, segs[0])
}

func TestSegmentExactlyAtLimit(t *testing.T) {
	text := strings.Repeat("字", 450)
	segs := Segment(text, 450)
	require.Len(t, segs, 1, "恰好等于上限时不应切分")
	assert.Equal(t, text, segs[0])
}

func TestSegmentEmptyInput(t *testing.T) {
	segs := Segment("", 450)
	assert.Equal(t, []string{""}, segs, "空文本应返回单个空段落")
}

func TestSegmentForceSplitWithoutPunctuation(t *testing.T) {
	const maxLen = 20
	text := strings.Repeat("数", 3*maxLen)

	segs := Segment(text, maxLen)

	require.Len(t, segs, 3, "无标点文本长度为3倍上限时应切为3段")
	total := 0
	for _, s := range segs {
		n := utf8.RuneCountInString(s)
		assert.LessOrEqual(t, n, maxLen, "每段长度不应超过上限")
		total += n
	}
	assert.Equal(t, 3*maxLen, total, "强制切分不应丢失字符")
}

func TestSegmentForceSplitRemainder(t *testing.T) {
	segs := Segment(strings.Repeat("a", 25), 10)
	require.Len(t, segs, 3)
	assert.Equal(t, 5, utf8.RuneCountInString(segs[2]))
}

func TestSegmentPacksSentences(t *testing.T) {
	// 每句 10 个字符（含句号）
	sentence := strings.Repeat("技", 9) + "。"
	text := strings.Repeat(sentence, 5)

	segs := Segment(text, 25)

	// 两句 + 分隔符 = 21 <= 25，三句需要 32
	require.Len(t, segs, 3)
	assert.Equal(t, sentence+Separator+sentence, segs[0])
	assert.Equal(t, sentence+Separator+sentence, segs[1])
	assert.Equal(t, sentence, segs[2])
	for _, s := range segs {
		assert.LessOrEqual(t, utf8.RuneCountInString(s), 25)
	}
}

func TestSegmentBoundProperty(t *testing.T) {
	texts := []string{
		strings.Repeat("熟练掌握Java和MySQL。负责分布式系统开发！", 40),
		strings.Repeat("项目经验\n", 200),
		strings.Repeat("a.b?c！", 300),
		strings.Repeat("超长句子没有任何标点", 100) + "。短句。",
	}
	for _, maxLen := range []int{1, 7, 50, 450} {
		for _, text := range texts {
			for _, s := range Segment(text, maxLen) {
				assert.LessOrEqual(t, utf8.RuneCountInString(s), maxLen, "段落超过上限: maxLen=%d", maxLen)
				assert.NotEmpty(t, s, "不应产生空段落")
			}
		}
	}
}

func TestSegmentPreservesContent(t *testing.T) {
	text := strings.Repeat("熟悉Go语言。", 100)
	segs := Segment(text, 45)

	joined := strings.ReplaceAll(strings.Join(segs, ""), Separator, "")
	assert.Equal(t, text, joined, "去掉分隔符后内容应与原文一致")
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("第一句。第二句! 第三句？\n\n  尾句")
	assert.Equal(t, []string{"第一句。", "第二句!", "第三句？", "尾句"}, got)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "熟悉 C++ 和 C#，会用 ci/cd。", CleanText("  熟悉\t\tC++ 和 C#，会用 ci/cd。★★  "))
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText(" \n\t "))
}
