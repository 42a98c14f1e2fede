package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRejectsKnownNoise(t *testing.T) {
	s := NewSanitizer(0)

	got := s.Sanitize([]string{"3名初级", "j", "r", "负责整合", "python", "团队协作"})

	assert.ElementsMatch(t, []string{"r", "python", "团队协作"}, got)
	assert.NotContains(t, got, "3名初级")
	assert.NotContains(t, got, "j")
	assert.NotContains(t, got, "负责整合")
}

func TestSanitizeRules(t *testing.T) {
	s := NewSanitizer(20)

	tests := []struct {
		name      string
		candidate string
		keep      bool
	}{
		{"停用词", "的", false},
		{"单个字母", "c", false},
		{"单个数字", "7", false},
		{"单个汉字", "学", false},
		{"白名单大写", "R", true},
		{"年份开头", "2023年网页", false},
		{"个数开头", "5个模块", false},
		{"百分比", "35%", false},
		{"小数百分比", "99.8%", false},
		{"万开头", "10万次", false},
		{"序数开头", "第1段", false},
		{"全角年份开头", "２０２３年", false},
		{"全角个数开头", "３个模块", false},
		{"全角序数开头", "第２段", false},
		{"动词担任", "曾在阿里巴巴担任高级软件", false},
		{"动词熟悉", "熟悉postgresql", false},
		{"动词大小写无关", "使用Java", false},
		{"纯数字", "2024", false},
		{"纯标点", "——", false},
		{"超长", strings.Repeat("长", 21), false},
		{"恰好上限", strings.Repeat("长", 20), true},
		{"正常英文", "MySQL", true},
		{"带符号", "c++", true},
		{"正常中文", "分布式系统", true},
		{"空白", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize([]string{tt.candidate})
			if tt.keep {
				assert.Len(t, got, 1, "候选应被保留: %q", tt.candidate)
			} else {
				assert.Empty(t, got, "候选应被过滤: %q", tt.candidate)
			}
		})
	}
}

func TestSanitizeTrimsAndDeduplicates(t *testing.T) {
	s := NewSanitizer(0)

	got := s.Sanitize([]string{" python ", "java", "python", "Java", "java"})

	// 去重大小写敏感，保持首次出现顺序
	assert.Equal(t, []string{"python", "java", "Java"}, got)
}

func TestSanitizeIdempotent(t *testing.T) {
	s := NewSanitizer(0)
	inputs := [][]string{
		{"3名初级", "j", "r", "负责整合", "python", "团队协作"},
		{" R ", "r", "R语言", "  mysql", "mysql  ", "第3名", "熟悉go"},
		{},
		{"", " ", "的", "c#", "ci/cd", "react native"},
	}
	for _, in := range inputs {
		once := s.Sanitize(in)
		twice := s.Sanitize(once)
		assert.Equal(t, once, twice, "清洗应满足幂等性")
	}
}

func TestSanitizeEmpty(t *testing.T) {
	assert.Empty(t, NewSanitizer(0).Sanitize(nil))
}
