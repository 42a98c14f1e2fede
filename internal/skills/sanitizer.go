package skills

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fordcg/ai-interview-system/internal/constants"
)

// 停用词与单字符黑名单（比较时使用小写形式）
var stopwords = map[string]struct{}{
	"的": {}, "了": {}, "在": {}, "和": {}, "与": {}, "或": {}, "及": {}, "等": {}, "有": {}, "是": {}, "为": {},
}

// 单字符白名单：r 在推断阶段会被规范化为 "R语言"
var singleCharWhitelist = map[string]struct{}{
	"r": {},
}

// 数量词/序数开头的句子片段
var invalidPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\p{Nd}+名`),
	regexp.MustCompile(`^\p{Nd}+年`),
	regexp.MustCompile(`^\p{Nd}+个`),
	regexp.MustCompile(`^\p{Nd}+%`),
	regexp.MustCompile(`^\p{Nd}+万`),
	regexp.MustCompile(`^\p{Nd}+\.?\p{Nd}*%`),
	regexp.MustCompile(`^第\p{Nd}+`),
}

// VerbMarkers 含这些动词的候选是从句片段而不是技能名词
var VerbMarkers = []string{
	"担任", "具有", "拥有", "负责", "主导", "指导", "参与", "使用", "利用",
	"通过", "基于", "进行", "实现", "完成", "掌握", "熟悉", "精通", "了解",
}

// Sanitizer 技能候选清洗：去噪、去重，保持首次出现顺序。
// 对自身输出再次执行结果不变。
type Sanitizer struct {
	maxLength int
}

// NewSanitizer maxLength<=0 时使用默认值 20
func NewSanitizer(maxLength int) *Sanitizer {
	if maxLength <= 0 {
		maxLength = constants.DefaultMaxSkillLength
	}
	return &Sanitizer{maxLength: maxLength}
}

// Sanitize 过滤噪声候选并去重
func (s *Sanitizer) Sanitize(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		skill, ok := s.accept(c)
		if !ok {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// accept 返回规整后的技能以及是否保留
func (s *Sanitizer) accept(candidate string) (string, bool) {
	skill := strings.TrimSpace(candidate)
	if skill == "" {
		return "", false
	}
	lower := strings.ToLower(skill)

	if _, ok := stopwords[lower]; ok {
		return "", false
	}

	n := utf8.RuneCountInString(skill)
	if n == 1 {
		// 单字符只保留白名单
		if _, ok := singleCharWhitelist[lower]; ok {
			return lower, true
		}
		return "", false
	}
	if n > s.maxLength {
		return "", false
	}

	for _, re := range invalidPatterns {
		if re.MatchString(skill) {
			return "", false
		}
	}
	for _, verb := range VerbMarkers {
		if strings.Contains(lower, verb) {
			return "", false
		}
	}
	if isNumeric(skill) || !hasLetterOrDigit(skill) {
		return "", false
	}
	return skill, true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// hasLetterOrDigit 纯标点/符号的候选视为畸形
func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
