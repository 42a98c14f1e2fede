package ner

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fordcg/ai-interview-system/internal/knowledge"
)

// lexiconRule 正则规则，group 为实体所在的捕获组（0 表示整个匹配）
type lexiconRule struct {
	label string
	re    *regexp.Regexp
	group int
}

const (
	titleModifiers = `(?:高级|资深|初级|中级|首席|主任)?`
	countries      = `中国|美国|英国|日本|韩国|加拿大|澳大利亚|德国|法国|新加坡|俄罗斯`
	ethnicities    = `汉族|回族|满族|蒙古族|藏族|维吾尔族|壮族|苗族|彝族|土家族|朝鲜族|侗族|瑶族|白族|哈萨克族`
	clauseEnd      = `(?:[，,。；;\s]|$)`
)

var extraDegrees = []string{"博士后", "本科", "学士", "大专", "专科", "mba"}

// 与知识库无关的固定规则
var staticRules = []lexiconRule{
	{"NAME", regexp.MustCompile(`^\s*(\p{Han}{2,3})[，,\s]`), 1},
	{"NAME", regexp.MustCompile(`姓名[:：]\s*(\p{Han}{2,4})`), 1},
	{"ORG", regexp.MustCompile(`(?:毕业于|就读于)?(\p{Han}{2,8}?(?:大学|学院))`), 1},
	{"ORG", regexp.MustCompile(`(?:曾在|就职于|任职于)?(\p{Han}{2,10}?(?:公司|集团|银行|研究院|医院))`), 1},
	{"RACE", regexp.MustCompile(`(` + ethnicities + `)`), 1},
	{"CONT", regexp.MustCompile(`国籍[:：]?\s*(` + countries + `)`), 1},
	{"CONT", regexp.MustCompile(`(` + countries + `)籍`), 1},
	{"LOC", regexp.MustCompile(`(?:籍贯|户籍|出生地)[:：]?\s*(\p{Han}{2,9}?)` + clauseEnd), 1},
}

// LexiconModel 基线识别器：知识库关键词加少量正则规则。
// 只在真实模型不可用且配置允许时作为加载链的最后一步
type LexiconModel struct {
	rules []lexiconRule
}

// NewLexiconModel 以知识库中的公司、职称、专业、学历关键词构建识别规则，kb 为 nil 时使用内置知识库
func NewLexiconModel(kb *knowledge.Base) *LexiconModel {
	if kb == nil {
		kb = knowledge.Default()
	}

	var companies, titles, majors, degrees []string
	for _, m := range kb.CompanySkills {
		companies = append(companies, m.Key)
	}
	for _, m := range kb.TitleSkills {
		titles = append(titles, m.Key)
	}
	for _, m := range kb.MajorSkills {
		majors = append(majors, m.Key)
	}
	for _, r := range kb.DegreeRules {
		degrees = append(degrees, r.Keywords...)
	}
	degrees = append(degrees, extraDegrees...)

	rules := make([]lexiconRule, 0, len(staticRules)+4)
	if re := alternation(companies); re != "" {
		rules = append(rules, lexiconRule{"ORG", regexp.MustCompile(re), 0})
	}
	if re := alternation(titles); re != "" {
		rules = append(rules, lexiconRule{"TITLE", regexp.MustCompile(titleModifiers + re), 0})
	}
	if re := alternation(majors); re != "" {
		rules = append(rules, lexiconRule{"PRO", regexp.MustCompile(re), 0})
	}
	if re := alternation(degrees); re != "" {
		rules = append(rules, lexiconRule{"EDU", regexp.MustCompile(re), 0})
	}
	rules = append(rules, staticRules...)

	return &LexiconModel{rules: rules}
}

// alternation 关键词按长度降序组成分组，保证长词优先
func alternation(words []string) string {
	if len(words) == 0 {
		return ""
	}
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a))
	})
	quoted := make([]string, 0, len(sorted))
	for _, w := range sorted {
		if w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// Recognize 实现 Model。在小写文本上匹配，返回的 span 取自原文
func (l *LexiconModel) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	runes := []rune(text)
	var found []RawEntity
	for _, rule := range l.rules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(lower, -1) {
			bs, be := loc[2*rule.group], loc[2*rule.group+1]
			if bs < 0 || bs >= be {
				continue
			}
			start := utf8.RuneCountInString(lower[:bs])
			end := start + utf8.RuneCountInString(lower[bs:be])
			if end > len(runes) {
				continue
			}
			found = append(found, RawEntity{
				Type:  rule.label,
				Span:  string(runes[start:end]),
				Start: start,
				End:   end,
			})
		}
	}
	return resolveOverlaps(found), nil
}

// Source 实现 Sourced
func (l *LexiconModel) Source() ModelSource {
	return SourceBaseline
}

// resolveOverlaps 按起点排序，重叠时保留先出现且更长的实体
func resolveOverlaps(entities []RawEntity) []RawEntity {
	slices.SortStableFunc(entities, func(a, b RawEntity) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.End-b.Start, a.End-a.Start)
	})

	out := make([]RawEntity, 0, len(entities))
	lastEnd := 0
	for _, e := range entities {
		if e.Start < lastEnd {
			continue
		}
		out = append(out, e)
		lastEnd = e.End
	}
	return out
}
