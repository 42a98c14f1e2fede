// Package skills 从简历文本和NER实体中推断技能，并对候选技能进行清洗与归类
package skills

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fordcg/ai-interview-system/internal/constants"
	"github.com/fordcg/ai-interview-system/internal/knowledge"
	"github.com/fordcg/ai-interview-system/internal/tokenizer"
	"github.com/fordcg/ai-interview-system/internal/types"
)

var skillsTracer = otel.Tracer("ai-interview-system/skills")

// 捕获组排除空白和中英文标点
const captureClass = `[^\s，。、；：“”‘’（）,.;:'"]+`

// 触发短语：熟练掌握X、精通X、X开发经验、X工程师 等
var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`熟练掌握\s*(` + captureClass + `)`),
	regexp.MustCompile(`精通\s*(` + captureClass + `)`),
	regexp.MustCompile(`熟悉\s*(` + captureClass + `)`),
	regexp.MustCompile(`了解\s*(` + captureClass + `)`),
	regexp.MustCompile(`掌握\s*(` + captureClass + `)`),
	regexp.MustCompile(`使用\s*(` + captureClass + `)经验`),
	regexp.MustCompile(`(` + captureClass + `)\s*开发经验`),
	regexp.MustCompile(`(` + captureClass + `)\s*工程师`),
	regexp.MustCompile(`(` + captureClass + `)\s*专员`),
	regexp.MustCompile(`(` + captureClass + `)\s*经理`),
}

// 项目描述：捕获组内容再做分词+词典匹配
var projectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`项目(?:中使用了|中采用了|中运用了|使用了|采用了|运用了)\s*([^。，；\n]+)`),
	regexp.MustCompile(`负责\s*([^。，；\n]*?)(?:开发|设计|实现)`),
	regexp.MustCompile(`参与\s*([^。，；\n]*?)(?:项目|系统|平台)`),
	regexp.MustCompile(`开发了\s*([^。，；\n]+)`),
	regexp.MustCompile(`设计了\s*([^。，；\n]+)`),
	regexp.MustCompile(`实现了\s*([^。，；\n]+)`),
}

// 触发短语捕获到并列结构时拆开，如 "Java和MySQL"
var conjunctions = regexp.MustCompile(`以及|和|与|及|或`)

// Inferrer 多策略技能推断，输出清洗前的候选技能（有序、去重）
type Inferrer struct {
	kb        *knowledge.Base
	tokenizer tokenizer.Tokenizer
	window    int
	logger    zerolog.Logger
}

// InferrerOption 配置选项
type InferrerOption func(*Inferrer)

// WithContextWindow 实体上下文窗口大小（前后各N个字符）
func WithContextWindow(n int) InferrerOption {
	return func(in *Inferrer) {
		if n > 0 {
			in.window = n
		}
	}
}

// WithInferrerLogger 设置日志
func WithInferrerLogger(logger zerolog.Logger) InferrerOption {
	return func(in *Inferrer) {
		in.logger = logger
	}
}

// NewInferrer 创建技能推断器，kb 为 nil 时使用内置知识库
func NewInferrer(kb *knowledge.Base, tk tokenizer.Tokenizer, opts ...InferrerOption) *Inferrer {
	if kb == nil {
		kb = knowledge.Default()
	}
	in := &Inferrer{
		kb:        kb,
		tokenizer: tk,
		window:    constants.DefaultContextWindow,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// candidateSet 保持首次出现顺序的集合
type candidateSet struct {
	items []string
	seen  map[string]struct{}
}

func newCandidateSet() *candidateSet {
	return &candidateSet{seen: make(map[string]struct{})}
}

func (c *candidateSet) add(skills ...string) {
	for _, s := range skills {
		if _, ok := c.seen[s]; ok {
			continue
		}
		c.seen[s] = struct{}{}
		c.items = append(c.items, s)
	}
}

// Infer 运行全部五类策略并合并结果，最后做别名规范化。
// 实体偏移按 text 解释
func (in *Inferrer) Infer(ctx context.Context, text string, info *types.StructuredResumeInfo) []string {
	return in.InferSegmented(ctx, text, text, info)
}

// InferSegmented 实体偏移基于分段拼接文本 joined 时使用：
// 实体上下文窗口在 joined 上截取，其余策略仍基于原文 text
func (in *Inferrer) InferSegmented(ctx context.Context, text, joined string, info *types.StructuredResumeInfo) []string {
	_, span := skillsTracer.Start(ctx, "skills.Infer")
	defer span.End()

	if info == nil {
		info = types.NewStructuredResumeInfo()
	}
	set := newCandidateSet()

	// 1. 职称推断
	for _, title := range info.Title {
		set.add(in.kb.SkillsForTitle(title)...)
	}
	// 2. 专业推断
	for _, major := range info.Major {
		set.add(in.kb.SkillsForMajor(major)...)
	}
	// 3. 分词 + 词组词典匹配
	dict := in.dictionaryMatches(text)
	set.add(dict...)
	// 4. 触发短语正则
	triggers := in.triggerMatches(text)
	set.add(triggers...)
	// 5. 组织/学历推断、项目描述、实体上下文
	for _, org := range info.Organization {
		set.add(in.kb.SkillsForOrganization(org)...)
	}
	for _, edu := range info.Education {
		set.add(in.kb.SkillsForEducation(edu)...)
	}
	set.add(in.projectMatches(text)...)
	set.add(in.entityContextMatches(joined, info.RawEntities)...)

	normalized := newCandidateSet()
	for _, s := range set.items {
		normalized.add(in.kb.Normalize(s))
	}

	span.SetAttributes(
		attribute.Int("skills.dictionary", len(dict)),
		attribute.Int("skills.trigger", len(triggers)),
		attribute.Int("skills.candidates", len(normalized.items)),
	)
	in.logger.Debug().
		Int("dictionary", len(dict)).
		Int("trigger", len(triggers)).
		Int("candidates", len(normalized.items)).
		Msg("技能候选提取完成")

	return normalized.items
}

// dictionaryMatches 单词及相邻2/3词组合与技能词典匹配
func (in *Inferrer) dictionaryMatches(text string) []string {
	words := in.cut(text)
	var out []string
	check := func(w string) {
		w = strings.ToLower(w)
		if in.kb.HasSkill(w) {
			out = append(out, w)
		}
	}
	for i := range words {
		check(words[i])
		if i+1 < len(words) {
			check(words[i] + words[i+1])
		}
		if i+2 < len(words) {
			check(words[i] + words[i+1] + words[i+2])
		}
	}
	return out
}

// triggerMatches 触发短语捕获组，长度大于1才作为候选
func (in *Inferrer) triggerMatches(text string) []string {
	var out []string
	for _, re := range triggerPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, part := range conjunctions.Split(m[1], -1) {
				skill := strings.ToLower(strings.TrimSpace(part))
				if utf8.RuneCountInString(skill) > 1 {
					out = append(out, skill)
				}
			}
		}
	}
	return out
}

// projectMatches 项目描述上下文中的词典技能
func (in *Inferrer) projectMatches(text string) []string {
	var out []string
	for _, re := range projectPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, in.segmentSkills(strings.TrimSpace(m[1]))...)
		}
	}
	return out
}

// entityContextMatches 每个实体前后窗口内的词典技能
func (in *Inferrer) entityContextMatches(text string, entities []types.Entity) []string {
	if len(entities) == 0 {
		return nil
	}
	runes := []rune(text)
	var out []string
	for _, e := range entities {
		start := max(0, e.Start-in.window)
		end := min(len(runes), e.End+in.window)
		if start >= end {
			continue
		}
		out = append(out, in.segmentSkills(string(runes[start:end]))...)
	}
	return out
}

// segmentSkills 片段分词后逐词匹配词典（不做词组拼接）
func (in *Inferrer) segmentSkills(segment string) []string {
	var out []string
	for _, w := range in.cut(segment) {
		w = strings.ToLower(strings.TrimSpace(w))
		if utf8.RuneCountInString(w) > 1 && in.kb.HasSkill(w) {
			out = append(out, w)
		}
	}
	return out
}

func (in *Inferrer) cut(text string) []string {
	if text == "" || in.tokenizer == nil {
		return nil
	}
	return in.tokenizer.Cut(text)
}

// FallbackExtract NER不可用时的降级提取：小写子串关键词扫描
func FallbackExtract(kb *knowledge.Base, text string) []string {
	if kb == nil {
		kb = knowledge.Default()
	}
	lower := strings.ToLower(text)
	var out []string
	for _, k := range kb.FallbackKeywords {
		if strings.Contains(lower, k) {
			out = append(out, k)
		}
	}
	return out
}
