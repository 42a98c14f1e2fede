// Package knowledge 技能知识库：技能词典以及职称/专业/组织/学历到技能的映射。
// Base 构建完成后只读，可在多个goroutine间共享。
package knowledge

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Mapping 关键词（子串匹配）到技能列表的映射
type Mapping struct {
	Key    string   `yaml:"key"`
	Skills []string `yaml:"skills"`
}

// KeywordRule 任一关键词命中即产出技能
type KeywordRule struct {
	Keywords []string `yaml:"keywords"`
	Skills   []string `yaml:"skills"`
}

// Base 技能知识库
type Base struct {
	skillSet map[string]struct{}

	SkillDict        []string
	TitleSkills      []Mapping
	MajorSkills      []Mapping
	CompanySkills    []Mapping     // 有序，命中第一个即停止
	IndustryRules    []KeywordRule // 有序，仅在未命中公司时使用，命中第一个即停止
	DegreeRules      []KeywordRule // 有序，命中第一个即停止
	SchoolRules      []KeywordRule // 与学历规则相互独立
	FallbackKeywords []string
	Aliases          map[string]string
}

// Extension YAML 扩展文件结构，字段均可省略
type Extension struct {
	Skills           []string          `yaml:"skills"`
	Titles           []Mapping         `yaml:"titles"`
	Majors           []Mapping         `yaml:"majors"`
	Companies        []Mapping         `yaml:"companies"`
	Industries       []KeywordRule     `yaml:"industries"`
	Degrees          []KeywordRule     `yaml:"degrees"`
	Schools          []KeywordRule     `yaml:"schools"`
	FallbackKeywords []string          `yaml:"fallback_keywords"`
	Aliases          map[string]string `yaml:"aliases"`
}

var (
	defaultOnce sync.Once
	defaultBase *Base
)

// Default 返回内置知识库（进程内单例，只读）
func Default() *Base {
	defaultOnce.Do(func() {
		defaultBase = build(nil)
	})
	return defaultBase
}

// New 以内置数据为基础，合并扩展数据构建新的知识库
func New(ext *Extension) *Base {
	return build(ext)
}

// LoadFile 读取 YAML 扩展文件并与内置数据合并；path 为空时返回内置知识库
func LoadFile(path string) (*Base, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取知识库扩展文件失败: %w", err)
	}
	var ext Extension
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("解析知识库扩展文件失败: %w", err)
	}
	return New(&ext), nil
}

func build(ext *Extension) *Base {
	b := &Base{
		skillSet: make(map[string]struct{}),
		Aliases:  make(map[string]string),
	}

	b.addSkills(seedSkills)
	b.TitleSkills = mergeMappings(nil, seedTitles)
	b.MajorSkills = mergeMappings(nil, seedMajors)
	b.CompanySkills = mergeMappings(nil, seedCompanies)
	b.IndustryRules = appendRules(nil, seedIndustries)
	b.DegreeRules = appendRules(nil, seedDegrees)
	b.SchoolRules = appendRules(nil, seedSchools)
	b.FallbackKeywords = appendUnique(nil, lowerAll(seedFallbackKeywords))
	for k, v := range seedAliases {
		b.Aliases[strings.ToLower(k)] = v
	}

	if ext != nil {
		b.addSkills(ext.Skills)
		b.TitleSkills = mergeMappings(b.TitleSkills, ext.Titles)
		b.MajorSkills = mergeMappings(b.MajorSkills, ext.Majors)
		b.CompanySkills = mergeMappings(b.CompanySkills, ext.Companies)
		b.IndustryRules = appendRules(b.IndustryRules, ext.Industries)
		b.DegreeRules = appendRules(b.DegreeRules, ext.Degrees)
		b.SchoolRules = appendRules(b.SchoolRules, ext.Schools)
		b.FallbackKeywords = appendUnique(b.FallbackKeywords, lowerAll(ext.FallbackKeywords))
		for k, v := range ext.Aliases {
			b.Aliases[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}
	}
	return b
}

func (b *Base) addSkills(skills []string) {
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := b.skillSet[s]; ok {
			continue
		}
		b.skillSet[s] = struct{}{}
		b.SkillDict = append(b.SkillDict, s)
	}
}

// mergeMappings 已存在的key合并技能，新key追加到末尾
func mergeMappings(dst []Mapping, src []Mapping) []Mapping {
	index := make(map[string]int, len(dst))
	for i, m := range dst {
		index[m.Key] = i
	}
	for _, m := range src {
		key := strings.ToLower(strings.TrimSpace(m.Key))
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			dst[i].Skills = appendUnique(dst[i].Skills, m.Skills)
			continue
		}
		index[key] = len(dst)
		dst = append(dst, Mapping{Key: key, Skills: appendUnique(nil, m.Skills)})
	}
	return dst
}

func appendRules(dst []KeywordRule, src []KeywordRule) []KeywordRule {
	for _, r := range src {
		if len(r.Keywords) == 0 {
			continue
		}
		dst = append(dst, KeywordRule{
			Keywords: appendUnique(nil, lowerAll(r.Keywords)),
			Skills:   appendUnique(nil, r.Skills),
		})
	}
	return dst
}

func appendUnique(dst []string, src []string) []string {
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// HasSkill 技能词典成员判断（大小写不敏感）
func (b *Base) HasSkill(word string) bool {
	_, ok := b.skillSet[strings.ToLower(word)]
	return ok
}

// SkillsForTitle 职称中包含的所有已知职称短语对应技能的并集
func (b *Base) SkillsForTitle(title string) []string {
	return matchAll(b.TitleSkills, strings.ToLower(title))
}

// SkillsForMajor 专业中包含的所有已知专业短语对应技能的并集
func (b *Base) SkillsForMajor(major string) []string {
	return matchAll(b.MajorSkills, strings.ToLower(major))
}

func matchAll(mappings []Mapping, s string) []string {
	var out []string
	for _, m := range mappings {
		if strings.Contains(s, m.Key) {
			out = append(out, m.Skills...)
		}
	}
	return out
}

// SkillsForOrganization 组织名推断技能：优先匹配具体公司，其次行业关键词
func (b *Base) SkillsForOrganization(org string) []string {
	org = strings.ToLower(org)
	var out []string
	for _, m := range b.CompanySkills {
		if strings.Contains(org, m.Key) {
			out = append(out, m.Skills...)
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, r := range b.IndustryRules {
		if containsAny(org, r.Keywords) {
			return append(out, r.Skills...)
		}
	}
	return out
}

// SkillsForEducation 学历层次与院校层次推断的通用能力
func (b *Base) SkillsForEducation(edu string) []string {
	edu = strings.ToLower(edu)
	var out []string
	for _, r := range b.DegreeRules {
		if containsAny(edu, r.Keywords) {
			out = append(out, r.Skills...)
			break
		}
	}
	for _, r := range b.SchoolRules {
		if containsAny(edu, r.Keywords) {
			out = append(out, r.Skills...)
		}
	}
	return out
}

// Normalize 技能别名规范化，如 js -> javascript、r -> R语言
func (b *Base) Normalize(skill string) string {
	if canonical, ok := b.Aliases[strings.ToLower(skill)]; ok {
		return canonical
	}
	return skill
}
