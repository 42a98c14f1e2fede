package types

import (
	"encoding/json"
	"strings"
)

// EntityType 表示简历实体类型（封闭枚举）
type EntityType int

const (
	// EntityUnknown 模型输出了未识别的类型
	EntityUnknown EntityType = iota
	// EntityNationality 国籍
	EntityNationality
	// EntityEducation 教育背景
	EntityEducation
	// EntityLocation 籍贯
	EntityLocation
	// EntityName 人名
	EntityName
	// EntityOrganization 组织名
	EntityOrganization
	// EntityMajor 专业
	EntityMajor
	// EntityEthnicity 民族
	EntityEthnicity
	// EntityTitle 职称
	EntityTitle
)

// entityTypeMeta 实体类型的模型标签、中文名称和分桶字段
var entityTypeMeta = map[EntityType]struct {
	code   string
	zh     string
	bucket string
}{
	EntityNationality:  {"CONT", "国籍", "nationality"},
	EntityEducation:    {"EDU", "教育背景", "education"},
	EntityLocation:     {"LOC", "籍贯", "location"},
	EntityName:         {"NAME", "人名", "name"},
	EntityOrganization: {"ORG", "组织名", "organization"},
	EntityMajor:        {"PRO", "专业", "major"},
	EntityEthnicity:    {"RACE", "民族", "ethnicity"},
	EntityTitle:        {"TITLE", "职称", "title"},
}

var entityTypeByCode = func() map[string]EntityType {
	m := make(map[string]EntityType, len(entityTypeMeta))
	for t, meta := range entityTypeMeta {
		m[meta.code] = t
	}
	return m
}()

// KnownEntityTypes 按输出字段顺序列出全部已知类型
var KnownEntityTypes = []EntityType{
	EntityName,
	EntityEducation,
	EntityOrganization,
	EntityTitle,
	EntityMajor,
	EntityNationality,
	EntityEthnicity,
	EntityLocation,
}

// ParseEntityType 将模型输出的类型标签转换为枚举，未知标签返回 EntityUnknown
func ParseEntityType(raw string) EntityType {
	if t, ok := entityTypeByCode[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return t
	}
	return EntityUnknown
}

// Code 返回模型使用的类型标签，如 "ORG"
func (t EntityType) Code() string {
	if meta, ok := entityTypeMeta[t]; ok {
		return meta.code
	}
	return "UNKNOWN"
}

// LabelZH 返回类型的中文名称
func (t EntityType) LabelZH() string {
	return entityTypeMeta[t].zh
}

// Bucket 返回结构化结果中对应的字段名
func (t EntityType) Bucket() string {
	return entityTypeMeta[t].bucket
}

// Known 是否为已知类型
func (t EntityType) Known() bool {
	_, ok := entityTypeMeta[t]
	return ok
}

func (t EntityType) String() string {
	return t.Code()
}

// Entity 表示文本中识别出的一个实体，Start/End 为字符(rune)偏移。
// 未超长文本的偏移直接对应原文；分段识别时对应各段以单个空格拼接后的文本，
// 由于分段会去掉句间空白，End 可能大于原文长度
type Entity struct {
	Type    EntityType
	RawType string // 模型原始标签，未知类型时用于回显
	Text    string
	Start   int
	End     int
}

type entityJSON struct {
	Type   string `json:"type"`
	TypeZH string `json:"type_zh"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// MarshalJSON 输出 {type, type_zh, text, start, end}
func (e Entity) MarshalJSON() ([]byte, error) {
	out := entityJSON{Text: e.Text, Start: e.Start, End: e.End}
	if e.Type.Known() {
		out.Type = e.Type.Code()
		out.TypeZH = e.Type.LabelZH()
	} else {
		out.Type = e.RawType
		out.TypeZH = e.RawType
	}
	return json.Marshal(out)
}

// UnmarshalJSON 解析缓存或接口中的实体
func (e *Entity) UnmarshalJSON(data []byte) error {
	var in entityJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.Type = ParseEntityType(in.Type)
	e.RawType = in.Type
	e.Text = in.Text
	e.Start = in.Start
	e.End = in.End
	return nil
}

// StructuredResumeInfo 引擎输出的结构化简历信息
type StructuredResumeInfo struct {
	Name         []string `json:"name"`
	Education    []string `json:"education"`
	Organization []string `json:"organization"`
	Title        []string `json:"title"`
	Major        []string `json:"major"`
	Nationality  []string `json:"nationality"`
	Ethnicity    []string `json:"ethnicity"`
	Location     []string `json:"location"`
	RawEntities  []Entity `json:"raw_entities"`
	Skills       []string `json:"skills"`
}

// NewStructuredResumeInfo 返回所有列表均为空（非nil）的结果，保证JSON输出为 []
func NewStructuredResumeInfo() *StructuredResumeInfo {
	return &StructuredResumeInfo{
		Name:         []string{},
		Education:    []string{},
		Organization: []string{},
		Title:        []string{},
		Major:        []string{},
		Nationality:  []string{},
		Ethnicity:    []string{},
		Location:     []string{},
		RawEntities:  []Entity{},
		Skills:       []string{},
	}
}

// Field 返回某个实体类型对应的列表指针，未知类型返回nil
func (s *StructuredResumeInfo) Field(t EntityType) *[]string {
	switch t {
	case EntityName:
		return &s.Name
	case EntityEducation:
		return &s.Education
	case EntityOrganization:
		return &s.Organization
	case EntityTitle:
		return &s.Title
	case EntityMajor:
		return &s.Major
	case EntityNationality:
		return &s.Nationality
	case EntityEthnicity:
		return &s.Ethnicity
	case EntityLocation:
		return &s.Location
	}
	return nil
}

// ClassifiedCount 八个分类列表的元素总数
func (s *StructuredResumeInfo) ClassifiedCount() int {
	n := 0
	for _, t := range KnownEntityTypes {
		n += len(*s.Field(t))
	}
	return n
}

// SkillCategory 技能类别
type SkillCategory struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Weight float64  `json:"weight"`
	Skills []string `json:"skills"`
}

// WeightedSkill 带权重的技能
type WeightedSkill struct {
	Skill  string  `json:"skill"`
	Weight float64 `json:"weight"`
}

// SkillDisplay 用于展示的分类技能信息
type SkillDisplay struct {
	SkillCategories   []string            `json:"skill_categories"`
	CategorizedSkills map[string][]string `json:"categorized_skills"`
	AllSkills         []string            `json:"all_skills"`
}
