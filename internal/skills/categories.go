package skills

import (
	"strings"

	"github.com/fordcg/ai-interview-system/internal/types"
)

// UncategorizedName 未归类技能的展示名称
const UncategorizedName = "其他技能"

const defaultWeight = 1.0

type categoryDef struct {
	key    string
	name   string
	weight float64
	skills []string
}

// 技能类别表，顺序决定展示顺序
var categoryDefs = []categoryDef{
	{"frontend", "前端开发", 1.5, []string{
		"javascript", "html", "css", "react", "vue", "angular", "jquery",
		"bootstrap", "webpack", "sass", "less", "typescript", "redux",
		"node.js", "npm", "yarn", "responsive design", "spa", "pwa",
		"web开发", "前端开发", "前端工程师", "ui开发", "网页开发",
		"javascripts", "js", "web", "web前端", "网页设计", "网页制作",
		"前端", "h5", "html5", "css3", "网站开发", "网站建设", "网站设计",
		"ui", "用户界面", "ux", "用户体验", "界面设计", "交互设计",
	}},
	{"backend", "后端开发", defaultWeight, []string{
		"python", "java", "c++", "c#", "go", "rust", "php", "ruby",
		"django", "flask", "spring", "express", "laravel", "asp.net",
		"ruby on rails", "node.js", "后端开发", "服务器端开发", "后端工程师",
	}},
	{"database", "数据库", defaultWeight, []string{
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "sqlite",
		"oracle", "sql server", "sql", "nosql", "数据库管理", "数据库设计",
	}},
	{"bigdata", "大数据", defaultWeight, []string{
		"hadoop", "spark", "hive", "flink", "kafka", "storm", "big data",
		"大数据", "数据仓库", "数据挖掘", "数据分析", "etl", "data lake",
	}},
	{"cloud", "云计算", defaultWeight, []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "openstack",
		"cloud", "云计算", "云架构", "云原生", "serverless", "iaas", "paas", "saas",
	}},
	{"ai", "人工智能/机器学习", defaultWeight, []string{
		"机器学习", "深度学习", "tensorflow", "pytorch", "keras", "scikit-learn",
		"nlp", "自然语言处理", "计算机视觉", "图像处理", "推荐系统", "人工智能",
		"ai", "ml", "cv", "神经网络", "深度神经网络",
	}},
	{"mobile", "移动开发", defaultWeight, []string{
		"android", "ios", "flutter", "react native", "swift", "objective-c",
		"kotlin", "移动开发", "app开发", "手机应用开发",
	}},
	{"testing", "测试", defaultWeight, []string{
		"自动化测试", "单元测试", "集成测试", "性能测试", "selenium", "junit", "pytest",
		"qa", "质量保证", "软件测试", "测试工程师",
	}},
	{"devops", "DevOps/运维", defaultWeight, []string{
		"devops", "ci/cd", "jenkins", "git", "linux", "shell", "ansible", "puppet", "chef",
		"运维", "系统管理", "网络管理", "系统运维", "运维工程师", "系统管理员",
	}},
	{"management", "项目管理", defaultWeight, []string{
		"敏捷开发", "scrum", "项目管理", "pmp", "prince2", "项目经理",
		"产品经理", "项目协调", "项目规划", "需求分析",
	}},
	{"design", "设计", defaultWeight, []string{
		"photoshop", "illustrator", "sketch", "figma", "ui设计", "ux设计",
		"用户体验", "用户界面", "平面设计", "交互设计", "视觉设计",
	}},
	{"soft_skills", "通用技能", 0.5, []string{
		"沟通能力", "团队协作", "问题解决", "时间管理", "领导力", "创新思维",
		"分析能力", "批判性思维", "英语", "日语", "法语", "德语", "西班牙语",
	}},
}

// CategoryInfo 单个技能的归类信息
type CategoryInfo struct {
	Key    string
	Name   string
	Weight float64
}

// Classifier 将具体技能映射到技能类别
type Classifier struct {
	bySkill map[string]CategoryInfo
}

// NewClassifier 构建反向索引；同一技能出现在多个类别时后者覆盖前者
func NewClassifier() *Classifier {
	c := &Classifier{
		bySkill: make(map[string]CategoryInfo),
	}
	for _, def := range categoryDefs {
		for _, s := range def.skills {
			c.bySkill[s] = CategoryInfo{Key: def.key, Name: def.name, Weight: def.weight}
		}
	}
	return c
}

// Classify 查找技能所属类别
func (c *Classifier) Classify(skill string) (CategoryInfo, bool) {
	info, ok := c.bySkill[strings.ToLower(skill)]
	return info, ok
}

// ClassifySkills 按类别分组，返回分组结果（按类别表顺序）和未归类技能
func (c *Classifier) ClassifySkills(skills []string) ([]types.SkillCategory, []string) {
	groups := make(map[string]*types.SkillCategory)
	var uncategorized []string

	for _, s := range skills {
		info, ok := c.Classify(s)
		if !ok {
			uncategorized = append(uncategorized, s)
			continue
		}
		g, exists := groups[info.Key]
		if !exists {
			g = &types.SkillCategory{Key: info.Key, Name: info.Name, Weight: info.Weight}
			groups[info.Key] = g
		}
		g.Skills = append(g.Skills, s)
	}

	categories := make([]types.SkillCategory, 0, len(groups))
	for _, def := range categoryDefs {
		if g, ok := groups[def.key]; ok {
			categories = append(categories, *g)
		}
	}
	return categories, uncategorized
}

// WeightedSkills 带权重的技能列表，未归类技能权重为 1.0
func (c *Classifier) WeightedSkills(skills []string) []types.WeightedSkill {
	out := make([]types.WeightedSkill, 0, len(skills))
	for _, s := range skills {
		w := defaultWeight
		if info, ok := c.Classify(s); ok {
			w = info.Weight
		}
		out = append(out, types.WeightedSkill{Skill: s, Weight: w})
	}
	return out
}

// Categories 技能涉及的类别名称（去重，按类别表顺序）
func (c *Classifier) Categories(skills []string) []string {
	groups, _ := c.ClassifySkills(skills)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

// Display 生成展示用的分类信息，未归类技能放在 "其他技能" 下
func (c *Classifier) Display(skills []string) *types.SkillDisplay {
	groups, uncategorized := c.ClassifySkills(skills)

	all := make([]string, len(skills))
	copy(all, skills)

	display := &types.SkillDisplay{
		SkillCategories:   make([]string, 0, len(groups)+1),
		CategorizedSkills: make(map[string][]string, len(groups)+1),
		AllSkills:         all,
	}
	for _, g := range groups {
		display.SkillCategories = append(display.SkillCategories, g.Name)
		display.CategorizedSkills[g.Name] = g.Skills
	}
	if len(uncategorized) > 0 {
		display.SkillCategories = append(display.SkillCategories, UncategorizedName)
		display.CategorizedSkills[UncategorizedName] = uncategorized
	}
	return display
}
