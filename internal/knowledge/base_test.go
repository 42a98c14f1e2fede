package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookups(t *testing.T) {
	kb := Default()

	assert.True(t, kb.HasSkill("Java"), "词典匹配应大小写不敏感")
	assert.True(t, kb.HasSkill("mysql"))
	assert.False(t, kb.HasSkill("分布式系统"), "分布式系统不在平面词典中")

	assert.Equal(t, []string{"编程", "软件开发", "代码审查", "调试", "单元测试"}, kb.SkillsForTitle("高级软件工程师"))
	assert.Contains(t, kb.SkillsForMajor("计算机科学与技术"), "数据结构")
	assert.Empty(t, kb.SkillsForTitle("厨师"))
}

func TestSkillsForOrganization(t *testing.T) {
	kb := Default()

	tests := []struct {
		org  string
		want []string
	}{
		{"阿里巴巴集团", []string{"java", "spring", "mysql", "redis", "dubbo", "分布式系统"}},
		{"Google Inc.", []string{"python", "go", "tensorflow", "云计算", "搜索"}},
		{"招商银行", []string{"金融", "风险管理", "数据分析", "sql"}},
		{"协和医院", []string{"医疗", "生物信息学", "数据分析"}},
		{"新东方教育", []string{"教学", "课程设计", "教育技术"}},
		{"某某咨询", nil},
	}
	for _, tt := range tests {
		t.Run(tt.org, func(t *testing.T) {
			assert.Equal(t, tt.want, kb.SkillsForOrganization(tt.org))
		})
	}
}

func TestSkillsForOrganizationFirstCompanyWins(t *testing.T) {
	// 同时包含两个公司名时只取第一个命中的映射
	got := Default().SkillsForOrganization("阿里巴巴与腾讯联合实验室")
	assert.Equal(t, []string{"java", "spring", "mysql", "redis", "dubbo", "分布式系统"}, got)
}

func TestSkillsForEducation(t *testing.T) {
	kb := Default()

	assert.Equal(t, []string{"研究能力", "学术写作", "数据分析", "项目管理"}, kb.SkillsForEducation("博士"))
	assert.Equal(t, []string{"研究能力", "数据分析", "学术写作"}, kb.SkillsForEducation("硕士"))
	assert.Equal(t,
		[]string{"研究能力", "数据分析", "学术写作", "学习能力", "分析能力", "解决问题"},
		kb.SkillsForEducation("清华大学硕士研究生"))
	assert.Empty(t, kb.SkillsForEducation("本科"))
}

func TestNormalize(t *testing.T) {
	kb := Default()
	assert.Equal(t, "javascript", kb.Normalize("JS"))
	assert.Equal(t, "python", kb.Normalize("py"))
	assert.Equal(t, "java", kb.Normalize("java语言"))
	assert.Equal(t, "R语言", kb.Normalize("r"))
	assert.Equal(t, "R语言", kb.Normalize("R语言"))
	assert.Equal(t, "mysql", kb.Normalize("mysql"))
}

func TestLoadFileExtendsSeedData(t *testing.T) {
	content := `
skills: ["Golang", "gin"]
titles:
  - key: "软件工程师"
    skills: ["设计模式"]
  - key: "SRE工程师"
    skills: ["可观测性", "容量规划"]
companies:
  - key: "蚂蚁集团"
    skills: ["java", "sofastack"]
aliases:
  golang: go
`
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	kb, err := LoadFile(path)
	require.NoError(t, err, "加载扩展文件不应失败")

	assert.True(t, kb.HasSkill("golang"))
	assert.True(t, kb.HasSkill("python"), "内置数据应保留")
	assert.Contains(t, kb.SkillsForTitle("软件工程师"), "设计模式", "已有key应合并技能")
	assert.Equal(t, []string{"可观测性", "容量规划"}, kb.SkillsForTitle("资深sre工程师"), "新key应小写化")
	assert.Equal(t, []string{"java", "sofastack"}, kb.SkillsForOrganization("蚂蚁集团"))
	assert.Equal(t, "go", kb.Normalize("Golang"))

	assert.False(t, Default().HasSkill("gin"), "扩展不应修改内置单例")
}

func TestLoadFileErrors(t *testing.T) {
	kb, err := LoadFile("")
	require.NoError(t, err)
	assert.Same(t, Default(), kb)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
