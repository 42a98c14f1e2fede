package extractor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/constants"
	"github.com/fordcg/ai-interview-system/internal/knowledge"
	"github.com/fordcg/ai-interview-system/internal/ner"
	"github.com/fordcg/ai-interview-system/internal/tokenizer"
)

// ResultCache 结构化结果缓存，未命中时 Get 返回 storage.ErrNotFound
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Components 引擎依赖的组件
type Components struct {
	Model     ner.Model           // 实体识别模型，必填
	Tokenizer tokenizer.Tokenizer // 分词器，默认 gse
	Knowledge *knowledge.Base     // 技能知识库，默认内置词表
	Cache     ResultCache         // 可选
}

// Settings 纯配置项
type Settings struct {
	MaxLength            int  // 模型单次输入上限
	CleanText            bool // 识别前清洗文本
	ContextWindow        int  // 实体上下文窗口
	MaxSkillLength       int  // 技能最大长度
	FallbackOnNERFailure bool // 模型不可用时降级为关键词提取
	Logger               zerolog.Logger
}

// ComponentOpt 组件选项
type ComponentOpt func(*Components)

// SettingOpt 设置选项
type SettingOpt func(*Settings)

// WithcompModel 设置实体识别模型
func WithcompModel(m ner.Model) ComponentOpt {
	return func(c *Components) {
		c.Model = m
	}
}

// WithcompTokenizer 设置分词器
func WithcompTokenizer(tk tokenizer.Tokenizer) ComponentOpt {
	return func(c *Components) {
		c.Tokenizer = tk
	}
}

// WithcompKnowledge 设置技能知识库
func WithcompKnowledge(kb *knowledge.Base) ComponentOpt {
	return func(c *Components) {
		c.Knowledge = kb
	}
}

// WithcompCache 设置结果缓存
func WithcompCache(cache ResultCache) ComponentOpt {
	return func(c *Components) {
		c.Cache = cache
	}
}

// WithsetMaxLength 设置模型单次输入上限
func WithsetMaxLength(n int) SettingOpt {
	return func(s *Settings) {
		if n > 0 {
			s.MaxLength = n
		}
	}
}

// WithsetCleanText 是否在识别前清洗文本
func WithsetCleanText(clean bool) SettingOpt {
	return func(s *Settings) {
		s.CleanText = clean
	}
}

// WithsetContextWindow 设置实体上下文窗口
func WithsetContextWindow(n int) SettingOpt {
	return func(s *Settings) {
		if n > 0 {
			s.ContextWindow = n
		}
	}
}

// WithsetMaxSkillLength 设置技能最大长度
func WithsetMaxSkillLength(n int) SettingOpt {
	return func(s *Settings) {
		if n > 0 {
			s.MaxSkillLength = n
		}
	}
}

// WithsetFallback 模型不可用时是否降级
func WithsetFallback(enabled bool) SettingOpt {
	return func(s *Settings) {
		s.FallbackOnNERFailure = enabled
	}
}

// WithsetLogger 设置日志
func WithsetLogger(logger zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// SettingsFromConfig 将配置文件转换为设置选项
func SettingsFromConfig(cfg *config.Config) []SettingOpt {
	maxLength := cfg.Segmenter.MaxLength
	if maxLength <= 0 {
		maxLength = cfg.NER.MaxInputLength
	}
	return []SettingOpt{
		WithsetMaxLength(maxLength),
		WithsetCleanText(cfg.Segmenter.CleanText),
		WithsetContextWindow(cfg.Skills.ContextWindow),
		WithsetMaxSkillLength(cfg.Skills.MaxSkillLength),
		WithsetFallback(cfg.Skills.FallbackOnNERFailure),
	}
}

func defaultSettings() *Settings {
	return &Settings{
		MaxLength:      constants.DefaultMaxInputLength,
		ContextWindow:  constants.DefaultContextWindow,
		MaxSkillLength: constants.DefaultMaxSkillLength,
		Logger:         zerolog.Nop(),
	}
}
