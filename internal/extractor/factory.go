package extractor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/knowledge"
	"github.com/fordcg/ai-interview-system/internal/ner"
	"github.com/fordcg/ai-interview-system/internal/storage"
	"github.com/fordcg/ai-interview-system/internal/tokenizer"
)

// CloseFunc 释放引擎持有的外部资源
type CloseFunc func() error

// NewFromConfig 按配置组装引擎：知识库、gse 分词器、延迟加载的模型链，以及可选的 Redis 结果缓存。
// 模型在首次使用或调用 Engine.Init 时加载
func NewFromConfig(cfg *config.Config, logger zerolog.Logger) (*Engine, CloseFunc, error) {
	kb, err := knowledge.LoadFile(cfg.Skills.KnowledgeBaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("加载技能知识库失败: %w", err)
	}

	loader := ner.NewLoader(logger, ner.DefaultCandidates(cfg.NER, kb, logger)...)
	comp := []ComponentOpt{
		WithcompModel(ner.NewLazyModel(loader)),
		WithcompKnowledge(kb),
		WithcompTokenizer(tokenizer.NewGseTokenizer(tokenizer.WithLogger(logger))),
	}

	closer := func() error { return nil }
	if cfg.Cache.Enabled {
		cache, err := storage.NewRedisCache(&cfg.Redis, cfg.CacheTTL())
		if err != nil {
			// 缓存不可用不影响抽取
			logger.Warn().Err(err).Msg("结果缓存不可用，跳过缓存")
		} else {
			comp = append(comp, WithcompCache(cache))
			closer = cache.Close
		}
	}

	set := append(SettingsFromConfig(cfg), WithsetLogger(logger))
	engine, err := NewEngine(comp, set)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return engine, closer, nil
}

// Warmup 提前加载模型，失败时只返回错误，是否继续由调用方决定
func (e *Engine) Warmup(ctx context.Context) error {
	if err := e.Init(ctx); err != nil {
		return NewModelError("", err)
	}
	e.logger.Info().Str("source", string(e.ModelSource())).Msg("NER模型就绪")
	return nil
}
