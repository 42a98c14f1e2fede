package extractor

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/ner"
)

func baselineConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.NER.ModelPath = ""
	cfg.NER.ModelID = ""
	cfg.NER.BaselineEnabled = true
	return cfg
}

func TestNewFromConfigBaseline(t *testing.T) {
	cfg := baselineConfig(t)

	engine, closer, err := NewFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closer()

	require.NoError(t, engine.Warmup(context.Background()))
	assert.Equal(t, ner.SourceBaseline, engine.ModelSource())
}

func TestNewFromConfigWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baselineConfig(t)
	cfg.Cache.Enabled = true
	cfg.Redis.Address = mr.Addr()

	engine, closer, err := NewFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closer()

	_, err = engine.ExtractStructuredInfo(context.Background(), "张三，男，本科")
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1, "结果应写入缓存")
}

func TestNewFromConfigDisabledModel(t *testing.T) {
	cfg := baselineConfig(t)
	cfg.NER.Enabled = false

	engine, closer, err := NewFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err, "模型在首次使用时才加载")
	defer closer()

	err = engine.Warmup(context.Background())
	assert.ErrorIs(t, err, ner.ErrModelUnavailable)
}

func TestNewFromConfigMissingKnowledgeFile(t *testing.T) {
	cfg := baselineConfig(t)
	cfg.Skills.KnowledgeBaseFile = "/path/does/not/exist.yaml"

	_, _, err := NewFromConfig(cfg, zerolog.Nop())
	assert.Error(t, err)
}
