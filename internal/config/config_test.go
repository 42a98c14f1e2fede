package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fordcg/ai-interview-system/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644), "无法写入临时配置文件")
	return configPath
}

// TestLoadConfigWithNestedSections 验证嵌套配置段能被正确加载，未出现的字段保留默认值
func TestLoadConfigWithNestedSections(t *testing.T) {
	configPath := writeConfig(t, `
ner:
  endpoint: "http://ner.internal:9000"
  qpm: 120
  circuit_breaker:
    enabled: true
    min_requests: 3
    failure_threshold: 0.5
segmenter:
  clean_text: true
server:
  api_keys:
    - "k1"
    - "k2"
`)
	t.Setenv("RESUME_NER_ENDPOINT", "")

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载配置不应返回错误")
	require.NotNil(t, config)

	assert.Equal(t, "http://ner.internal:9000", config.NER.Endpoint)
	assert.Equal(t, 120, config.NER.QPM)
	assert.Equal(t, uint32(3), config.NER.CircuitBreaker.MinRequests)
	assert.Equal(t, 0.5, config.NER.CircuitBreaker.FailureThreshold)
	assert.True(t, config.Segmenter.CleanText)
	assert.Equal(t, []string{"k1", "k2"}, config.Server.APIKeys)

	// 未出现在文件中的字段取默认值
	assert.Equal(t, constants.DefaultModelID, config.NER.ModelID)
	assert.Equal(t, 450, config.NER.MaxInputLength)
	assert.Equal(t, 450, config.Segmenter.MaxLength, "分段长度默认跟随模型输入上限")
	assert.Equal(t, 50, config.Skills.ContextWindow)
	assert.Equal(t, ":8080", config.Server.Address)
}

// TestLoadConfigWithIncorrectIndent 验证缩进错误时列表字段为空而不是报错
func TestLoadConfigWithIncorrectIndent(t *testing.T) {
	configPath := writeConfig(t, `
server:
  address: ":9090"
  api_keys:
skills:
  context_window: 30
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载缩进错误的配置也不应立即报错")
	assert.Empty(t, config.Server.APIKeys, "api_keys 应为空")
	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 30, config.Skills.ContextWindow)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
ner:
  enabled: true
  endpoint: "http://from-file"
redis:
  address: "file:6379"
`)
	t.Setenv("RESUME_NER_ENABLED", "false")
	t.Setenv("RESUME_NER_ENDPOINT", "http://from-env")
	t.Setenv("RESUME_NER_MODEL_PATH", "/models/raner")
	t.Setenv("REDIS_ADDRESS", "env:6379")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.False(t, config.NER.Enabled)
	assert.Equal(t, "http://from-env", config.NER.Endpoint)
	assert.Equal(t, "/models/raner", config.NER.ModelPath)
	assert.Equal(t, "env:6379", config.Redis.Address)

	fileOnly, err := LoadConfigFromFileOnly(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file", fileOnly.NER.Endpoint, "FromFileOnly 不应读取环境变量")
	assert.Equal(t, "file:6379", fileOnly.Redis.Address)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "ner: [unclosed")
	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileInTest(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "测试环境下缺少配置文件时应返回默认配置")
	assert.True(t, config.NER.Enabled)

	_, err = LoadConfigFromFileOnly(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = LoadConfigFromFileOnly("")
	assert.Error(t, err)
}

func TestCreateSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, CreateSampleConfig(path))

	config, err := LoadConfigFromFileOnly(path)
	require.NoError(t, err)
	assert.Equal(t, createDefaultConfig(), config, "示例配置应能原样加载回来")

	assert.Error(t, CreateSampleConfig(path), "已存在的文件不应被覆盖")
}

func TestCacheTTLAndDuration(t *testing.T) {
	c := createDefaultConfig()
	assert.Equal(t, 24*time.Hour, c.CacheTTL())
	c.Cache.TTLMinutes = 5
	assert.Equal(t, 5*time.Minute, c.CacheTTL())

	assert.Equal(t, 3*time.Second, GetDuration("3s", time.Second))
	assert.Equal(t, time.Second, GetDuration("bad", time.Second))
	assert.Equal(t, time.Second, GetDuration("", time.Second))
}
