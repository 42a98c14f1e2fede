package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fordcg/ai-interview-system/internal/constants"
	"github.com/fordcg/ai-interview-system/internal/tracing"
)

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`          // 最大重试次数
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"` // 最小重试间隔(毫秒)
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"` // 最大重试间隔(毫秒)
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`  // 连接最大生命周期(分钟)
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"` // 空闲连接最大生命周期(分钟)
}

// CircuitBreakerConfig 远程模型熔断配置
type CircuitBreakerConfig struct {
	Enabled          bool    `yaml:"enabled"`
	MaxRequests      uint32  `yaml:"max_requests"`     // 半开状态允许通过的请求数
	IntervalSeconds  int     `yaml:"interval_seconds"` // 闭合状态下计数清零周期
	TimeoutSeconds   int     `yaml:"timeout_seconds"`  // 打开状态持续时间
	MinRequests      uint32  `yaml:"min_requests"`
	FailureThreshold float64 `yaml:"failure_threshold"` // 失败率阈值(0-1)
}

// NERConfig 实体识别模型配置
type NERConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ModelPath       string `yaml:"model_path"` // 本地模型目录，推理服务从该路径加载
	ModelID         string `yaml:"model_id"`   // 模型仓库ID，本地模型不可用时使用
	BaselineEnabled bool   `yaml:"baseline_enabled"`
	Endpoint        string `yaml:"endpoint"` // 推理服务地址
	APIKey          string `yaml:"api_key,omitempty"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	MaxRetries      int    `yaml:"max_retries"`
	RetryWaitMinMS  int    `yaml:"retry_wait_min_ms"`
	RetryWaitMaxMS  int    `yaml:"retry_wait_max_ms"`
	QPM             int    `yaml:"qpm"`             // 每分钟请求数限制，0表示不限
	MaxConcurrency  int    `yaml:"max_concurrency"` // 同时进行的推理调用数，1为完全串行
	MaxInputLength  int    `yaml:"max_input_length"`

	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// SegmenterConfig 文本分段配置
type SegmenterConfig struct {
	MaxLength int  `yaml:"max_length"` // 为0时取 ner.max_input_length
	CleanText bool `yaml:"clean_text"`
}

// SkillsConfig 技能推断配置
type SkillsConfig struct {
	KnowledgeBaseFile    string `yaml:"knowledge_base_file"` // 可选，扩展内置知识库的YAML文件
	ContextWindow        int    `yaml:"context_window"`
	MaxSkillLength       int    `yaml:"max_skill_length"`
	FallbackOnNERFailure bool   `yaml:"fallback_on_ner_failure"`
}

// CacheConfig 结果缓存配置
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string   `yaml:"address"`            // 例如 ":8080" or "0.0.0.0:8080"
	APIKeys []string `yaml:"api_keys,omitempty"` // 非空时启用API Key鉴权
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// Config 应用程序配置
type Config struct {
	NER       NERConfig       `yaml:"ner"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Skills    SkillsConfig    `yaml:"skills"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Tracing   tracing.Config  `yaml:"tracing"`
}

// LoadConfig 从文件加载配置，并用环境变量覆盖。
// 未指定路径时在常见位置查找；在 go test 下找不到文件时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
		if configPath == "" {
			if inTestBinary() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestBinary() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	config, err := parseFile(configPath)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	applyDefaults(config)
	return config, nil
}

// LoadConfigFromFileOnly 从文件加载配置，不从环境变量覆盖
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	config, err := parseFile(configPath)
	if err != nil {
		return nil, err
	}
	applyDefaults(config)
	return config, nil
}

func parseFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return config, nil
}

func findConfigFile() string {
	searchPaths := []string{
		"config.yaml",
		"./config.yaml",
		"../config.yaml",
		"../../config.yaml",
		filepath.Join(os.Getenv("HOME"), ".resume-ner", "config.yaml"),
	}
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, "config.yaml"),
			filepath.Join(execDir, "..", "config.yaml"),
		)
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// inTestBinary 检测是否运行在 go test 中
func inTestBinary() bool {
	if strings.HasSuffix(os.Args[0], ".test") {
		return true
	}
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESUME_NER_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.NER.Enabled = enabled
		}
	}
	if v := os.Getenv("RESUME_NER_MODEL_PATH"); v != "" {
		config.NER.ModelPath = v
	}
	if v := os.Getenv("RESUME_NER_ENDPOINT"); v != "" {
		config.NER.Endpoint = v
	}
	if v := os.Getenv("RESUME_NER_API_KEY"); v != "" {
		config.NER.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		config.Redis.Address = v
	}
}

// applyDefaults 补齐文件中被显式置零的关键字段
func applyDefaults(config *Config) {
	if config.NER.ModelID == "" {
		config.NER.ModelID = constants.DefaultModelID
	}
	if config.NER.MaxInputLength <= 0 {
		config.NER.MaxInputLength = constants.DefaultMaxInputLength
	}
	if config.NER.MaxConcurrency <= 0 {
		config.NER.MaxConcurrency = 1
	}
	if config.Segmenter.MaxLength <= 0 {
		config.Segmenter.MaxLength = config.NER.MaxInputLength
	}
	if config.Skills.ContextWindow <= 0 {
		config.Skills.ContextWindow = constants.DefaultContextWindow
	}
	if config.Skills.MaxSkillLength <= 0 {
		config.Skills.MaxSkillLength = constants.DefaultMaxSkillLength
	}
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = constants.ServiceName
	}
}

// 创建一个默认配置，用于测试环境以及作为文件解析的基础
func createDefaultConfig() *Config {
	config := &Config{}

	// NER默认配置
	config.NER.Enabled = true
	config.NER.ModelID = constants.DefaultModelID
	config.NER.BaselineEnabled = true
	config.NER.Endpoint = "http://localhost:8501"
	config.NER.TimeoutSeconds = 30
	config.NER.MaxRetries = 2
	config.NER.RetryWaitMinMS = 200
	config.NER.RetryWaitMaxMS = 2000
	config.NER.QPM = 600
	config.NER.MaxConcurrency = 1
	config.NER.MaxInputLength = constants.DefaultMaxInputLength
	config.NER.CircuitBreaker = CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		IntervalSeconds:  60,
		TimeoutSeconds:   30,
		MinRequests:      5,
		FailureThreshold: 0.6,
	}

	config.Segmenter.MaxLength = constants.DefaultMaxInputLength
	config.Segmenter.CleanText = false

	config.Skills.ContextWindow = constants.DefaultContextWindow
	config.Skills.MaxSkillLength = constants.DefaultMaxSkillLength
	config.Skills.FallbackOnNERFailure = true

	// Redis默认配置
	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.MinRetryBackoffMS = 8
	config.Redis.MaxRetryBackoffMS = 512
	config.Redis.ConnMaxLifetimeMinutes = 60
	config.Redis.ConnMaxIdleTimeMinutes = 30

	config.Cache.Enabled = false
	config.Cache.TTLMinutes = int(constants.DefaultResultCacheTTL / time.Minute)

	config.Server.Address = ":8080"

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	config.Tracing.Enabled = false
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.ServiceName = constants.ServiceName
	config.Tracing.SampleRate = 1.0
	config.Tracing.Insecure = true

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(createDefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	fmt.Printf("示例配置文件已创建: %s\n", filePath)
	return nil
}

// CacheTTL 结果缓存有效期
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLMinutes <= 0 {
		return constants.DefaultResultCacheTTL
	}
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
