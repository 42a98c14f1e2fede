// Package tokenizer 提供中文分词能力，供技能词典匹配使用
package tokenizer

import (
	"strings"
	"sync"

	"github.com/go-ego/gse"
	"github.com/rs/zerolog"
)

// Tokenizer 分词器接口：输入文本，输出有序词序列
type Tokenizer interface {
	Cut(text string) []string
}

// Func 函数适配器
type Func func(text string) []string

// Cut 实现 Tokenizer
func (f Func) Cut(text string) []string {
	return f(text)
}

// GseTokenizer 基于 gse 的分词器，词典在首次使用时加载
type GseTokenizer struct {
	dictFiles []string
	hmm       bool
	logger    zerolog.Logger

	once    sync.Once
	seg     gse.Segmenter
	loadErr error
}

// Option 配置选项
type Option func(*GseTokenizer)

// WithDictFiles 使用自定义词典文件（逗号分隔或多次传入）
func WithDictFiles(files ...string) Option {
	return func(t *GseTokenizer) {
		t.dictFiles = append(t.dictFiles, files...)
	}
}

// WithHMM 是否启用HMM新词发现
func WithHMM(enabled bool) Option {
	return func(t *GseTokenizer) {
		t.hmm = enabled
	}
}

// WithLogger 设置日志
func WithLogger(logger zerolog.Logger) Option {
	return func(t *GseTokenizer) {
		t.logger = logger
	}
}

// NewGseTokenizer 创建分词器，不会立即加载词典
func NewGseTokenizer(opts ...Option) *GseTokenizer {
	t := &GseTokenizer{
		hmm:    true,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load 显式加载词典，可在进程启动时调用以避免首个请求的延迟
func (t *GseTokenizer) Load() error {
	t.once.Do(func() {
		// 加载日志统一走 zerolog，关闭 gse 自带的标准库日志
		t.seg.SkipLog = true
		var err error
		if len(t.dictFiles) > 0 {
			err = t.seg.LoadDict(strings.Join(t.dictFiles, ","))
		} else {
			err = t.seg.LoadDict()
		}
		if err != nil {
			t.loadErr = err
			t.logger.Error().Err(err).Msg("加载分词词典失败")
			return
		}
		t.logger.Info().Int("dict_files", len(t.dictFiles)).Msg("分词词典加载完成")
	})
	return t.loadErr
}

// Cut 分词；词典加载失败时退化为按空白切分，保证调用方不报错
func (t *GseTokenizer) Cut(text string) []string {
	if text == "" {
		return nil
	}
	if err := t.Load(); err != nil {
		return strings.Fields(text)
	}
	return t.seg.Cut(text, t.hmm)
}

var _ Tokenizer = (*GseTokenizer)(nil)
