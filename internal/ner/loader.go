package ner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/knowledge"
)

// Candidate 加载链中的一步
type Candidate struct {
	Name string
	Open func(ctx context.Context) (Model, error)
}

// Loader 按顺序尝试候选模型，第一个成功的生效
type Loader struct {
	candidates []Candidate
	logger     zerolog.Logger
}

// NewLoader 创建加载链
func NewLoader(logger zerolog.Logger, candidates ...Candidate) *Loader {
	return &Loader{candidates: candidates, logger: logger}
}

// Load 逐步尝试，全部失败时返回 ErrModelUnavailable 与每一步的错误
func (l *Loader) Load(ctx context.Context) (Model, error) {
	if len(l.candidates) == 0 {
		return nil, fmt.Errorf("%w: 没有可用的模型配置", ErrModelUnavailable)
	}

	errs := []error{ErrModelUnavailable}
	for i, c := range l.candidates {
		start := time.Now()
		model, err := c.Open(ctx)
		if err == nil && model == nil {
			err = errors.New("返回了空模型")
		}
		if err != nil {
			l.logger.Warn().
				Err(err).
				Str("candidate", c.Name).
				Int("step", i+1).
				Msg("NER模型加载失败，尝试下一个")
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		l.logger.Info().
			Str("candidate", c.Name).
			Str("source", string(SourceOf(model))).
			Dur("elapsed", time.Since(start)).
			Msg("NER模型加载成功")
		return model, nil
	}

	err := errors.Join(errs...)
	l.logger.Error().Err(err).Msg("所有NER模型加载失败")
	return nil, err
}

// DefaultCandidates 根据配置构建加载链：本地模型目录 -> 模型仓库ID -> 基线识别器。
// 前两步都通过推理服务加载，区别在于交给服务的模型标识
func DefaultCandidates(cfg config.NERConfig, kb *knowledge.Base, logger zerolog.Logger) []Candidate {
	if !cfg.Enabled {
		return []Candidate{{
			Name: "disabled",
			Open: func(context.Context) (Model, error) {
				return nil, errors.New("NER功能已关闭")
			},
		}}
	}

	var candidates []Candidate
	if cfg.ModelPath != "" {
		candidates = append(candidates, Candidate{
			Name: "local:" + cfg.ModelPath,
			Open: func(ctx context.Context) (Model, error) {
				info, err := os.Stat(cfg.ModelPath)
				if err != nil {
					return nil, fmt.Errorf("本地模型目录不可用: %w", err)
				}
				if !info.IsDir() {
					return nil, fmt.Errorf("本地模型路径不是目录: %s", cfg.ModelPath)
				}
				return openRemote(ctx, cfg, cfg.ModelPath, SourceLocal, logger)
			},
		})
	}
	if cfg.ModelID != "" {
		candidates = append(candidates, Candidate{
			Name: "remote:" + cfg.ModelID,
			Open: func(ctx context.Context) (Model, error) {
				return openRemote(ctx, cfg, cfg.ModelID, SourceRemote, logger)
			},
		})
	}
	if cfg.BaselineEnabled {
		candidates = append(candidates, Candidate{
			Name: "baseline",
			Open: func(context.Context) (Model, error) {
				return NewLexiconModel(kb), nil
			},
		})
	}
	return candidates
}

func openRemote(ctx context.Context, cfg config.NERConfig, model string, src ModelSource, logger zerolog.Logger) (Model, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("未配置推理服务地址")
	}
	remote := NewRemoteModel(cfg.Endpoint, model, RemoteOptions(cfg, src, logger)...)
	if err := remote.Probe(ctx); err != nil {
		return nil, err
	}
	return NewSerializedModel(remote, cfg.MaxConcurrency), nil
}

// RemoteOptions 将配置转换为 RemoteModel 选项
func RemoteOptions(cfg config.NERConfig, src ModelSource, logger zerolog.Logger) []RemoteOption {
	opts := []RemoteOption{
		WithSource(src),
		WithAPIKey(cfg.APIKey),
		WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		WithRetry(cfg.MaxRetries,
			time.Duration(cfg.RetryWaitMinMS)*time.Millisecond,
			time.Duration(cfg.RetryWaitMaxMS)*time.Millisecond),
		WithQPM(cfg.QPM),
		WithRemoteLogger(logger),
	}
	if cb := cfg.CircuitBreaker; cb.Enabled {
		opts = append(opts, WithBreaker(BreakerSettings{
			MaxRequests:      cb.MaxRequests,
			Interval:         time.Duration(cb.IntervalSeconds) * time.Second,
			Timeout:          time.Duration(cb.TimeoutSeconds) * time.Second,
			MinRequests:      cb.MinRequests,
			FailureThreshold: cb.FailureThreshold,
		}))
	}
	return opts
}
