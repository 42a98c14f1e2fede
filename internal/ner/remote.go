package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fordcg/ai-interview-system/internal/tracing"
	"github.com/fordcg/ai-interview-system/pkg/ratelimit"
)

const (
	recognizePath = "/v1/ner"
	loadPath      = "/v1/models/load"

	// 错误响应体最多保留的字节数
	maxErrorBody = 512
)

type recognizeRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type recognizeResponse struct {
	Output []RawEntity `json:"output"`
}

type loadRequest struct {
	Model string `json:"model"`
}

// RemoteModel 通过HTTP调用推理服务的实体识别模型
type RemoteModel struct {
	endpoint string
	model    string
	apiKey   string
	source   ModelSource

	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	limiter  *ratelimit.TokenBucket
	breaker  *gobreaker.CircuitBreaker[[]RawEntity]
	settings *BreakerSettings
	client   *http.Client
	logger   zerolog.Logger
}

// RemoteOption 配置选项
type RemoteOption func(*RemoteModel)

// WithAPIKey 设置 Bearer 鉴权
func WithAPIKey(key string) RemoteOption {
	return func(m *RemoteModel) {
		m.apiKey = key
	}
}

// WithTimeout 单次HTTP请求超时
func WithTimeout(d time.Duration) RemoteOption {
	return func(m *RemoteModel) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithRetry 设置重试次数和退避区间
func WithRetry(maxRetries int, waitMin, waitMax time.Duration) RemoteOption {
	return func(m *RemoteModel) {
		m.maxRetries = max(maxRetries, 0)
		if waitMin > 0 {
			m.retryWaitMin = waitMin
		}
		if waitMax > 0 {
			m.retryWaitMax = waitMax
		}
	}
}

// WithQPM 每分钟请求数限制，0表示不限
func WithQPM(qpm int) RemoteOption {
	return func(m *RemoteModel) {
		if qpm > 0 {
			m.limiter = ratelimit.NewTokenBucket(qpm, 0)
		}
	}
}

// WithBreaker 启用熔断
func WithBreaker(s BreakerSettings) RemoteOption {
	return func(m *RemoteModel) {
		m.settings = &s
	}
}

// WithSource 标记模型来源
func WithSource(src ModelSource) RemoteOption {
	return func(m *RemoteModel) {
		m.source = src
	}
}

// WithRemoteLogger 设置日志
func WithRemoteLogger(logger zerolog.Logger) RemoteOption {
	return func(m *RemoteModel) {
		m.logger = logger
	}
}

// NewRemoteModel 创建远程模型客户端，model 为推理服务侧的模型标识（本地路径或仓库ID）
func NewRemoteModel(endpoint, model string, opts ...RemoteOption) *RemoteModel {
	m := &RemoteModel{
		endpoint:     strings.TrimRight(endpoint, "/"),
		model:        model,
		source:       SourceRemote,
		timeout:      30 * time.Second,
		maxRetries:   2,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.settings != nil {
		if m.settings.Name == "" {
			m.settings.Name = "ner-" + string(m.source)
		}
		m.breaker = newBreaker(*m.settings, m.logger)
	}
	m.client = m.newHTTPClient()
	return m
}

// newHTTPClient 重试客户端外层再包一层 otelhttp，每次调用对应一个客户端span
func (m *RemoteModel) newHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = m.maxRetries
	rc.RetryWaitMin = m.retryWaitMin
	rc.RetryWaitMax = m.retryWaitMax
	rc.HTTPClient.Timeout = m.timeout
	rc.Logger = leveledLogger{m.logger}
	rc.Backoff = retryablehttp.DefaultBackoff
	rc.CheckRetry = retryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &http.Client{
		Transport: otelhttp.NewTransport(rc.StandardClient().Transport),
	}
}

// retryPolicy context 结束后不再重试；4xx（429除外）是请求本身的问题，不重试
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}

// Source 实现 Sourced
func (m *RemoteModel) Source() ModelSource {
	return m.source
}

// Name 推理服务侧的模型标识
func (m *RemoteModel) Name() string {
	return m.model
}

// Recognize 实现 Model
func (m *RemoteModel) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("等待限流令牌失败: %w", err)
		}
	}
	if m.breaker == nil {
		return m.recognize(ctx, text)
	}
	out, err := m.breaker.Execute(func() ([]RawEntity, error) {
		return m.recognize(ctx, text)
	})
	return out, breakerError(err)
}

func (m *RemoteModel) recognize(ctx context.Context, text string) ([]RawEntity, error) {
	var resp recognizeResponse
	if err := m.post(ctx, recognizePath, recognizeRequest{Model: m.model, Text: text}, &resp); err != nil {
		return nil, err
	}
	if resp.Output == nil {
		return []RawEntity{}, nil
	}
	return resp.Output, nil
}

// Probe 让推理服务加载模型，用于加载链判断该步是否可用
func (m *RemoteModel) Probe(ctx context.Context) error {
	if err := m.post(ctx, loadPath, loadRequest{Model: m.model}, nil); err != nil {
		return fmt.Errorf("加载模型 %s 失败: %w", m.model, err)
	}
	return nil
}

func (m *RemoteModel) post(ctx context.Context, path string, payload any, out any) error {
	ctx, span := nerTracer.Start(ctx, "ner.RemoteModel.post")
	defer span.End()
	span.SetAttributes(
		attribute.String("ner.model", m.model),
		attribute.String("http.route", path),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		return fmt.Errorf("请求推理服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		tracing.RecordHTTPError(span, statusErr, resp.StatusCode)
		return statusErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		return fmt.Errorf("解析推理服务响应失败: %w", err)
	}
	return nil
}

// leveledLogger 将 retryablehttp 的日志转到 zerolog
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
