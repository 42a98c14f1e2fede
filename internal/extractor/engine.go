// Package extractor 简历实体与技能抽取引擎：
// 分段识别 -> 实体归类 -> 技能推断 -> 技能清洗
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fordcg/ai-interview-system/internal/constants"
	"github.com/fordcg/ai-interview-system/internal/knowledge"
	"github.com/fordcg/ai-interview-system/internal/ner"
	"github.com/fordcg/ai-interview-system/internal/segmenter"
	"github.com/fordcg/ai-interview-system/internal/skills"
	"github.com/fordcg/ai-interview-system/internal/storage"
	"github.com/fordcg/ai-interview-system/internal/tokenizer"
	"github.com/fordcg/ai-interview-system/internal/tracing"
	"github.com/fordcg/ai-interview-system/internal/types"
	"github.com/fordcg/ai-interview-system/pkg/utils"
)

var extractorTracer = otel.Tracer("ai-interview-system/extractor")

// ErrNoModel 未注入实体识别模型
var ErrNoModel = errors.New("未配置实体识别模型")

// Analysis 一次完整分析的结果
type Analysis struct {
	RequestID   string                      `json:"request_id"`
	Result      *types.StructuredResumeInfo `json:"result"`
	Display     *types.SkillDisplay         `json:"display"`
	Degraded    bool                        `json:"degraded"`
	ModelSource string                      `json:"model_source,omitempty"`
}

// Engine 抽取引擎。模型由外部注入并共享，引擎本身在调用间无可变状态
type Engine struct {
	model      ner.Model
	adapter    *ner.Adapter
	kb         *knowledge.Base
	inferrer   *skills.Inferrer
	sanitizer  *skills.Sanitizer
	classifier *skills.Classifier
	cache      ResultCache

	settings Settings
	logger   zerolog.Logger
}

// NewEngine 创建引擎，Model 为必填组件
func NewEngine(compOpts []ComponentOpt, setOpts []SettingOpt) (*Engine, error) {
	comp := &Components{}
	for _, opt := range compOpts {
		opt(comp)
	}
	set := defaultSettings()
	for _, opt := range setOpts {
		opt(set)
	}

	if comp.Model == nil {
		return nil, ErrNoModel
	}
	if comp.Knowledge == nil {
		comp.Knowledge = knowledge.Default()
	}
	if comp.Tokenizer == nil {
		comp.Tokenizer = tokenizer.NewGseTokenizer(tokenizer.WithLogger(set.Logger))
	}

	e := &Engine{
		model: comp.Model,
		adapter: ner.NewAdapter(comp.Model,
			ner.WithMaxLength(set.MaxLength),
			ner.WithLogger(set.Logger),
		),
		kb: comp.Knowledge,
		inferrer: skills.NewInferrer(comp.Knowledge, comp.Tokenizer,
			skills.WithContextWindow(set.ContextWindow),
			skills.WithInferrerLogger(set.Logger),
		),
		sanitizer:  skills.NewSanitizer(set.MaxSkillLength),
		classifier: skills.NewClassifier(),
		cache:      comp.Cache,
		settings:   *set,
		logger:     set.Logger,
	}
	return e, nil
}

// Init 初始化模型（若模型需要），可在启动时调用以提前加载
func (e *Engine) Init(ctx context.Context) error {
	if in, ok := e.model.(ner.Initializer); ok {
		return in.Init(ctx)
	}
	return nil
}

// ModelSource 当前生效的模型来源
func (e *Engine) ModelSource() ner.ModelSource {
	return ner.SourceOf(e.model)
}

// Classifier 技能分类器
func (e *Engine) Classifier() *skills.Classifier {
	return e.classifier
}

// Sanitizer 技能清洗器
func (e *Engine) Sanitizer() *skills.Sanitizer {
	return e.sanitizer
}

// Classify 将实体按类型归入结构化结果，未知类型只保留在 RawEntities 中
func (e *Engine) Classify(entities []types.Entity) *types.StructuredResumeInfo {
	info := types.NewStructuredResumeInfo()
	for _, ent := range entities {
		if field := info.Field(ent.Type); field != nil {
			*field = append(*field, ent.Text)
		}
	}
	if len(entities) > 0 {
		info.RawEntities = append(info.RawEntities, entities...)
	}
	return info
}

// ExtractEntities 只做实体识别
func (e *Engine) ExtractEntities(ctx context.Context, text string) ([]types.Entity, error) {
	text = e.prepare(text)
	if strings.TrimSpace(text) == "" {
		return []types.Entity{}, nil
	}
	if err := e.Init(ctx); err != nil {
		return nil, NewModelError("", err)
	}
	entities, err := e.adapter.Recognize(ctx, text)
	if err != nil {
		return nil, NewRecognizeError("", err)
	}
	return entities, nil
}

// ExtractStructuredInfo 完整流程：识别、归类、技能推断与清洗
func (e *Engine) ExtractStructuredInfo(ctx context.Context, text string) (*types.StructuredResumeInfo, error) {
	return e.extract(ctx, "", text)
}

func (e *Engine) prepare(text string) string {
	if e.settings.CleanText {
		return segmenter.CleanText(text)
	}
	return text
}

func (e *Engine) extract(ctx context.Context, requestID, text string) (*types.StructuredResumeInfo, error) {
	ctx, span := extractorTracer.Start(ctx, "extractor.Extract")
	defer span.End()

	text = e.prepare(text)
	span.SetAttributes(attribute.Int("resume.length", utf8.RuneCountInString(text)))
	if strings.TrimSpace(text) == "" {
		return types.NewStructuredResumeInfo(), nil
	}

	if err := e.Init(ctx); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeModel)
		return nil, NewModelError(requestID, err)
	}

	key := e.cacheKey(text)
	if info, ok := e.readCache(ctx, requestID, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return info, nil
	}

	start := time.Now()
	entities, failed, err := e.adapter.RecognizeSegments(ctx, text)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeNER)
		return nil, NewRecognizeError(requestID, err)
	}

	info := e.Classify(entities)
	info.Skills = e.sanitizer.Sanitize(e.inferrer.InferSegmented(ctx, text, e.adapter.OffsetText(text), info))

	span.SetAttributes(
		attribute.Int("resume.entities", len(info.RawEntities)),
		attribute.Int("resume.skills", len(info.Skills)),
	)
	e.logger.Info().
		Str("request_id", requestID).
		Int("entities", len(info.RawEntities)).
		Int("skills", len(info.Skills)).
		Int("failed_segments", failed).
		Dur("elapsed", time.Since(start)).
		Msg("简历抽取完成")

	// 有分段失败的结果不完整，不写缓存
	if failed == 0 {
		e.writeCache(ctx, requestID, key, info)
	}
	return info, nil
}

// Analyze 抽取并生成技能展示信息。模型不可用且开启降级时，
// 返回仅含关键词技能的降级结果
func (e *Engine) Analyze(ctx context.Context, requestID, text string) (*Analysis, error) {
	info, err := e.extract(ctx, requestID, text)
	degraded := false
	if err != nil {
		if !e.settings.FallbackOnNERFailure || !ner.IsModelError(err) {
			return nil, err
		}
		e.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Msg("实体识别不可用，降级为关键词提取")
		info = e.fallback(text)
		degraded = true
	}

	analysis := &Analysis{
		RequestID: requestID,
		Result:    info,
		Display:   e.classifier.Display(info.Skills),
		Degraded:  degraded,
	}
	if !degraded {
		analysis.ModelSource = string(e.ModelSource())
	}
	return analysis, nil
}

func (e *Engine) fallback(text string) *types.StructuredResumeInfo {
	info := types.NewStructuredResumeInfo()
	keywords := skills.FallbackExtract(e.kb, e.prepare(text))
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		normalized = append(normalized, e.kb.Normalize(k))
	}
	info.Skills = e.sanitizer.Sanitize(normalized)
	return info
}

func (e *Engine) cacheKey(text string) string {
	return fmt.Sprintf(constants.KeyNERResult, e.ModelSource(), utils.CalculateMD5([]byte(text)))
}

func (e *Engine) readCache(ctx context.Context, requestID, key string) (*types.StructuredResumeInfo, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn().Err(NewCacheError(requestID, err)).Str("key", tracing.SafeRedisKey(key)).Msg("读取结果缓存失败")
		}
		return nil, false
	}
	info := types.NewStructuredResumeInfo()
	if err := json.Unmarshal(data, info); err != nil {
		e.logger.Warn().Err(NewCacheError(requestID, err)).Msg("结果缓存内容无法解析，忽略")
		return nil, false
	}
	e.logger.Debug().Str("request_id", requestID).Msg("命中结果缓存")
	return info, true
}

func (e *Engine) writeCache(ctx context.Context, requestID, key string, info *types.StructuredResumeInfo) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		e.logger.Warn().Err(NewCacheError(requestID, err)).Msg("序列化结果失败")
		return
	}
	if err := e.cache.Set(ctx, key, data); err != nil {
		e.logger.Warn().Err(NewCacheError(requestID, err)).Str("key", tracing.SafeRedisKey(key)).Msg("写入结果缓存失败")
	}
}
