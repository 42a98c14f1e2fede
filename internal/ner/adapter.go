package ner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fordcg/ai-interview-system/internal/constants"
	"github.com/fordcg/ai-interview-system/internal/segmenter"
	"github.com/fordcg/ai-interview-system/internal/tracing"
	"github.com/fordcg/ai-interview-system/internal/types"
)

var nerTracer = otel.Tracer("ai-interview-system/ner")

// SegmentFunc 分段函数，默认 segmenter.Segment
type SegmentFunc func(text string, maxLength int) []string

// Adapter 在模型之上处理超长文本：分段识别后把各段实体偏移修正到全文坐标。
//
// 各段以单个空格拼接（segmenter.Separator），第 i 段处理完后 offset 增加 len(segment)+1。
// 跨段边界的实体不做合并，可能被截断或漏识别。
type Adapter struct {
	model     Model
	maxLength int
	segment   SegmentFunc
	logger    zerolog.Logger
}

// AdapterOption 配置选项
type AdapterOption func(*Adapter)

// WithMaxLength 模型单次输入上限（字符数）
func WithMaxLength(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxLength = n
		}
	}
}

// WithLogger 设置日志
func WithLogger(logger zerolog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithSegmenter 替换分段函数
func WithSegmenter(fn SegmentFunc) AdapterOption {
	return func(a *Adapter) {
		if fn != nil {
			a.segment = fn
		}
	}
}

// NewAdapter 创建识别适配器
func NewAdapter(model Model, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		model:     model,
		maxLength: constants.DefaultMaxInputLength,
		segment:   segmenter.Segment,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxLength 返回单次输入上限
func (a *Adapter) MaxLength() int {
	return a.maxLength
}

// Recognize 识别全文实体，返回的偏移基于全文。
// 未超长文本作为单段直接调用模型，超长文本先分段。
// 任一段失败只记录日志并跳过该段，ErrModelUnavailable 和 context 取消除外
func (a *Adapter) Recognize(ctx context.Context, text string) ([]types.Entity, error) {
	entities, _, err := a.RecognizeSegments(ctx, text)
	return entities, err
}

// RecognizeSegments 同 Recognize，另外返回被跳过的失败段数
func (a *Adapter) RecognizeSegments(ctx context.Context, text string) ([]types.Entity, int, error) {
	ctx, span := nerTracer.Start(ctx, "ner.Recognize")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return []types.Entity{}, 0, nil
	}

	n := utf8.RuneCountInString(text)
	span.SetAttributes(
		attribute.Int("ner.text_length", n),
		attribute.Int("ner.max_length", a.maxLength),
	)

	segments := []string{text}
	if n > a.maxLength {
		segments = a.segment(text, a.maxLength)
		a.logger.Debug().Int("text_length", n).Int("segments", len(segments)).Msg("文本超长，分段识别")
	}
	span.SetAttributes(attribute.Int("ner.segments", len(segments)))

	entities := make([]types.Entity, 0)
	offset, failed := 0, 0
	for i, seg := range segments {
		segLen := utf8.RuneCountInString(seg)
		raw, err := a.model.Recognize(ctx, seg)
		if err != nil {
			if errors.Is(err, ErrModelUnavailable) {
				tracing.RecordError(span, err, tracing.ErrorTypeModel)
				return nil, 0, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				tracing.RecordError(span, ctxErr, tracing.ErrorTypeTimeout)
				return nil, 0, fmt.Errorf("%w: %w", ErrRecognitionFailed, ctxErr)
			}
			segErr := &SegmentError{Index: i + 1, Length: segLen, Err: err}
			a.logger.Error().
				Err(err).
				Int("segment_index", i+1).
				Int("segment_length", segLen).
				Msgf("处理第%d段时出错", i+1)
			tracing.RecordSegmentFailure(span, i+1, segLen, segErr)
			failed++
		} else {
			entities = append(entities, a.convert(raw, offset, segLen, i+1)...)
		}
		// 失败的段同样推进偏移，后续段不受影响
		offset += segLen + len(segmenter.Separator)
	}

	span.SetAttributes(
		attribute.Int("ner.failed_segments", failed),
		attribute.Int("ner.entities", len(entities)),
	)
	if failed > 0 {
		a.logger.Warn().Int("failed", failed).Int("segments", len(segments)).Msg("部分分段识别失败，返回可恢复的结果")
	}
	return entities, failed, nil
}

// OffsetText 返回 Recognize 结果偏移所对应的文本：
// 未超长时即原文，超长时为各段以 segmenter.Separator 拼接后的文本
func (a *Adapter) OffsetText(text string) string {
	if strings.TrimSpace(text) == "" || utf8.RuneCountInString(text) <= a.maxLength {
		return text
	}
	return strings.Join(a.segment(text, a.maxLength), segmenter.Separator)
}

// convert 校验段内偏移并加上全局偏移，越界或空区间的实体丢弃
func (a *Adapter) convert(raw []RawEntity, offset, segLen, index int) []types.Entity {
	out := make([]types.Entity, 0, len(raw))
	for _, r := range raw {
		if r.Start < 0 || r.End > segLen || r.Start >= r.End {
			a.logger.Warn().
				Str("type", r.Type).
				Int("start", r.Start).
				Int("end", r.End).
				Int("segment_index", index).
				Int("segment_length", segLen).
				Msg("实体偏移越界，已丢弃")
			continue
		}
		out = append(out, types.Entity{
			Type:    types.ParseEntityType(r.Type),
			RawType: r.Type,
			Text:    r.Span,
			Start:   r.Start + offset,
			End:     r.End + offset,
		})
	}
	return out
}
