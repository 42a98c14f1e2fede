// Package ner 封装实体识别模型：模型调用约定、长文本分段识别与偏移修正、
// 远程推理服务客户端、模型加载降级链以及并发访问控制
package ner

import (
	"context"
)

// RawEntity 模型输出的单个实体，Start/End 为输入文本中的字符(rune)偏移
type RawEntity struct {
	Type  string `json:"type"`
	Span  string `json:"span"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Model 实体识别模型。输入长度不应超过模型上限，超长文本由 Adapter 负责分段
type Model interface {
	Recognize(ctx context.Context, text string) ([]RawEntity, error)
}

// ModelFunc 函数适配器
type ModelFunc func(ctx context.Context, text string) ([]RawEntity, error)

// Recognize 实现 Model
func (f ModelFunc) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	return f(ctx, text)
}

// ModelSource 标识当前生效的是加载链中的哪一步
type ModelSource string

const (
	// SourceLocal 本地模型目录
	SourceLocal ModelSource = "local"
	// SourceRemote 模型仓库ID
	SourceRemote ModelSource = "remote"
	// SourceBaseline 词典+规则基线识别器
	SourceBaseline ModelSource = "baseline"
	// SourceCustom 调用方直接注入的模型
	SourceCustom ModelSource = "custom"
)

// Sourced 能报告自身来源的模型
type Sourced interface {
	Source() ModelSource
}

// SourceOf 返回模型来源，未实现 Sourced 时为 SourceCustom
func SourceOf(m Model) ModelSource {
	if s, ok := m.(Sourced); ok {
		if src := s.Source(); src != "" {
			return src
		}
	}
	return SourceCustom
}
