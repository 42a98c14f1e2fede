package ner

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// SerializedModel 限制对底层模型的并发调用数，limit 为1时完全串行。
// 用于包装不能安全并发推理的模型
type SerializedModel struct {
	model Model
	sem   *semaphore.Weighted
	limit int
}

// NewSerializedModel 创建并发受限的模型，limit <= 0 时按1处理
func NewSerializedModel(model Model, limit int) *SerializedModel {
	if limit <= 0 {
		limit = 1
	}
	return &SerializedModel{
		model: model,
		sem:   semaphore.NewWeighted(int64(limit)),
		limit: limit,
	}
}

// Recognize 获取槽位后调用底层模型，等待期间 context 取消则返回错误
func (s *SerializedModel) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("等待模型调用槽位失败: %w", err)
	}
	defer s.sem.Release(1)
	return s.model.Recognize(ctx, text)
}

// Source 透传底层模型来源
func (s *SerializedModel) Source() ModelSource {
	return SourceOf(s.model)
}

// Limit 最大并发数
func (s *SerializedModel) Limit() int {
	return s.limit
}
