package ner

import (
	"context"
	"sync"
)

// LazyModel 首次使用时执行加载链，之后复用结果。
// 加载失败的错误同样被缓存，后续调用直接返回该错误
type LazyModel struct {
	loader *Loader

	once  sync.Once
	model Model
	err   error
}

// NewLazyModel 创建延迟加载的模型
func NewLazyModel(loader *Loader) *LazyModel {
	return &LazyModel{loader: loader}
}

// Init 触发加载。加载不随调用方 context 取消而中断，避免一次超时的请求让模型永久不可用
func (l *LazyModel) Init(ctx context.Context) error {
	l.once.Do(func() {
		l.model, l.err = l.loader.Load(context.WithoutCancel(ctx))
	})
	return l.err
}

// Recognize 实现 Model
func (l *LazyModel) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	if err := l.Init(ctx); err != nil {
		return nil, err
	}
	return l.model.Recognize(ctx, text)
}

// Source 已加载模型的来源（必要时触发加载），加载失败时为空
func (l *LazyModel) Source() ModelSource {
	if err := l.Init(context.Background()); err != nil {
		return ""
	}
	return SourceOf(l.model)
}

// Initializer 需要显式初始化的模型
type Initializer interface {
	Init(ctx context.Context) error
}
