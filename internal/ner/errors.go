package ner

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable 加载链中的每一步都失败，调用方应直接返回
	ErrModelUnavailable = errors.New("NER模型不可用")
	// ErrRecognitionFailed 单次（未分段）识别调用失败
	ErrRecognitionFailed = errors.New("实体识别失败")
	// ErrSegmentRecognition 分段识别中某一段失败，Adapter 内部记录后跳过
	ErrSegmentRecognition = errors.New("分段实体识别失败")
	// ErrRemoteStatus 推理服务返回非2xx状态码
	ErrRemoteStatus = errors.New("推理服务返回错误状态")
	// ErrBreakerOpen 熔断器打开，请求被拒绝
	ErrBreakerOpen = errors.New("推理服务熔断中")
)

// SegmentError 描述某一段的识别失败，Index 从1开始
type SegmentError struct {
	Index  int
	Length int
	Err    error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s: 第%d段(长度%d): %v", ErrSegmentRecognition.Error(), e.Index, e.Length, e.Err)
}

// Unwrap 返回底层错误
func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrSegmentRecognition) 成立
func (e *SegmentError) Is(target error) bool {
	return target == ErrSegmentRecognition
}

// StatusError 推理服务的非2xx响应
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", ErrRemoteStatus.Error(), e.StatusCode, e.Body)
}

// Is 使 errors.Is(err, ErrRemoteStatus) 成立
func (e *StatusError) Is(target error) bool {
	return target == ErrRemoteStatus
}

// IsModelError 错误是否来自模型侧（不可用或识别失败），这类错误可以走关键词降级
func IsModelError(err error) bool {
	return errors.Is(err, ErrModelUnavailable) ||
		errors.Is(err, ErrRecognitionFailed) ||
		errors.Is(err, ErrBreakerOpen)
}
