package extractor

import (
	"errors"
	"fmt"
)

// 基础错误类型
var (
	ErrModelInitFailed = errors.New("NER模型初始化失败")
	ErrExtractFailed   = errors.New("简历实体抽取失败")
	ErrCacheFailed     = errors.New("结果缓存读写失败")
)

// ExtractionError 包含请求信息的抽取错误。
// errors.Is 同时匹配基础错误和底层原因
type ExtractionError struct {
	RequestID string
	Op        string
	BaseErr   error
	Cause     error
	Detail    string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 请求:%s): %s", e.BaseErr, e.Op, e.RequestID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 请求:%s)", e.BaseErr, e.Op, e.RequestID)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.BaseErr}
	}
	return []error{e.BaseErr, e.Cause}
}

func newError(requestID, op string, base, cause error) error {
	e := &ExtractionError{
		RequestID: requestID,
		Op:        op,
		BaseErr:   base,
		Cause:     cause,
	}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// NewModelError 模型加载失败
func NewModelError(requestID string, cause error) error {
	return newError(requestID, "model", ErrModelInitFailed, cause)
}

// NewRecognizeError 实体识别失败
func NewRecognizeError(requestID string, cause error) error {
	return newError(requestID, "recognize", ErrExtractFailed, cause)
}

// NewCacheError 缓存读写失败
func NewCacheError(requestID string, cause error) error {
	return newError(requestID, "cache", ErrCacheFailed, cause)
}
