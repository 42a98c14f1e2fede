package ner

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings 熔断参数
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32        // 半开状态允许通过的请求数
	Interval         time.Duration // 闭合状态下计数清零周期，0表示不清零
	Timeout          time.Duration // 打开状态持续时间
	MinRequests      uint32        // 达到该请求数后才按失败率判断
	FailureThreshold float64       // 失败率阈值(0-1)
}

// newBreaker 创建熔断器；4xx 属于请求本身的问题，不计入失败
func newBreaker(s BreakerSettings, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]RawEntity] {
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("熔断器状态变化")
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
					statusErr.StatusCode != http.StatusTooManyRequests
			}
			return false
		},
	}
	return gobreaker.NewCircuitBreaker[[]RawEntity](settings)
}

// breakerError 把熔断器拒绝转换为 ErrBreakerOpen
func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrBreakerOpen, err)
	}
	return err
}
