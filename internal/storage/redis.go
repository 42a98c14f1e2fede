// Package storage Redis 结果缓存
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/tracing"
)

// ErrNotFound 缓存中不存在该键
var ErrNotFound = errors.New("缓存不存在")

var redisTracer = otel.Tracer("ai-interview-system/storage/redis")

// RedisCache 基于 Redis 的键值缓存，值为不透明字节
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 创建客户端并检查连通性，ttl<=0 表示不过期
func NewRedisCache(cfg *config.RedisConfig, ttl time.Duration) (*RedisCache, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,

		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis接入OpenTelemetry失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis(%s)失败: %w", cfg.Address, err)
	}

	return &RedisCache{Client: client, ttl: ttl}, nil
}

// TTL 写入时使用的有效期
func (r *RedisCache) TTL() time.Duration {
	return r.ttl
}

func startSpan(ctx context.Context, op, key string) (context.Context, trace.Span) {
	ctx, span := redisTracer.Start(ctx, "Redis."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		semconv.DBSystemRedis,
		attribute.String("db.operation", op),
		attribute.String("db.redis.key", tracing.SafeRedisKey(key)),
	)
	return ctx, span
}

// Get 读取键值，不存在时返回 ErrNotFound
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}
	ctx, span := startSpan(ctx, "GET", key)
	defer span.End()

	val, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("db.redis.key_exists", false))
		return nil, ErrNotFound
	}
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("读取缓存失败: %w", err)
	}
	span.SetAttributes(
		attribute.Bool("db.redis.key_exists", true),
		attribute.Int("db.redis.value_length", len(val)),
	)
	span.SetStatus(codes.Ok, "")
	return val, nil
}

// Set 写入键值，使用创建时的 TTL
func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	ctx, span := startSpan(ctx, "SET", key)
	defer span.End()
	span.SetAttributes(attribute.Int("db.redis.value_length", len(value)))
	if r.ttl > 0 {
		span.SetAttributes(attribute.Int64("db.redis.expiration_ms", r.ttl.Milliseconds()))
	}

	if err := r.Client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete 删除键，键不存在不视为错误
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	ctx, span := startSpan(ctx, "DEL", key)
	defer span.End()

	if err := r.Client.Del(ctx, key).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// Ping 检查连接
func (r *RedisCache) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Ping(ctx).Err()
}

// Close 关闭连接
func (r *RedisCache) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
