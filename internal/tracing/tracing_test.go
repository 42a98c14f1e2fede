package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestRecordError(t *testing.T) {
	rec, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, errors.New("连接失败"), ErrorTypeNER)
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "ner", attrs["error.type"])
	assert.Equal(t, "连接失败", attrs["error.message"])
}

func TestRecordSegmentFailureKeepsStatus(t *testing.T) {
	rec, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordSegmentFailure(span, 2, 450, errors.New("超时"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code, "分段失败不应标记整个span失败")
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "ner.segment_failed", spans[0].Events()[0].Name)
}

func TestRecordErrorNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("x"), ErrorTypeExternal)
		RecordHTTPError(nil, nil, 500)
	})
}

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("张"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "13*******78", MaskPII("13812345678"))
}

func TestSafeAttributeValue(t *testing.T) {
	assert.Equal(t, "张*", SafeAttributeValue("entity.name", "张三", 10))
	assert.Equal(t, "abc", SafeAttributeValue("model", "abc", 10))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "短文本", TruncateString("短文本", 10))
	got := TruncateString(strings.Repeat("a", 20)+strings.Repeat("b", 20), 11)
	assert.Equal(t, "aaaa...bbbb", got)
}

func TestSafeResumeContentMasksPhone(t *testing.T) {
	got := SafeResumeContent("电话13812345678，邮箱无")
	assert.Equal(t, "电话13*******78，邮箱无", got)
}

func TestInitProviderDisabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{Enabled: false}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
