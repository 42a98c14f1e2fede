package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/ner"
	"github.com/fordcg/ai-interview-system/internal/skills"
	"github.com/fordcg/ai-interview-system/internal/storage"
	"github.com/fordcg/ai-interview-system/internal/tokenizer"
	"github.com/fordcg/ai-interview-system/internal/types"
)

const sampleResume = "张三，男，硕士学历，毕业于清华大学计算机科学专业，曾在阿里巴巴担任高级软件工程师，熟练掌握Java和MySQL，负责分布式系统开发。"

var fakeTokenRe = regexp.MustCompile(`[A-Za-z0-9+#]+(?:\.[A-Za-z0-9]+)?|机器学习|团队协作|分布式系统|(?s).`)

func fakeTokenizer() tokenizer.Tokenizer {
	return tokenizer.Func(func(text string) []string {
		return fakeTokenRe.FindAllString(text, -1)
	})
}

// countingModel 记录调用次数的基线模型
type countingModel struct {
	calls atomic.Int32
	inner ner.Model
}

func (m *countingModel) Recognize(ctx context.Context, text string) ([]ner.RawEntity, error) {
	m.calls.Add(1)
	return m.inner.Recognize(ctx, text)
}

func newCountingModel() *countingModel {
	return &countingModel{inner: ner.NewLexiconModel(nil)}
}

func newTestEngine(t *testing.T, model ner.Model, comp []ComponentOpt, set ...SettingOpt) *Engine {
	t.Helper()
	compOpts := append([]ComponentOpt{WithcompModel(model), WithcompTokenizer(fakeTokenizer())}, comp...)
	e, err := NewEngine(compOpts, set)
	require.NoError(t, err)
	return e
}

func assertSkillInvariants(t *testing.T, got []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, s := range got {
		assert.NotEmpty(t, s)
		assert.LessOrEqual(t, utf8.RuneCountInString(s), 20, "技能长度不超过20: %s", s)
		assert.False(t, regexp.MustCompile(`^\d+$`).MatchString(s), "技能不能是纯数字: %s", s)
		for _, v := range skills.VerbMarkers {
			assert.NotContains(t, s, v, "技能不应是动词短语: %s", s)
		}
		assert.False(t, seen[s], "技能不应重复: %s", s)
		seen[s] = true
	}
}

func TestExtractStructuredInfoEndToEnd(t *testing.T) {
	e := newTestEngine(t, ner.NewLexiconModel(nil), nil)

	info, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"张三"}, info.Name)
	assert.Equal(t, []string{"硕士"}, info.Education)
	assert.Equal(t, []string{"清华大学", "阿里巴巴"}, info.Organization)
	assert.Equal(t, []string{"高级软件工程师"}, info.Title)
	assert.Equal(t, []string{"计算机科学"}, info.Major)
	assert.Empty(t, info.Nationality)
	assert.Len(t, info.RawEntities, info.ClassifiedCount())

	for _, want := range []string{"java", "mysql", "分布式系统"} {
		assert.Contains(t, info.Skills, want)
	}
	assertSkillInvariants(t, info.Skills)

	runes := []rune(sampleResume)
	for _, ent := range info.RawEntities {
		assert.Equal(t, ent.Text, string(runes[ent.Start:ent.End]), "短文本偏移应直接对应原文")
	}
}

func TestExtractEndToEndWithGseTokenizer(t *testing.T) {
	if testing.Short() {
		t.Skip("在短模式下跳过词典加载")
	}
	tk := tokenizer.NewGseTokenizer()
	require.NoError(t, tk.Load())
	e, err := NewEngine([]ComponentOpt{
		WithcompModel(ner.NewLexiconModel(nil)),
		WithcompTokenizer(tk),
	}, nil)
	require.NoError(t, err)

	info, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, []string{"张三"}, info.Name)
	assert.Equal(t, []string{"清华大学", "阿里巴巴"}, info.Organization)
	for _, want := range []string{"java", "mysql", "分布式系统"} {
		assert.Contains(t, info.Skills, want, "真实分词下仍应得到 %s", want)
	}
	assertSkillInvariants(t, info.Skills)
}

func TestExtractLongResumeAcrossSegments(t *testing.T) {
	model := newCountingModel()
	e := newTestEngine(t, model, nil, WithsetMaxLength(80))

	text := strings.Repeat(sampleResume, 3)
	info, err := e.ExtractStructuredInfo(context.Background(), text)
	require.NoError(t, err)

	assert.Greater(t, model.calls.Load(), int32(1), "超长文本应分段调用模型")
	assert.Len(t, info.Name, 3)
	for i := 1; i < len(info.RawEntities); i++ {
		assert.LessOrEqual(t, info.RawEntities[i-1].End, info.RawEntities[i].Start)
	}
	assertSkillInvariants(t, info.Skills)
}

func TestExtractEmptyInput(t *testing.T) {
	model := newCountingModel()
	e := newTestEngine(t, model, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		info, err := e.ExtractStructuredInfo(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, 0, info.ClassifiedCount())
		assert.Empty(t, info.Skills)

		data, err := json.Marshal(info)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"skills":[]`, "空列表应序列化为[]")
	}
	assert.Equal(t, int32(0), model.calls.Load(), "空输入不应调用模型")

	entities, err := e.ExtractEntities(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestClassify(t *testing.T) {
	e := newTestEngine(t, ner.NewLexiconModel(nil), nil)
	entities := []types.Entity{
		{Type: types.EntityName, RawType: "NAME", Text: "张三", Start: 0, End: 2},
		{Type: types.EntityOrganization, RawType: "ORG", Text: "腾讯", Start: 3, End: 5},
		{Type: types.EntityUnknown, RawType: "PHONE", Text: "138", Start: 6, End: 9},
		{Type: types.EntityOrganization, RawType: "ORG", Text: "百度", Start: 10, End: 12},
		{Type: types.EntityName, RawType: "NAME", Text: "张三", Start: 13, End: 15},
	}

	info := e.Classify(entities)

	assert.Equal(t, []string{"张三", "张三"}, info.Name, "重复实体保留")
	assert.Equal(t, []string{"腾讯", "百度"}, info.Organization, "按文档顺序")
	assert.Equal(t, 4, info.ClassifiedCount(), "未知类型不进入任何分类")
	assert.Equal(t, entities, info.RawEntities)

	empty := e.Classify(nil)
	assert.NotNil(t, empty.RawEntities)
	assert.Equal(t, 0, empty.ClassifiedCount())
}

func TestAnalyzeDegradesWhenModelUnavailable(t *testing.T) {
	broken := ner.ModelFunc(func(context.Context, string) ([]ner.RawEntity, error) {
		return nil, ner.ErrModelUnavailable
	})
	text := "熟悉Python与Docker，具备团队协作能力"

	e := newTestEngine(t, broken, nil, WithsetFallback(true))
	analysis, err := e.Analyze(context.Background(), "req-1", text)
	require.NoError(t, err)
	assert.True(t, analysis.Degraded)
	assert.Equal(t, "req-1", analysis.RequestID)
	assert.Equal(t, []string{"python", "docker", "团队协作"}, analysis.Result.Skills)
	assert.Equal(t, analysis.Result.Skills, analysis.Display.AllSkills)
	assert.Empty(t, analysis.Result.RawEntities)
	assert.Empty(t, analysis.ModelSource)

	strict := newTestEngine(t, broken, nil, WithsetFallback(false))
	_, err = strict.Analyze(context.Background(), "req-2", text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractFailed)
	assert.ErrorIs(t, err, ner.ErrModelUnavailable)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "req-2", extractionErr.RequestID)
	assert.Equal(t, "recognize", extractionErr.Op)
}

func TestExtractShortTextTransientModelError(t *testing.T) {
	var calls atomic.Int32
	flaky := ner.ModelFunc(func(context.Context, string) ([]ner.RawEntity, error) {
		calls.Add(1)
		return nil, errors.New("transient")
	})
	cache := &mapCache{data: map[string][]byte{}}
	e := newTestEngine(t, flaky, []ComponentOpt{WithcompCache(cache)}, WithsetMaxLength(80))

	for _, text := range []string{sampleResume, strings.Repeat(sampleResume, 2)} {
		info, err := e.ExtractStructuredInfo(context.Background(), text)
		require.NoError(t, err, "模型单次失败不应让整体抽取失败，长度=%d", utf8.RuneCountInString(text))
		assert.Empty(t, info.RawEntities)
		assert.Contains(t, info.Skills, "java", "触发短语挖掘仍应执行")
		assert.Contains(t, info.Skills, "mysql")
		assertSkillInvariants(t, info.Skills)
	}
	assert.Empty(t, cache.data, "识别失败的不完整结果不应写入缓存")

	_, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load(), "未缓存时再次调用应重新识别")
}

func TestAnalyzeLoaderFailure(t *testing.T) {
	loader := ner.NewLoader(zerolog.Nop(), ner.Candidate{Name: "broken", Open: func(context.Context) (ner.Model, error) {
		return nil, errors.New("连接被拒绝")
	}})
	e := newTestEngine(t, ner.NewLazyModel(loader), nil)

	_, err := e.Analyze(context.Background(), "req-3", sampleResume)
	assert.ErrorIs(t, err, ErrModelInitFailed)
	assert.ErrorIs(t, err, ner.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "req-3")
}

func TestAnalyzeWithLazyBaseline(t *testing.T) {
	loader := ner.NewLoader(zerolog.Nop(), ner.DefaultCandidates(config.NERConfig{
		Enabled:         true,
		ModelPath:       "/path/does/not/exist",
		BaselineEnabled: true,
	}, nil, zerolog.Nop())...)
	e := newTestEngine(t, ner.NewLazyModel(loader), nil)
	require.NoError(t, e.Init(context.Background()))

	analysis, err := e.Analyze(context.Background(), "req-4", sampleResume)
	require.NoError(t, err)
	assert.False(t, analysis.Degraded)
	assert.Equal(t, string(ner.SourceBaseline), analysis.ModelSource)
	assert.Equal(t, []string{"张三"}, analysis.Result.Name)
	assert.NotEmpty(t, analysis.Display.SkillCategories)
}

// mapCache 内存缓存
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestExtractUsesCache(t *testing.T) {
	model := newCountingModel()
	cache := &mapCache{data: map[string][]byte{}}
	e := newTestEngine(t, model, []ComponentOpt{WithcompCache(cache)})

	first, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)
	second, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, int32(1), model.calls.Load(), "相同文本第二次应命中缓存")
	assert.Equal(t, first, second)
	require.Len(t, cache.data, 1)
	for key := range cache.data {
		assert.True(t, strings.HasPrefix(key, "app:resume:ner_result:custom:"), key)
	}
}

func TestExtractIgnoresCorruptCache(t *testing.T) {
	model := newCountingModel()
	cache := &mapCache{data: map[string][]byte{}}
	e := newTestEngine(t, model, []ComponentOpt{WithcompCache(cache)})
	cache.data[e.cacheKey(sampleResume)] = []byte("not json")

	info, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
	require.NoError(t, err)
	assert.Equal(t, []string{"张三"}, info.Name)
	assert.Equal(t, int32(1), model.calls.Load())
}

func TestExtractWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache, err := storage.NewRedisCache(&config.RedisConfig{Address: mr.Addr()}, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	model := newCountingModel()
	e := newTestEngine(t, model, []ComponentOpt{WithcompCache(cache)})

	for i := 0; i < 3; i++ {
		info, err := e.ExtractStructuredInfo(context.Background(), sampleResume)
		require.NoError(t, err)
		assert.Equal(t, []string{"清华大学", "阿里巴巴"}, info.Organization)
	}
	assert.Equal(t, int32(1), model.calls.Load())
	assert.Len(t, mr.Keys(), 1)

	// Redis 不可用时照常抽取
	mr.Close()
	_, err = e.ExtractStructuredInfo(context.Background(), sampleResume+"补充")
	assert.NoError(t, err)
}

func TestAnalyzeConcurrent(t *testing.T) {
	model := ner.NewSerializedModel(ner.NewLexiconModel(nil), 1)
	e := newTestEngine(t, model, nil, WithsetMaxLength(40))

	var wg sync.WaitGroup
	results := make([]*Analysis, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := e.Analyze(context.Background(), "req", sampleResume)
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	wg.Wait()

	for _, a := range results[1:] {
		assert.Equal(t, results[0].Result, a.Result, "并发调用结果应一致")
	}
}

func TestNewEngineRequiresModel(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Segmenter.MaxLength = 0
	cfg.NER.MaxInputLength = 300
	cfg.Skills.FallbackOnNERFailure = true

	set := defaultSettings()
	for _, opt := range SettingsFromConfig(cfg) {
		opt(set)
	}
	assert.Equal(t, 300, set.MaxLength, "未配置分段长度时使用模型上限")
	assert.True(t, set.FallbackOnNERFailure)
	assert.Equal(t, cfg.Skills.ContextWindow, set.ContextWindow)
}
