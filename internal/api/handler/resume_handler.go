package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fordcg/ai-interview-system/internal/extractor"
	"github.com/fordcg/ai-interview-system/internal/skills"
	"github.com/fordcg/ai-interview-system/internal/tracing"
)

// RequestIDHeader 调用方可通过该请求头传入请求ID
const RequestIDHeader = "X-Request-ID"

// Analyzer 简历分析能力
type Analyzer interface {
	Analyze(ctx context.Context, requestID, text string) (*extractor.Analysis, error)
}

// ResumeHandler 简历分析接口
type ResumeHandler struct {
	analyzer   Analyzer
	classifier *skills.Classifier
	logger     zerolog.Logger
}

// NewResumeHandler 创建处理器，classifier 为空时使用默认分类表
func NewResumeHandler(analyzer Analyzer, classifier *skills.Classifier, logger zerolog.Logger) *ResumeHandler {
	if classifier == nil {
		classifier = skills.NewClassifier()
	}
	return &ResumeHandler{
		analyzer:   analyzer,
		classifier: classifier,
		logger:     logger,
	}
}

// AnalyzeRequest 分析请求
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// ClassifyRequest 技能分类请求
type ClassifyRequest struct {
	Skills []string `json:"skills"`
}

// HandleAnalyze POST /resume/analyze
func (h *ResumeHandler) HandleAnalyze(c context.Context, ctx *app.RequestContext) {
	requestID := string(ctx.GetHeader(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Header(RequestIDHeader, requestID)

	var req AnalyzeRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求格式错误", "detail": err.Error()})
		return
	}

	start := time.Now()
	analysis, err := h.analyzer.Analyze(c, requestID, req.Text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Str("resume", tracing.SafeResumeContent(req.Text)).
			Msg("简历分析失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "简历分析失败", "detail": err.Error()})
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Bool("degraded", analysis.Degraded).
		Int("skills", len(analysis.Result.Skills)).
		Dur("elapsed", time.Since(start)).
		Msg("简历分析完成")
	ctx.JSON(consts.StatusOK, analysis)
}

// HandleClassify POST /skills/classify
func (h *ResumeHandler) HandleClassify(_ context.Context, ctx *app.RequestContext) {
	var req ClassifyRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求格式错误", "detail": err.Error()})
		return
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}
	ctx.JSON(consts.StatusOK, h.classifier.Display(req.Skills))
}
