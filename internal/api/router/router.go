package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"github.com/fordcg/ai-interview-system/internal/api/handler"
)

// RegisterRoutes 注册 API 路由。apiKeys 非空时 /api/v1 下除健康检查外的接口需要 Bearer 密钥
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, apiKeys []string) {
	api := h.Group("/api/v1")

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	protected := api.Group("")
	if len(apiKeys) > 0 {
		protected.Use(keyAuth(apiKeys))
	}
	protected.POST("/resume/analyze", resumeHandler.HandleAnalyze)
	protected.POST("/skills/classify", resumeHandler.HandleClassify)
}

func keyAuth(apiKeys []string) app.HandlerFunc {
	allowed := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		allowed[k] = struct{}{}
	}
	return keyauth.New(
		keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
		keyauth.WithValidator(func(_ context.Context, _ *app.RequestContext, key string) (bool, error) {
			_, ok := allowed[key]
			return ok, nil
		}),
		keyauth.WithErrorHandler(func(_ context.Context, ctx *app.RequestContext, _ error) {
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "API密钥无效"})
		}),
	)
}
