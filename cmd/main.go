package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/fordcg/ai-interview-system/internal/api/handler"
	"github.com/fordcg/ai-interview-system/internal/api/router"
	"github.com/fordcg/ai-interview-system/internal/config"
	"github.com/fordcg/ai-interview-system/internal/extractor"
	appCoreLogger "github.com/fordcg/ai-interview-system/internal/logger"
	"github.com/fordcg/ai-interview-system/internal/tracing"
)

var (
	version = "1.0.0" //nolint:gochecknoglobals
)

func main() {
	var (
		configPath string
		envFile    string
		warmup     bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，为空时自动查找")
	pflag.StringVar(&envFile, "env-file", ".env", "环境变量文件，不存在时忽略")
	pflag.BoolVar(&warmup, "warmup", true, "启动时预加载NER模型")
	pflag.Parse()

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		glog.Warnf("读取环境变量文件 %s 失败: %v", envFile, err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}
	initLogger(cfg.Logger)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing, version)
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}

	engine, closeEngine, err := extractor.NewFromConfig(cfg, appCoreLogger.Component("extractor"))
	if err != nil {
		glog.Fatalf("初始化抽取引擎失败: %v", err)
	}
	if warmup {
		// 模型加载失败时仍启动服务，开启降级时可返回关键词结果
		if err := engine.Warmup(ctx); err != nil {
			glog.Warnf("NER模型预加载失败: %v", err)
		}
	}

	resumeHandler := handler.NewResumeHandler(engine, engine.Classifier(), appCoreLogger.Component("api"))

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		glog.CtxInfof(c, "%s %s status=%d elapsed=%s",
			string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode(), time.Since(start))
	})

	router.RegisterRoutes(h, resumeHandler, cfg.Server.APIKeys)
	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if err := closeEngine(); err != nil {
		glog.Errorf("释放引擎资源失败: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		glog.Errorf("关闭链路追踪失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化应用日志，并让 hertz 的日志走同一个 zerolog 实例
func initLogger(cfg config.LoggerConfig) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		TimeFormat:   cfg.TimeFormat,
		ReportCaller: cfg.ReportCaller,
	})

	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
	level := glog.LevelInfo
	if cfg.Level == "debug" {
		level = glog.LevelDebug
	}
	glog.SetLevel(level)
}
