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
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"ats-score-go/internal/api/handler"
	"ats-score-go/internal/api/router"
	"ats-score-go/internal/config"
	"ats-score-go/internal/history"
	appCoreLogger "ats-score-go/internal/logger"
	"ats-score-go/internal/parser"
	"ats-score-go/internal/scorer"
	"ats-score-go/internal/storage"
)

func main() {
	initLogger()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}
	glog.Info("配置加载成功")

	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 历史存储：Redis可用时用Redis，否则退回进程内实现
	var historyStore history.Store
	if storageManager.Redis != nil {
		historyStore = history.NewRedisStore(storageManager.Redis, cfg.History.Cap)
		glog.Info("评分历史使用Redis存储")
	} else {
		historyStore = history.NewMemoryStore(cfg.History.Cap)
		glog.Warn("Redis不可用，评分历史退回进程内存储，重启后丢失")
	}

	engine := scorer.NewEngine(engineOptions(cfg)...)
	gap := scorer.NewGapAnalyzer(cfg.Scoring.SuggestionLimit)
	service := scorer.NewService(engine, gap,
		scorer.WithHistoryStore(historyStore),
		scorer.WithStorage(storageManager),
		scorer.WithKeywordLimit(cfg.Scoring.KeywordLimit),
		scorer.WithExcerptLength(cfg.Scoring.ExcerptLength),
	)
	glog.Info("评分服务初始化成功")

	scoreHandler := handler.NewScoreHandler(cfg, service, parser.NewDispatcher(), storageManager)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(cfg.Server.MaxUploadBytes)+(1<<20)),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, scoreHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP服务器启动中，监听地址: %s", cfg.Server.Address)
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
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// engineOptions 把评分配置翻译为引擎选项
func engineOptions(cfg *config.Config) []scorer.EngineOption {
	weights := scorer.DefaultWeights()
	if cfg.Scoring.SectionBonus > 0 {
		weights.SectionBonus = cfg.Scoring.SectionBonus
	}
	if cfg.Scoring.KeywordBonus > 0 {
		weights.KeywordBonus = cfg.Scoring.KeywordBonus
	}
	if cfg.Scoring.FormatPenalty > 0 {
		weights.FormatPenalty = cfg.Scoring.FormatPenalty
	}

	opts := []scorer.EngineOption{scorer.WithWeights(weights)}
	if cfg.Scoring.EnableJitter {
		seed := cfg.Scoring.JitterSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts = append(opts, scorer.WithJitter(seed))
	}
	return opts
}

func initLogger() {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = "15:04:05"

	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()
	appCoreLogger.Logger = logger
	zlog.Logger = logger

	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
	glog.SetLevel(glog.LevelInfo)
}
