package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/embedding"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/keywords"
	appLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hlog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const serviceName = "resume-match-go"

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Init(appLogger.Config{Level: "info", Format: "pretty"})
		appLogger.Fatal().Err(err).Str("path", configPath).Msg("加载配置失败")
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	hlog.SetLogger(hertzzerolog.From(appLogger.Logger))
	appLogger.Info().Str("path", configPath).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := initTracing(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer shutdownTracing()

	storageManager, err := storage.NewStorage(ctx, cfg, appLogger.Logger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()

	// 文本提取器
	extractorOpts := []extractor.Option{extractor.WithLogger(appLogger.Logger)}
	if cfg.Analyzer.SniffContentType {
		extractorOpts = append(extractorOpts, extractor.WithContentSniffing(true))
	}
	textExtractor, err := extractor.New(ctx, extractorOpts...)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化文本提取器失败")
	}

	// NER与结构化解析
	nerRecognizer := parser.NewProseRecognizer()
	infoExtractor := parser.NewInfoExtractor(nerRecognizer,
		parser.WithSkillDictionary(cfg.Analyzer.SkillDictionary),
		parser.WithInfoLogger(appLogger.Logger),
	)

	// JD关键词与技能差距
	suggester := keywords.NewSuggester(nerRecognizer,
		keywords.WithSuggesterSkillDictionary(cfg.Analyzer.SkillDictionary),
		keywords.WithMaxPhrases(cfg.Analyzer.MaxKeywords),
		keywords.WithSuggesterLogger(appLogger.Logger),
	)

	// 嵌入模型懒加载，进程启动不依赖模型文件就绪
	embedder, err := embedding.NewFastEmbedProvider(&cfg.Embedder, appLogger.Logger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化嵌入组件失败")
	}
	defer embedder.Close()

	pipeline, err := processor.NewPipeline(
		processor.WithExtractor(textExtractor),
		processor.WithParser(infoExtractor),
		processor.WithEmbedder(embedder),
		processor.WithSuggester(suggester),
		processor.WithStorage(storageManager),
		processor.WithSimilarityMode(types.SimilarityMode(cfg.Analyzer.SimilarityMode)),
		processor.WithLexicalFallback(cfg.Analyzer.LexicalFallback),
		processor.WithMaxKeywords(cfg.Analyzer.MaxKeywords),
		processor.WithModelID(cfg.Embedder.Model),
		processor.WithLogger(appLogger.Logger),
	)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化分析流水线失败")
	}
	appLogger.Info().Str("mode", cfg.Analyzer.SimilarityMode).Msg("分析流水线初始化成功")

	// 异步消费者按存储配置决定是否启动
	if storageManager.AsyncEnabled() {
		consumer, err := processor.NewConsumer(pipeline, storageManager, appLogger.Logger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("初始化队列消费者失败")
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				appLogger.Error().Err(err).Msg("队列消费者退出")
			}
		}()
	} else {
		appLogger.Warn().Msg("异步分析未启用，仅提供同步分析接口")
	}

	analyzeHandler := handler.NewAnalyzeHandler(storageManager, pipeline, appLogger.Logger)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(cfg.Server.MaxUploadSizeMB)*1024*1024+1024*1024),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		hlog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		hlog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})
	router.RegisterRoutes(h, analyzeHandler, cfg.Server.MaxUploadSizeMB*1024*1024)

	go func() {
		appLogger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动")
		if err := h.Run(); err != nil {
			appLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("接收到终止信号，正在优雅退出")

	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	appLogger.Info().Msg("优雅退出完成")
}

// initTracing 初始化OTLP链路追踪，未配置端点时返回空操作
func initTracing(ctx context.Context, cfg *config.Config) (func(), error) {
	if cfg.Tracing.Endpoint == "" {
		return func() {}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Tracing.Endpoint)}
	if cfg.Tracing.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}, nil
}
