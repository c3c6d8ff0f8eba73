package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/analyzer"
	"github.com/qs3c/osint_go_server/internal/api"
	"github.com/qs3c/osint_go_server/internal/api/handler"
	"github.com/qs3c/osint_go_server/internal/database"
	"github.com/qs3c/osint_go_server/internal/nlp"
	"github.com/qs3c/osint_go_server/internal/pipeline"
	"github.com/qs3c/osint_go_server/internal/pkg/cron"
	"github.com/qs3c/osint_go_server/internal/pkg/email"
	"github.com/qs3c/osint_go_server/internal/pkg/oss"
	"github.com/qs3c/osint_go_server/internal/pkg/pubsub"
	"github.com/qs3c/osint_go_server/internal/pkg/queue"
	"github.com/qs3c/osint_go_server/internal/pkg/ws"
	"github.com/qs3c/osint_go_server/internal/progress"
	"github.com/qs3c/osint_go_server/internal/report"
	"github.com/qs3c/osint_go_server/internal/repository"
	"github.com/qs3c/osint_go_server/internal/search"
	"github.com/qs3c/osint_go_server/internal/service"
	"github.com/qs3c/osint_go_server/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	searchQueue := queue.NewQueue(rdb, cfg.Queue.SearchQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub，订阅进度消息转发给前端
	wsHub := ws.NewHub()
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			if !wsHub.HasWatchers(msg.SearchID) {
				return
			}
			wsHub.SendToSearch(msg.SearchID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化邮件服务（可选）
	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
	}

	// 初始化检索管线，AI 未配置时分析降级为固定文案
	var aiAnalyzer analyzer.Analyzer
	if cfg.AI.APIKey != "" {
		aiAnalyzer = analyzer.NewOpenAIAnalyzer(&cfg.AI)
		log.Println("AI analyzer initialized")
	} else {
		log.Println("AI analyzer disabled (no API key)")
	}
	searchPipeline := pipeline.New(
		search.NewGoogleClient(&cfg.Search),
		nlp.NewProseExtractor(),
		nlp.NewFuzzyDateExtractor(),
		aiAnalyzer,
		&cfg.Pipeline,
	)

	// 初始化 Repository / Service
	tracker := progress.NewTracker()
	reportRepo := repository.NewReportRepository(db)
	reportStore := report.NewStore(cfg.Report.Dir)
	reportSvc := service.NewReportService(reportStore, reportRepo, ossClient, cfg.Report.UploadToOSS)
	searchSvc := service.NewSearchService(searchQueue, tracker)

	// 启动 Worker Pool 消费检索任务
	processor := worker.NewProcessor(searchPipeline, tracker, publisher, reportSvc, emailSvc, cfg)
	pool := worker.NewPool(searchQueue, processor, cfg.Queue.MaxWorkers)
	pool.Start()

	// 启动定时清理
	cronSvc := cron.NewService(tracker, cfg.Report.Dir, cfg.Pipeline.JobExpireHours, cfg.Report.ExpireDays)
	cronSvc.Start()

	// 初始化 Handler / Router
	searchHandler := handler.NewSearchHandler(searchSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	websocketHandler := handler.NewWebSocketHandler(wsHub)

	router := api.NewRouter(searchHandler, reportHandler, websocketHandler, cfg)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
