package worker

import (
	"context"
	"errors"
	"log"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/pipeline"
	"github.com/qs3c/osint_go_server/internal/pkg/email"
	"github.com/qs3c/osint_go_server/internal/pkg/pubsub"
	"github.com/qs3c/osint_go_server/internal/pkg/queue"
	"github.com/qs3c/osint_go_server/internal/progress"
	"github.com/qs3c/osint_go_server/internal/service"
)

// Processor 消费检索任务：跑聚合管线、回写进度、落盘报告
type Processor struct {
	pipeline  *pipeline.Pipeline
	tracker   *progress.Tracker
	publisher *pubsub.Publisher       // nil 时不广播
	reportSvc *service.ReportService  // nil 时不自动落盘
	emailSvc  *email.Service          // nil 时不发通知
	cfg       *config.Config
}

func NewProcessor(
	pl *pipeline.Pipeline,
	tracker *progress.Tracker,
	publisher *pubsub.Publisher,
	reportSvc *service.ReportService,
	emailSvc *email.Service,
	cfg *config.Config,
) *Processor {
	return &Processor{
		pipeline:  pl,
		tracker:   tracker,
		publisher: publisher,
		reportSvc: reportSvc,
		emailSvc:  emailSvc,
		cfg:       cfg,
	}
}

// Process 处理一次检索任务
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	key := msg.JobKey

	publishProgress := func(status, stage string, percentage int, errMsg string) {
		if p.publisher == nil {
			return
		}
		if err := p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
			SearchID:   key,
			Status:     status,
			Stage:      stage,
			Percentage: percentage,
			Error:      errMsg,
		}); err != nil {
			log.Printf("Search %s: failed to publish progress: %v", key, err)
		}
	}

	handleError := func(err error) error {
		errMsg := err.Error()
		p.tracker.Fail(key, errMsg)

		job, _ := p.tracker.Get(key)
		publishProgress(model.JobStatusError, job.Stage, job.Percentage, errMsg)

		if p.emailSvc != nil && p.cfg.Email.NotifyTo != "" {
			// 已知的"无结果"类失败不值得告警
			if !errors.Is(err, pipeline.ErrNoResults) && !errors.Is(err, pipeline.ErrNoMatch) {
				if mailErr := p.emailSvc.SendSearchFailed(p.cfg.Email.NotifyTo, key, errMsg); mailErr != nil {
					log.Printf("Search %s: failed to send failure mail: %v", key, mailErr)
				}
			}
		}
		return err
	}

	log.Printf("Search %s: starting pipeline (name=%s city=%s)", key, msg.Name, msg.City)

	onProgress := func(percentage int, stage string) {
		p.tracker.Update(key, percentage, stage)
		publishProgress(model.JobStatusRunning, stage, percentage, "")
	}

	profile, err := p.pipeline.Run(ctx, msg.Name, msg.City, msg.ExtraTerms, onProgress)
	if err != nil {
		return handleError(err)
	}

	var reportPath string
	if p.reportSvc != nil {
		rec, saveErr := p.reportSvc.SaveProfile(profile)
		if saveErr != nil {
			// 落盘失败不终止任务，结果仍可通过轮询拿到
			log.Printf("Search %s: failed to persist report: %v", key, saveErr)
		} else {
			reportPath = rec.FilePath
		}
	}

	p.tracker.Complete(key, profile)
	publishProgress(model.JobStatusCompleted, "Complete!", 100, "")

	if p.emailSvc != nil && p.cfg.Email.NotifyTo != "" && reportPath != "" {
		if mailErr := p.emailSvc.SendReportReady(p.cfg.Email.NotifyTo, msg.Name, msg.City, reportPath); mailErr != nil {
			log.Printf("Search %s: failed to send report mail: %v", key, mailErr)
		}
	}

	log.Printf("Search %s: completed with %d results", key, len(profile.RawData))
	return nil
}
