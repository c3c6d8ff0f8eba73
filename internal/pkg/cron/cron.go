package cron

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qs3c/osint_go_server/internal/progress"
)

type Service struct {
	tracker        *progress.Tracker
	reportDir      string
	jobExpireHours int
	reportExpire   int // 天
	stopChan       chan struct{}
}

func NewService(tracker *progress.Tracker, reportDir string, jobExpireHours, reportExpireDays int) *Service {
	return &Service{
		tracker:        tracker,
		reportDir:      reportDir,
		jobExpireHours: jobExpireHours,
		reportExpire:   reportExpireDays,
		stopChan:       make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runTrackerSweep()
	go s.runReportCleanup()
	log.Println("Cron service started (tracker sweep + report cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runTrackerSweep 每小时清理一次终态的进度条目，防止任务表无限增长
func (s *Service) runTrackerSweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepTracker()
		}
	}
}

func (s *Service) sweepTracker() {
	hours := s.jobExpireHours
	if hours <= 0 {
		hours = 24
	}
	removed := s.tracker.Sweep(time.Duration(hours) * time.Hour)
	if removed > 0 {
		log.Printf("Tracker sweep removed %d finished jobs", removed)
	}
}

// runReportCleanup 每天清理一次过期的本地报告文件
func (s *Service) runReportCleanup() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			cleaned := CleanupReports(s.reportDir, s.reportExpire, false)
			if cleaned > 0 {
				log.Printf("Report cleanup removed %d expired files", cleaned)
			}
			timer.Reset(24 * time.Hour)
		}
	}
}

// CleanupReports 删除超过保留期的报告文件，dryRun 只统计不删除
// cleanup 命令行工具复用同一份逻辑
func CleanupReports(reportDir string, expireDays int, dryRun bool) int {
	if reportDir == "" || expireDays <= 0 {
		return 0
	}

	entries, err := os.ReadDir(reportDir)
	if err != nil {
		log.Printf("Report cleanup: failed to read dir %s: %v", reportDir, err)
		return 0
	}

	expire := time.Duration(expireDays) * 24 * time.Hour
	cleaned := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > expire {
			filePath := filepath.Join(reportDir, entry.Name())
			if dryRun {
				log.Printf("Report cleanup (dry-run): would remove %s", filePath)
				cleaned++
				continue
			}
			if err := os.Remove(filePath); err != nil {
				log.Printf("Report cleanup: failed to remove %s: %v", filePath, err)
			} else {
				cleaned++
			}
		}
	}
	return cleaned
}

// RunNow 立即执行一次全部清理（手动触发）
func (s *Service) RunNow() {
	s.sweepTracker()
	CleanupReports(s.reportDir, s.reportExpire, false)
}
