package main

import (
	"flag"
	"log"
	"os"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/pkg/cron"
)

var (
	dryRun     = flag.Bool("dry-run", true, "Dry run mode, don't actually delete files")
	expireDays = flag.Int("expire-days", 0, "Days to keep report files (0 = use config value)")
)

func main() {
	flag.Parse()

	log.Println("Starting report cleanup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	days := *expireDays
	if days <= 0 {
		days = cfg.Report.ExpireDays
	}

	cleaned := cron.CleanupReports(cfg.Report.Dir, days, *dryRun)
	log.Printf("Cleanup finished: %d report files (older than %d days) in %s", cleaned, days, cfg.Report.Dir)
	if *dryRun {
		log.Println("DRY RUN MODE - no files were actually deleted, run with -dry-run=false to delete")
	}
}
