package cron

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/osint_go_server/internal/progress"
)

func TestNewService(t *testing.T) {
	tracker := progress.NewTracker()
	svc := NewService(tracker, "reports", 24, 30)

	assert.NotNil(t, svc)
	assert.Equal(t, 24, svc.jobExpireHours)
	assert.Equal(t, 30, svc.reportExpire)
}

func TestService_StartAndStop(t *testing.T) {
	svc := NewService(progress.NewTracker(), t.TempDir(), 24, 30)

	svc.Start()
	time.Sleep(10 * time.Millisecond)
	svc.Stop()
}

func TestCleanupReports(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "Jane_Doe_report_20250101_120000.json")
	newFile := filepath.Join(dir, "John_Smith_report_20260830_120000.json")
	otherFile := filepath.Join(dir, "notes.txt")

	require.NoError(t, os.WriteFile(oldFile, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(newFile, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(otherFile, []byte("x"), 0644))

	// 旧文件的修改时间回拨到保留期之外
	past := time.Now().Add(-40 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, past, past))

	t.Run("dry run counts without deleting", func(t *testing.T) {
		cleaned := CleanupReports(dir, 30, true)
		assert.Equal(t, 1, cleaned)
		_, err := os.Stat(oldFile)
		assert.NoError(t, err)
	})

	t.Run("removes only expired json files", func(t *testing.T) {
		cleaned := CleanupReports(dir, 30, false)
		assert.Equal(t, 1, cleaned)

		_, err := os.Stat(oldFile)
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(newFile)
		assert.NoError(t, err)
		_, err = os.Stat(otherFile)
		assert.NoError(t, err)
	})

	t.Run("zero expire days is a no-op", func(t *testing.T) {
		assert.Zero(t, CleanupReports(dir, 0, false))
	})

	t.Run("missing dir is a no-op", func(t *testing.T) {
		assert.Zero(t, CleanupReports(filepath.Join(dir, "missing"), 30, false))
	})
}

func TestService_RunNow(t *testing.T) {
	dir := t.TempDir()
	tracker := progress.NewTracker()
	svc := NewService(tracker, dir, 24, 30)

	// RunNow 不应因空目录或空任务表报错
	svc.RunNow()
	assert.Zero(t, tracker.Len())
}
