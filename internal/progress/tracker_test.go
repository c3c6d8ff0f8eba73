package progress

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/osint_go_server/internal/model"
)

func TestTracker_CreateAndGet(t *testing.T) {
	tr := NewTracker()
	tr.Create("jane_pune_1")

	job, ok := tr.Get("jane_pune_1")
	require.True(t, ok)
	assert.Equal(t, model.JobStatusRunning, job.Status)
	assert.Equal(t, 0, job.Percentage)
	assert.Equal(t, "Initializing search...", job.Stage)

	_, ok = tr.Get("missing")
	assert.False(t, ok)
}

func TestTracker_Update(t *testing.T) {
	tr := NewTracker()
	tr.Create("k")

	t.Run("merges fields", func(t *testing.T) {
		tr.Update("k", 35, "Searching News & Legal Sources...")
		job, ok := tr.Get("k")
		require.True(t, ok)
		assert.Equal(t, 35, job.Percentage)
		assert.Equal(t, "Searching News & Legal Sources...", job.Stage)
		assert.Equal(t, model.JobStatusRunning, job.Status)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		tr.Update("ghost", 50, "stage")
		_, ok := tr.Get("ghost")
		assert.False(t, ok)
	})
}

func TestTracker_TerminalWriteOnce(t *testing.T) {
	t.Run("complete then late update is dropped", func(t *testing.T) {
		tr := NewTracker()
		tr.Create("k")
		profile := &model.Profile{Name: "Jane Doe"}
		tr.Complete("k", profile)

		tr.Update("k", 10, "stale update")
		tr.Fail("k", "stale failure")

		job, ok := tr.Get("k")
		require.True(t, ok)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		assert.Equal(t, 100, job.Percentage)
		assert.Equal(t, "Complete!", job.Stage)
		assert.Equal(t, profile, job.Result)
		assert.Empty(t, job.Error)
	})

	t.Run("fail keeps last checkpoint percentage", func(t *testing.T) {
		tr := NewTracker()
		tr.Create("k")
		tr.Update("k", 65, "Processing search results...")
		tr.Fail("k", "no search results found for the query")

		job, ok := tr.Get("k")
		require.True(t, ok)
		assert.Equal(t, model.JobStatusError, job.Status)
		assert.Equal(t, 65, job.Percentage)
		assert.Equal(t, "Search failed", job.Stage)
		assert.Equal(t, "no search results found for the query", job.Error)

		// 失败后 complete 不能覆盖终态
		tr.Complete("k", &model.Profile{})
		job, _ = tr.Get("k")
		assert.Equal(t, model.JobStatusError, job.Status)
		assert.Nil(t, job.Result)
	})
}

// 并发读写下快照不能出现字段撕裂：
// 每次更新写入配套的 percentage/stage，读到的组合必须完整对应某一次更新
func TestTracker_ConcurrentSnapshots(t *testing.T) {
	tr := NewTracker()
	tr.Create("k")

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			tr.Update("k", i, fmt.Sprintf("stage-%d", i))
		}
		close(done)
	}()

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, ok := tr.Get("k")
				require.True(t, ok)
				if job.Percentage > 0 {
					assert.Equal(t, fmt.Sprintf("stage-%d", job.Percentage), job.Stage)
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}

func TestTracker_ConcurrentKeysIsolated(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		key := fmt.Sprintf("job-%d", i)
		tr.Create(key)
		wg.Add(1)
		go func(key string, n int) {
			defer wg.Done()
			for p := 1; p <= 100; p++ {
				tr.Update(key, p, "working")
			}
			if n%2 == 0 {
				tr.Complete(key, &model.Profile{Name: key})
			} else {
				tr.Fail(key, "boom")
			}
		}(key, i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		job, ok := tr.Get(fmt.Sprintf("job-%d", i))
		require.True(t, ok)
		assert.True(t, job.Terminal())
	}
}

func TestTracker_Sweep(t *testing.T) {
	tr := NewTracker()
	tr.Create("old-done")
	tr.Complete("old-done", &model.Profile{})
	tr.Create("old-running")
	tr.Create("fresh-done")
	tr.Complete("fresh-done", &model.Profile{})

	// 人为做旧两个任务
	tr.mu.Lock()
	tr.jobs["old-done"].UpdatedAt = time.Now().Add(-48 * time.Hour)
	tr.jobs["old-running"].UpdatedAt = time.Now().Add(-48 * time.Hour)
	tr.mu.Unlock()

	cleaned := tr.Sweep(24 * time.Hour)
	assert.Equal(t, 1, cleaned)

	_, ok := tr.Get("old-done")
	assert.False(t, ok)

	// 运行中的任务即使过期也不清理
	_, ok = tr.Get("old-running")
	assert.True(t, ok)
	_, ok = tr.Get("fresh-done")
	assert.True(t, ok)
	assert.Equal(t, 2, tr.Len())
}
