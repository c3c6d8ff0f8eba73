package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/qs3c/osint_go_server/internal/pkg/queue"
)

const popTimeout = 5 * time.Second

// Pool 固定大小的消费协程池
// 每个在途任务持有可取消的子 context，Stop 时一并取消
type Pool struct {
	queue     *queue.Queue
	processor *Processor
	workers   int

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]context.CancelFunc // job key -> 取消句柄
}

func NewPool(q *queue.Queue, processor *Processor, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		queue:     q,
		processor: processor,
		workers:   workers,
		inflight:  make(map[string]context.CancelFunc),
	}
}

// Start 启动消费循环
func (p *Pool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Printf("Worker pool started, max workers: %d", p.workers)
}

// Stop 停止消费并等待在途任务结束
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	log.Println("Worker pool stopped")
}

// Cancel 取消指定的在途任务，返回该任务是否在处理中
func (p *Pool) Cancel(jobKey string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	cancel, ok := p.inflight[jobKey]
	if ok {
		cancel()
	}
	return ok
}

// InflightCount 当前在途任务数
func (p *Pool) InflightCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inflight)
}

func (p *Pool) run(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			msg, err := p.queue.Pop(ctx, popTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Worker %d: failed to pop job: %v", workerID, err)
				continue
			}

			if msg == nil {
				continue // 超时，继续等待
			}

			p.process(ctx, workerID, msg)
		}
	}
}

func (p *Pool) process(ctx context.Context, workerID int, msg *queue.JobMessage) {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	p.inflight[msg.JobKey] = cancel
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.inflight, msg.JobKey)
		p.mu.Unlock()
	}()

	log.Printf("Worker %d: processing search %s", workerID, msg.JobKey)
	if err := p.processor.Process(jobCtx, msg); err != nil {
		log.Printf("Worker %d: search %s failed: %v", workerID, msg.JobKey, err)
	}
}
