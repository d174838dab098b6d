// Package workerpool runs detached background jobs on a bounded set of workers
// Package workerpool 在有限数量的 worker 上运行后台任务
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// 错误定义
var (
	// ErrWorkerPoolFull 当任务队列已满时返回
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed 当 Worker Pool 已关闭时返回
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
)

var (
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "echoapp",
		Name:      "jobs_total",
		Help:      "Background jobs run by the worker pool.",
	}, []string{"job", "result"})

	jobsQueued = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "echoapp",
		Name:      "jobs_queued",
		Help:      "Background jobs waiting for a worker.",
	})
)

// Job is one unit of background work
// Job 一个后台任务
type Job func(ctx context.Context) error

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量，默认 4
	MaxWorkers int
	// QueueSize 任务队列大小，默认 16
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers: 4,
		QueueSize:  16,
	}
}

type job struct {
	name string
	ctx  context.Context
	fn   Job
	done chan error
}

// Pool 有界后台任务池
type Pool struct {
	config Config
	logger *zap.Logger

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New 创建并启动 Worker Pool
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		config: c,
		logger: logger,
		jobs:   make(chan job, c.QueueSize),
	}
	for i := 0; i < c.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", c.MaxWorkers),
		zap.Int("queueSize", c.QueueSize))
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		jobsQueued.Dec()
		err := p.run(j)
		if j.done != nil {
			j.done <- err
		}
	}
}

// run executes one job; a panic becomes the job's error
func (p *Pool) run(j job) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.name, r)
		}
		result := "success"
		if err != nil {
			result = "error"
			p.logger.Warn("background job failed",
				zap.String("job", j.name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
		}
		jobsTotal.WithLabelValues(j.name, result).Inc()
	}()

	if err := j.ctx.Err(); err != nil {
		return err
	}
	return j.fn(j.ctx)
}

func (p *Pool) enqueue(j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}
	select {
	case p.jobs <- j:
		jobsQueued.Inc()
		return nil
	default:
		return ErrWorkerPoolFull
	}
}

// Submit 提交任务并等待其完成
func (p *Pool) Submit(ctx context.Context, name string, fn Job) error {
	done := make(chan error, 1)
	if err := p.enqueue(job{name: name, ctx: ctx, fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitAsync 提交任务后立即返回，ctx 的取消不会影响已提交的任务
func (p *Pool) SubmitAsync(ctx context.Context, name string, fn Job) error {
	return p.enqueue(job{name: name, ctx: context.WithoutCancel(ctx), fn: fn})
}

// Pending 返回队列中等待的任务数
func (p *Pool) Pending() int {
	return len(p.jobs)
}

// Shutdown stops accepting jobs and waits for queued ones to finish
// Shutdown 停止接收任务并等待已排队任务完成
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.logger.Warn("worker pool shutdown timeout", zap.Int("pending", len(p.jobs)))
		return ctx.Err()
	}
}
