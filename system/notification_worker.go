package system

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"intranet/metrics"
	"intranet/notification"
)

type NotificationJob struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Notifier is the part of notification.Notifier the pool needs.
type Notifier interface {
	Notify(message, typ string) *notification.Toast
}

type NotificationWorkerPool struct {
	Notifier  Notifier
	JobQueue  chan NotificationJob
	NumWorker int

	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewNotificationWorkerPool(notifier Notifier, numWorker, queueSize int, logger *zap.Logger) *NotificationWorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorkerPool{
		Notifier:  notifier,
		JobQueue:  make(chan NotificationJob, queueSize),
		NumWorker: numWorker,
		logger:    logger,
	}
}

func (p *NotificationWorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.NumWorker; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Enqueue hands a job to the workers without blocking. It reports false
// when the queue is full or the pool is stopped.
func (p *NotificationWorkerPool) Enqueue(job NotificationJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		metrics.NotificationJobsDropped.Inc()
		return false
	}
	select {
	case p.JobQueue <- job:
		return true
	default:
		metrics.NotificationJobsDropped.Inc()
		return false
	}
}

// Stop closes the queue and waits for workers to drain it.
func (p *NotificationWorkerPool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.JobQueue)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *NotificationWorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("notification worker shutting down", zap.Int("worker", id))
			return
		case job, ok := <-p.JobQueue:
			if !ok {
				p.logger.Debug("notification queue closed", zap.Int("worker", id))
				return
			}
			toast := p.Notifier.Notify(job.Message, job.Type)
			p.logger.Info("notification shown",
				zap.Int("worker", id),
				zap.String("notification_id", toast.ID()),
				zap.String("type", job.Type))
		}
	}
}
