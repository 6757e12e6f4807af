package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"obrapass/internal/port"
)

// ExportQueueConfig holds settings for the export queue worker.
type ExportQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ExportQueueWorker polls for queued export jobs and dispatches them.
type ExportQueueWorker struct {
	jobRepo   port.ExportJobRepository
	exportSvc ExportService
	cfg       ExportQueueConfig
	wg        sync.WaitGroup
	lastPoll  atomic.Int64
}

// NewExportQueueWorker creates a new ExportQueueWorker.
func NewExportQueueWorker(jobRepo port.ExportJobRepository, exportSvc ExportService, cfg ExportQueueConfig) *ExportQueueWorker {
	return &ExportQueueWorker{
		jobRepo:   jobRepo,
		exportSvc: exportSvc,
		cfg:       cfg,
	}
}

// LastPoll returns the time of the worker's most recent poll, or the zero
// time before the first tick. Readiness probes use it to detect a stalled
// worker.
func (w *ExportQueueWorker) LastPoll() time.Time {
	ns := w.lastPoll.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight export goroutines have finished.
func (w *ExportQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("exportQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("exportQueueWorker: shutting down, waiting for in-flight exports...")
			w.wg.Wait()
			log.Printf("exportQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.lastPoll.Store(time.Now().UnixNano())

			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("exportQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight exports complete even during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("exportQueueWorker: dispatching job %s (attempt %d)", job.ID, job.Attempts)
					w.exportSvc.ProcessJob(jobCtx, &job, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
