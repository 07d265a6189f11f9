package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/careerpilot/careerpilot/internal/profile"
	"github.com/careerpilot/careerpilot/internal/store"
	"github.com/streadway/amqp"
)

// retry retries a function up to attempts times with linear backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// ProfileScraper fetches raw profile data for a LinkedIn URL.
type ProfileScraper interface {
	Scrape(ctx context.Context, profileURL string) (string, error)
}

// ObjectStore downloads uploaded resume documents by key.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// WorkerPool consumes profile-load jobs: scrape or download the
// source, extract text, summarize, store the summary, and flip the
// session from pending to active.
type WorkerPool struct {
	URL        string
	Store      store.Store
	Scraper    ProfileScraper
	R2         ObjectStore
	Summarizer *profile.Summarizer
	Publisher  *Publisher
	Locks      *domain.SessionLocks
	Log        *slog.Logger
}

// Start runs numWorkers consumers and blocks until they all exit.
func (p *WorkerPool) Start(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		p.Log.Info("ingest worker started", "worker_id", i+1)
		go p.worker(i, &wg)
	}
	wg.Wait()
}

func (p *WorkerPool) worker(id int, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Error("error dialling rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Error("error opening rabbitmq channel", "error", err)
		return
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		IngestQueue,
		true,  // durable
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		p.Log.Error("failed to declare queue", "error", err)
		return
	}

	msgs, err := ch.Consume(
		IngestQueue,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		p.Log.Error("error consuming rabbitmq messages", "error", err)
		return
	}

	for msg := range msgs {
		var job domain.IngestJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			p.Log.Error("error unmarshalling job body", "error", err)
			continue
		}

		log := p.Log.With("worker_id", id+1, "session_id", job.SessionID)
		log.Info("processing ingest job")
		p.publishUpdate(job, "processing", "profile ingestion started")

		if err := p.process(context.Background(), job); err != nil {
			log.Error("ingest job failed", "error", err)
			p.setStatus(job, domain.StatusFailed)
			p.publishUpdate(job, "failed", "profile ingestion failed")
			continue
		}

		log.Info("ingest job completed")
		p.publishUpdate(job, "ready", "profile ingestion completed")
	}
}

func (p *WorkerPool) process(ctx context.Context, job domain.IngestJob) error {
	raw, err := p.loadSource(ctx, job)
	if err != nil {
		return err
	}

	// Transient model failures are worth one more attempt here; role
	// builders never retry, but ingestion is an offline path.
	summary, err := retry(2, func() (string, error) {
		return p.Summarizer.Summarize(ctx, raw)
	})
	if err != nil {
		return err
	}

	// Same lock as the dispatcher: a turn may be mid-flight for this
	// session, and Save rewrites the whole checkpoint.
	lock := p.Locks.Get(job.SessionID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := p.Store.Load(ctx, job.SessionID)
	if err != nil {
		return err
	}
	// Ended is terminal. A turn that ended the session while ingestion
	// was running wins; the summary is dropped.
	if conv.Status == domain.StatusEnded {
		p.Log.Info("session ended before ingestion finished, dropping summary", "session_id", job.SessionID)
		return nil
	}
	conv.ProfileSummary = summary
	if conv.Status == domain.StatusPending {
		conv.Status = domain.StatusActive
	}
	conv.UpdatedAt = time.Now()

	_, err = retry(3, func() (any, error) {
		return nil, p.Store.Save(ctx, conv)
	})
	if err != nil {
		return fmt.Errorf("failed to save summary after retries: %w", err)
	}
	return nil
}

func (p *WorkerPool) loadSource(ctx context.Context, job domain.IngestJob) (string, error) {
	switch {
	case job.LinkedInURL != "":
		if p.Scraper == nil {
			return "", fmt.Errorf("profile scraping is not configured")
		}
		return retry(3, func() (string, error) {
			return p.Scraper.Scrape(ctx, job.LinkedInURL)
		})

	case job.ObjectKey != "":
		if p.R2 == nil {
			return "", fmt.Errorf("object storage is not configured")
		}
		data, err := retry(3, func() ([]byte, error) {
			return p.R2.Download(ctx, job.ObjectKey)
		})
		if err != nil {
			return "", fmt.Errorf("file download error: %w", err)
		}
		text, err := profile.ExtractText(job.Mime, data)
		if err != nil {
			return "", fmt.Errorf("text extraction error: %w", err)
		}
		return text, nil

	default:
		return "", fmt.Errorf("ingest job has no source")
	}
}

func (p *WorkerPool) setStatus(job domain.IngestJob, status domain.Status) {
	ctx := context.Background()
	lock := p.Locks.Get(job.SessionID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := p.Store.Load(ctx, job.SessionID)
	if err != nil {
		p.Log.Error("failed to load session for status update", "session_id", job.SessionID, "error", err)
		return
	}
	if conv.Status == domain.StatusEnded {
		return
	}
	conv.Status = status
	conv.UpdatedAt = time.Now()
	if err := p.Store.Save(ctx, conv); err != nil {
		p.Log.Error("failed to update session status", "session_id", job.SessionID, "error", err)
	}
}

func (p *WorkerPool) publishUpdate(job domain.IngestJob, status, message string) {
	if p.Publisher == nil {
		return
	}
	update := map[string]any{
		"session_id": job.SessionID,
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
	if err := p.Publisher.PublishSessionUpdate(job.SessionID.String(), update); err != nil {
		p.Log.Error("failed to publish session update", "session_id", job.SessionID, "error", err)
	}
}
