// Package worker contains the background workers delivering tracking jobs.
package worker

import (
	"log"
	"math/rand"
	"time"

	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
	"github.com/styleseat/mixpanel-celery/pkg/tracking"
)

// Config carries the collaborators and retry policy shared by all workers.
type Config struct {
	Tracker tracking.Tracker
	Queue   *tracking.Queue

	// MaxAttempts bounds how often a job is submitted before it is dropped.
	MaxAttempts int

	// Backoff is the base delay before a retry, doubled per attempt.
	Backoff time.Duration
}

type Worker struct {
	Work        chan *tracking.Job
	WorkerQueue chan chan *tracking.Job
	QuitChan    chan bool

	config *Config
}

func NewWorker(pool chan chan *tracking.Job, config *Config) *Worker {
	return &Worker{
		Work:        make(chan *tracking.Job),
		WorkerQueue: pool,
		QuitChan:    make(chan bool),
		config:      config,
	}
}

func (w *Worker) Start() {
	go func() {
		for {
			w.WorkerQueue <- w.Work

			select {
			case job := <-w.Work:
				// Receive a work request.
				w.handle(job)
			case <-w.QuitChan:
				// We have been asked to stop.
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	go func() {
		w.QuitChan <- true
	}()
}

func (w *Worker) handle(job *tracking.Job) {
	recorded, err := w.config.Tracker.Track(job)
	if err != nil {
		if mixpanel.IsRetryable(err) {
			w.retry(job, err)
			return
		}

		log.Printf("job %s failed: %s", job.ID, err)
		return
	}

	if !recorded {
		// The service declined the submission, retrying would not help.
		log.Printf("job %s was not recorded", job.ID)
	}
}

func (w *Worker) retry(job *tracking.Job, cause error) {
	job.Attempts++

	if job.Attempts >= w.config.MaxAttempts {
		log.Printf("job %s dropped after %d attempts: %s", job.ID, job.Attempts, cause)
		return
	}

	delay := backoff(w.config.Backoff, job.Attempts)
	log.Printf("job %s retrying in %s: %s", job.ID, delay, cause)

	time.AfterFunc(delay, func() {
		err := w.config.Queue.Push(job)
		if err != nil {
			log.Printf("failed to requeue job %s: %s", job.ID, err)
		}
	})
}

// backoff returns the delay before the given attempt, exponential in the
// attempt count with jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = time.Second
	}

	d := base * time.Duration(1<<uint(attempt-1))
	jitter := time.Duration(rand.Int63n(int64(d/2) + 1))

	return d/2 + jitter
}
