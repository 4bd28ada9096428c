package worker

import (
	"github.com/styleseat/mixpanel-celery/pkg/tracking"
)

type Dispatcher struct {
	jobs chan *tracking.Job
	pool chan chan *tracking.Job

	maxWorkers int

	config *Config
}

func NewDispatcher(maxWorkers int, config *Config) *Dispatcher {
	return &Dispatcher{
		jobs:       make(chan *tracking.Job),
		pool:       make(chan chan *tracking.Job),
		maxWorkers: maxWorkers,
		config:     config,
	}
}

func (d *Dispatcher) Run() {
	// starting n number of workers
	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(d.pool, d.config)
		worker.Start()
	}

	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for job := range d.jobs {
		go func(job *tracking.Job) {
			// try to obtain a worker job channel that is available.
			// this will block until a worker is idle
			jobChannel := <-d.pool

			// dispatch the job to the worker job channel
			jobChannel <- job
		}(job)
	}
}

func (d *Dispatcher) Dispatch(job *tracking.Job) {
	go func() {
		d.jobs <- job
	}()
}
