package tracking

import (
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const queueName = "tracking_queue"

// Queue is a redis backed job queue.
type Queue struct {
	rdb *redis.Client
}

// NewQueue creates a new tracking job Queue.
func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

// Len returns the amount of queued jobs.
func (q *Queue) Len() int {
	val, err := q.rdb.LLen(q.rdb.Context(), queueName).Result()
	if err != nil {
		return 0
	}

	return int(val)
}

// Push enqueues a job.
func (q *Queue) Push(job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return q.rdb.LPush(q.rdb.Context(), queueName, string(data)).Err()
}

// Pop dequeues the oldest job.
func (q *Queue) Pop() (*Job, error) {
	result, err := q.rdb.RPop(q.rdb.Context(), queueName).Result()
	if err != nil {
		return nil, err
	}

	job := &Job{}
	err = json.Unmarshal([]byte(result), job)
	if err != nil {
		return nil, err
	}

	return job, nil
}

// Subscribe returns a channel fed with queued jobs.
func (q *Queue) Subscribe() <-chan *Job {
	jobs := make(chan *Job, 100)
	go q.read(jobs)

	return jobs
}

func (q *Queue) read(jobs chan *Job) {
	for {
		if q.Len() == 0 {
			time.Sleep(time.Second)
			continue
		}

		job, err := q.Pop()
		if err != nil {
			log.Printf("failed to pop from queue: %s", err)
			continue
		}

		jobs <- job
	}
}
