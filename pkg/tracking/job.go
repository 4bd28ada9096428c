// Package tracking contains the job model and queue feeding tracking
// submissions to the background workers.
package tracking

import (
	"github.com/segmentio/ksuid"

	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
)

// Kind selects which submission routine a Job runs through.
type Kind string

const (
	KindEvent  Kind = "event"
	KindPeople Kind = "people"
	KindFunnel Kind = "funnel"
)

// Job is a single tracking submission, serialized onto the queue. Jobs are
// independent and stateless, retries re-enqueue the same job with a bumped
// attempt counter.
type Job struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Event     string             `json:"event,omitempty"`
	Operation mixpanel.Operation `json:"operation,omitempty"`

	Funnel string `json:"funnel,omitempty"`
	Step   string `json:"step,omitempty"`
	Goal   string `json:"goal,omitempty"`

	Properties mixpanel.Properties `json:"properties,omitempty"`
	Test       mixpanel.TestFlag   `json:"test,omitempty"`

	Attempts int `json:"attempts"`
}

// NewEventJob creates a job for a plain event.
func NewEventJob(event string, properties mixpanel.Properties, flag mixpanel.TestFlag) *Job {
	return &Job{
		ID:         ksuid.New().String(),
		Kind:       KindEvent,
		Event:      event,
		Properties: properties,
		Test:       flag,
	}
}

// NewPeopleJob creates a job for a people-profile update.
func NewPeopleJob(op mixpanel.Operation, properties mixpanel.Properties, flag mixpanel.TestFlag) *Job {
	return &Job{
		ID:         ksuid.New().String(),
		Kind:       KindPeople,
		Operation:  op,
		Properties: properties,
		Test:       flag,
	}
}

// NewFunnelJob creates a job for a funnel-step event.
func NewFunnelJob(funnel, step, goal string, properties mixpanel.Properties, flag mixpanel.TestFlag) *Job {
	return &Job{
		ID:         ksuid.New().String(),
		Kind:       KindFunnel,
		Funnel:     funnel,
		Step:       step,
		Goal:       goal,
		Properties: properties,
		Test:       flag,
	}
}
