package tracking

import (
	"fmt"

	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
)

//go:generate mockgen -source tracker.go -destination ../../mocks/mock_tracker.go -package mocks

// Tracker submits tracking jobs. It reports whether the service recorded the
// submission, a retryable error means the job may be re-enqueued.
type Tracker interface {
	Track(job *Job) (bool, error)
}

// MixpanelTracker delivers jobs through the mixpanel API client.
type MixpanelTracker struct {
	client *mixpanel.Client
}

func NewMixpanelTracker(client *mixpanel.Client) *MixpanelTracker {
	return &MixpanelTracker{client: client}
}

func (m *MixpanelTracker) Track(job *Job) (bool, error) {
	switch job.Kind {
	case KindEvent:
		return m.client.Track(job.Event, job.Properties, job.Test)
	case KindPeople:
		return m.client.People(job.Operation, job.Properties, job.Test)
	case KindFunnel:
		return m.client.Funnel(job.Funnel, job.Step, job.Goal, job.Properties, job.Test)
	}

	return false, fmt.Errorf("unknown job kind %q", job.Kind)
}
