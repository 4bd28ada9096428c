package worker_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/styleseat/mixpanel-celery/mocks"
	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
	"github.com/styleseat/mixpanel-celery/pkg/tracking"
	"github.com/styleseat/mixpanel-celery/pkg/tracking/worker"
)

func TestDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := newTestQueue(t)

	done := make(chan struct{})

	tracker := mocks.NewMockTracker(ctrl)
	tracker.EXPECT().Track(gomock.Any()).DoAndReturn(func(*tracking.Job) (bool, error) {
		close(done)
		return true, nil
	})

	dispatcher := worker.NewDispatcher(2, &worker.Config{
		Tracker:     tracker,
		Queue:       queue,
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
	})

	dispatcher.Run()
	dispatcher.Dispatch(tracking.NewEventJob("event_foo", nil, mixpanel.TestDefault))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job")
	}
}
