package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
	"github.com/styleseat/mixpanel-celery/pkg/redis"
	"github.com/styleseat/mixpanel-celery/pkg/tracking"
	"github.com/styleseat/mixpanel-celery/pkg/tracking/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "runs a tracking worker",
	RunE:  runWorker,
}

var workerFile string

func init() {
	workerCmd.Flags().StringVarP(&workerFile, "config", "c", "config.toml", "config file")
}

func runWorker(*cobra.Command, []string) error {
	config, err := loadConf(workerFile)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	rdb := redis.NewRedis(config.Redis)
	queue := tracking.NewQueue(rdb)

	client := mixpanel.NewClient(config.Mixpanel)
	tracker := tracking.NewMixpanelTracker(client)

	dispatcher := worker.NewDispatcher(config.Worker.Count, &worker.Config{
		Tracker:     tracker,
		Queue:       queue,
		MaxAttempts: config.Worker.MaxAttempts,
		Backoff:     time.Duration(config.Worker.Backoff) * time.Second,
	})

	dispatcher.Run()

	for job := range queue.Subscribe() {
		dispatcher.Dispatch(job)
	}

	return nil
}
