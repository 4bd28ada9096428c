package cmd

import (
	"github.com/spf13/cobra"

	"github.com/styleseat/mixpanel-celery/pkg/conf"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tracking",
		Short: "Mixpanel Tracking",
		Long:  "",
	}
)

// Conf is the configuration shared by the tracking binaries.
type Conf struct {
	Mixpanel conf.MixpanelConf `mapstructure:"mixpanel"`
	Redis    conf.RedisConf    `mapstructure:"redis"`
	API      conf.AddrConf     `mapstructure:"api"`
	Worker   WorkerConf        `mapstructure:"worker"`
}

// WorkerConf describes the worker pool and its retry policy.
type WorkerConf struct {
	Count       int `mapstructure:"count"`
	MaxAttempts int `mapstructure:"max_attempts"`
	Backoff     int `mapstructure:"backoff"`
}

func init() {
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(server)
	rootCmd.AddCommand(send)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConf(file string) (*Conf, error) {
	config := &Conf{
		Worker: WorkerConf{
			Count:       5,
			MaxAttempts: 5,
			Backoff:     1,
		},
	}

	err := conf.Load(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
