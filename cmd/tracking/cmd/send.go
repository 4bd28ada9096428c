package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
)

var send = &cobra.Command{
	Use:   "send",
	Short: "submits a single event",
	RunE:  runSend,
}

var (
	sendFile string

	event      string
	properties map[string]string
	test       bool
)

func init() {
	send.Flags().StringVarP(&sendFile, "config", "c", "config.toml", "config file")
	send.Flags().StringVarP(&event, "event", "e", "", "event name")
	send.Flags().StringToStringVarP(&properties, "property", "p", map[string]string{}, "event properties")
	send.Flags().BoolVarP(&test, "test", "t", false, "mark the submission as test traffic")
}

func runSend(cmd *cobra.Command, _ []string) error {
	if event == "" {
		return errors.New("event cannot be empty")
	}

	config, err := loadConf(sendFile)
	if err != nil {
		return err
	}

	props := mixpanel.Properties{}
	for k, v := range properties {
		props[k] = v
	}

	flag := mixpanel.TestDefault
	if cmd.Flags().Changed("test") {
		flag = mixpanel.TestOff
		if test {
			flag = mixpanel.TestOn
		}
	}

	client := mixpanel.NewClient(config.Mixpanel)

	recorded, err := client.Track(event, props, flag)
	if err != nil {
		return err
	}

	if !recorded {
		return fmt.Errorf("event %q was not recorded", event)
	}

	fmt.Printf("event %q recorded\n", event)

	return nil
}
