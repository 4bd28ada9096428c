package cmd

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	httputil "github.com/styleseat/mixpanel-celery/pkg/http"
	"github.com/styleseat/mixpanel-celery/pkg/redis"
	"github.com/styleseat/mixpanel-celery/pkg/tracking"
)

var server = &cobra.Command{
	Use:   "server",
	Short: "runs the tracking intake server",
	RunE:  runServer,
}

var serverFile string

func init() {
	server.Flags().StringVarP(&serverFile, "config", "c", "config.toml", "config file")
}

func runServer(*cobra.Command, []string) error {
	config, err := loadConf(serverFile)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	rdb := redis.NewRedis(config.Redis)
	queue := tracking.NewQueue(rdb)

	endpoint := tracking.NewEndpoint(queue)

	addr := fmt.Sprintf("%s:%d", config.API.Host, config.API.Port)

	err = http.ListenAndServe(addr, httputil.CORS(endpoint.Router()))
	if err != nil {
		return errors.Wrap(err, "failed to serve")
	}

	return nil
}
