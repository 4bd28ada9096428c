// Package mixpanel implements the wire format and submission routine for the
// mixpanel HTTP tracking API.
package mixpanel

import (
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/styleseat/mixpanel-celery/pkg/conf"
)

// Properties maps a property name to a scalar value. The keys "token",
// "distinct_id" and "ip" are reserved by the tracking API.
type Properties map[string]interface{}

// Operation is a people-profile update operation.
type Operation string

const (
	OperationSet         Operation = "set"
	OperationTrackCharge Operation = "track_charge"
)

// TestFlag marks a submission as test traffic. TestDefault defers to the
// client's test-only setting.
type TestFlag int

const (
	TestDefault TestFlag = iota
	TestOff
	TestOn
)

// FunnelEvent is the event name the tracking API expects for funnel steps.
const FunnelEvent = "mp_funnel"

const (
	defaultHost           = "api.mixpanel.com"
	defaultTrackEndpoint  = "/track/"
	defaultEngageEndpoint = "/engage/"
	defaultTimeout        = 5 * time.Second
)

// Client submits tracking requests to the mixpanel API.
type Client struct {
	token          string
	host           string
	trackEndpoint  string
	engageEndpoint string
	testOnly       bool
	verbose        bool

	http *http.Client
}

// NewClient returns a client created using the config, filling in API
// defaults for any unset values.
func NewClient(config conf.MixpanelConf) *Client {
	host := config.Host
	if host == "" {
		host = defaultHost
	}

	track := config.TrackEndpoint
	if track == "" {
		track = defaultTrackEndpoint
	}

	engage := config.EngageEndpoint
	if engage == "" {
		engage = defaultEngageEndpoint
	}

	timeout := defaultTimeout
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	return &Client{
		token:          config.Token,
		host:           host,
		trackEndpoint:  track,
		engageEndpoint: engage,
		testOnly:       config.TestOnly,
		verbose:        config.Verbose,
		http:           &http.Client{Timeout: timeout},
	}
}

// Track submits a single event. It returns whether the service recorded the
// event, false without an error meaning the service declined it.
func (c *Client) Track(event string, properties Properties, flag TestFlag) (bool, error) {
	params, err := BuildParams(c.EventRecord(event, properties), c.IsTest(flag))
	if err != nil {
		return false, err
	}

	return c.submit(c.trackEndpoint, params)
}

// People submits a people-profile update.
func (c *Client) People(op Operation, properties Properties, flag TestFlag) (bool, error) {
	record, err := c.PeopleRecord(op, properties, time.Now())
	if err != nil {
		return false, err
	}

	params, err := BuildParams(record, c.IsTest(flag))
	if err != nil {
		return false, err
	}

	return c.submit(c.engageEndpoint, params)
}

// Funnel submits a funnel-step event.
func (c *Client) Funnel(funnel, step, goal string, properties Properties, flag TestFlag) (bool, error) {
	props, err := FunnelProperties(properties, funnel, step, goal)
	if err != nil {
		return false, err
	}

	return c.Track(FunnelEvent, props, flag)
}

// IsTest resolves the test marker for a submission. An explicit flag always
// wins, otherwise the client's test-only setting decides.
func (c *Client) IsTest(flag TestFlag) int {
	switch flag {
	case TestOn:
		return 1
	case TestOff:
		return 0
	}

	if c.testOnly {
		return 1
	}

	return 0
}

func (c *Client) submit(endpoint, params string) (bool, error) {
	url := "http://" + c.host + endpoint + "?" + params

	if c.verbose {
		log.Printf("mixpanel request: %s", url)
	}

	resp, err := c.http.Get(url)
	if err != nil {
		return false, &RetryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, &RetryError{Err: fmt.Errorf("unexpected status %q", resp.Status)}
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return false, &RetryError{Err: err}
	}

	switch strings.TrimSpace(string(body)) {
	case "1":
		return true, nil
	case "0":
		// The service declined the submission, commonly an event timestamp
		// outside its acceptance window.
		return false, nil
	}

	return false, fmt.Errorf("unexpected response body %q", body)
}
