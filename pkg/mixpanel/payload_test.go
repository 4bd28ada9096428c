package mixpanel_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/styleseat/mixpanel-celery/pkg/conf"
	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
)

func TestEventRecord(t *testing.T) {
	client := mixpanel.NewClient(conf.MixpanelConf{Token: "bar"})

	var tests = []struct {
		name       string
		properties mixpanel.Properties
		expected   string
	}{
		{
			"nil properties",
			nil,
			"bar",
		},
		{
			"empty properties",
			mixpanel.Properties{},
			"bar",
		},
		{
			"explicit token",
			mixpanel.Properties{"token": "foo"},
			"foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := client.EventRecord("event_foo", tt.properties)

			props, ok := record["properties"].(mixpanel.Properties)
			if !ok {
				t.Fatal("record has no properties")
			}

			if props["token"] != tt.expected {
				t.Fatalf("token %v does not match %v", props["token"], tt.expected)
			}
		})
	}
}

func TestIsTest(t *testing.T) {
	var tests = []struct {
		testOnly bool
		flag     mixpanel.TestFlag
		expected int
	}{
		{true, mixpanel.TestDefault, 1},
		{true, mixpanel.TestOff, 0},
		{true, mixpanel.TestOn, 1},
		{false, mixpanel.TestDefault, 0},
		{false, mixpanel.TestOff, 0},
		{false, mixpanel.TestOn, 1},
	}

	for _, tt := range tests {
		client := mixpanel.NewClient(conf.MixpanelConf{TestOnly: tt.testOnly})

		if got := client.IsTest(tt.flag); got != tt.expected {
			t.Fatalf("test marker %d does not match %d for flag %d", got, tt.expected, tt.flag)
		}
	}
}

func TestBuildParams(t *testing.T) {
	client := mixpanel.NewClient(conf.MixpanelConf{Token: "testtoken"})
	record := client.EventRecord("foo_event", mixpanel.Properties{"token": "testtoken"})

	expected := encodeParams(t, map[string]interface{}{
		"event":      "foo_event",
		"properties": map[string]interface{}{"token": "testtoken"},
	}, 1)

	params, err := mixpanel.BuildParams(record, 1)
	if err != nil {
		t.Fatal(err)
	}

	if params != expected {
		t.Fatalf("params %s do not match %s", params, expected)
	}

	again, err := mixpanel.BuildParams(record, 1)
	if err != nil {
		t.Fatal(err)
	}

	if again != params {
		t.Fatal("params are not deterministic")
	}
}

func TestPeopleRecord_Set(t *testing.T) {
	client := mixpanel.NewClient(conf.MixpanelConf{Token: "default"})

	properties := mixpanel.Properties{
		"stuff":       "thing",
		"blue":        "green",
		"distinct_id": "test_id",
		"token":       "testtoken",
		"ip":          "MY.IP.ADD.RESS",
	}

	record, err := client.PeopleRecord(mixpanel.OperationSet, properties, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]interface{}{
		"$distinct_id": "test_id",
		"$set": map[string]interface{}{
			"stuff": "thing",
			"blue":  "green",
		},
		"$token": "testtoken",
		"$ip":    "MY.IP.ADD.RESS",
	}

	got, err := mixpanel.BuildParams(record, 1)
	if err != nil {
		t.Fatal(err)
	}

	if got != encodeParams(t, expected, 1) {
		t.Fatalf("record %v does not match %v", record, expected)
	}
}

func TestPeopleRecord_TrackCharge(t *testing.T) {
	client := mixpanel.NewClient(conf.MixpanelConf{Token: "default"})
	now := time.Now()

	properties := mixpanel.Properties{
		"amount":      11.77,
		"distinct_id": "test_id",
		"token":       "testtoken",
	}

	record, err := client.PeopleRecord(mixpanel.OperationTrackCharge, properties, now)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]interface{}{
		"$append": map[string]interface{}{
			"$transactions": map[string]interface{}{
				"$amount": 11.77,
				"$time":   now.Format(time.RFC3339),
			},
		},
		"$distinct_id": "test_id",
		"$token":       "testtoken",
	}

	got, err := mixpanel.BuildParams(record, 1)
	if err != nil {
		t.Fatal(err)
	}

	if got != encodeParams(t, expected, 1) {
		t.Fatalf("record %v does not match %v", record, expected)
	}
}

func TestPeopleRecord_UnknownOperation(t *testing.T) {
	client := mixpanel.NewClient(conf.MixpanelConf{Token: "default"})

	_, err := client.PeopleRecord(mixpanel.Operation("wow"), mixpanel.Properties{}, time.Now())
	if err == nil {
		t.Fatal("expected an error for an unknown operation")
	}
}

func TestFunnelProperties_Validation(t *testing.T) {
	var tests = []struct {
		name       string
		properties mixpanel.Properties
		err        bool
	}{
		{
			"neither",
			mixpanel.Properties{},
			true,
		},
		{
			"only distinct_id",
			mixpanel.Properties{"distinct_id": "test_distinct_id"},
			false,
		},
		{
			"only ip",
			mixpanel.Properties{"ip": "some_ip"},
			true,
		},
		{
			"both",
			mixpanel.Properties{"distinct_id": "test_distinct_id", "ip": "some_ip"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mixpanel.FunnelProperties(tt.properties, "test_funnel", "test_step", "test_goal")

			if tt.err {
				if !errors.Is(err, mixpanel.ErrInvalidFunnelProperties) {
					t.Fatalf("unexpected err %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected err %v", err)
			}
		})
	}
}

func TestFunnelProperties(t *testing.T) {
	properties := mixpanel.Properties{"distinct_id": "test_distinct_id"}

	props, err := mixpanel.FunnelProperties(properties, "test_funnel", "test_step", "test_goal")
	if err != nil {
		t.Fatal(err)
	}

	if props["funnel"] != "test_funnel" || props["step"] != "test_step" || props["goal"] != "test_goal" {
		t.Fatalf("funnel markers missing from %v", props)
	}

	if _, ok := properties["funnel"]; ok {
		t.Fatal("input properties were modified")
	}
}

func encodeParams(t *testing.T, record interface{}, test int) string {
	t.Helper()

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatal(err)
	}

	values := url.Values{
		"data": []string{base64.StdEncoding.EncodeToString(data)},
		"test": []string{strconv.Itoa(test)},
	}

	return values.Encode()
}
