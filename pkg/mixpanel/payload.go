package mixpanel

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// EventRecord builds the serializable record for a plain event. An explicit
// token property wins over the client default.
func (c *Client) EventRecord(event string, properties Properties) map[string]interface{} {
	return map[string]interface{}{
		"event":      event,
		"properties": c.prepare(properties),
	}
}

// PeopleRecord builds the serializable record for a people-profile update.
// The reserved token, distinct_id and ip properties move to their prefixed
// form, everything else lands under the operation envelope.
func (c *Client) PeopleRecord(op Operation, properties Properties, now time.Time) (map[string]interface{}, error) {
	props := c.prepare(properties)

	record := map[string]interface{}{
		"$token": props["token"],
	}
	delete(props, "token")

	if id, ok := props["distinct_id"]; ok {
		record["$distinct_id"] = id
		delete(props, "distinct_id")
	}

	if ip, ok := props["ip"]; ok {
		record["$ip"] = ip
		delete(props, "ip")
	}

	switch op {
	case OperationSet:
		record["$set"] = map[string]interface{}(props)
	case OperationTrackCharge:
		charge := map[string]interface{}{
			"$amount": props["amount"],
			"$time":   now.Format(time.RFC3339),
		}
		delete(props, "amount")

		if ts, ok := props["time"]; ok {
			charge["$time"] = ts
			delete(props, "time")
		}

		record["$append"] = map[string]interface{}{"$transactions": charge}
	default:
		return nil, fmt.Errorf("unknown people operation %q", op)
	}

	return record, nil
}

// FunnelProperties validates properties for a funnel-step event and injects
// the funnel, step and goal markers. A funnel event without a distinct_id
// cannot be attributed and is rejected.
func FunnelProperties(properties Properties, funnel, step, goal string) (Properties, error) {
	props := Properties{}
	for k, v := range properties {
		props[k] = v
	}

	if _, ok := props["distinct_id"]; !ok {
		return nil, ErrInvalidFunnelProperties
	}

	props["funnel"] = funnel
	props["step"] = step
	props["goal"] = goal

	return props, nil
}

// BuildParams serializes a record into the url-encoded form the tracking API
// expects, a base64 data blob plus the test marker. Output is deterministic
// for a given record.
func BuildParams(record interface{}, test int) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	values := url.Values{
		"data": []string{base64.StdEncoding.EncodeToString(data)},
		"test": []string{strconv.Itoa(test)},
	}

	return values.Encode(), nil
}

// prepare copies the properties and resolves the token against the client
// default. A nil mapping is treated as empty.
func (c *Client) prepare(properties Properties) Properties {
	props := Properties{}
	for k, v := range properties {
		props[k] = v
	}

	if _, ok := props["token"]; !ok {
		props["token"] = c.token
	}

	return props
}
