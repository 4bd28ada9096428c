package tracking

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	httputil "github.com/styleseat/mixpanel-celery/pkg/http"
	"github.com/styleseat/mixpanel-celery/pkg/mixpanel"
)

// Endpoint accepts tracking requests over HTTP and enqueues them for
// background delivery.
type Endpoint struct {
	queue *Queue
}

func NewEndpoint(queue *Queue) *Endpoint {
	return &Endpoint{queue: queue}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/track", e.track).Methods("POST")
	r.HandleFunc("/engage", e.engage).Methods("POST")
	r.HandleFunc("/funnel", e.funnel).Methods("POST")

	return r
}

type trackRequest struct {
	Event      string              `json:"event"`
	Properties mixpanel.Properties `json:"properties"`
	Test       *bool               `json:"test"`
}

func (e *Endpoint) track(w http.ResponseWriter, r *http.Request) {
	req := &trackRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request body")
		return
	}

	if req.Event == "" {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeMissingParameter, "missing event")
		return
	}

	e.enqueue(w, NewEventJob(req.Event, req.Properties, testFlag(req.Test)))
}

type engageRequest struct {
	Operation  mixpanel.Operation  `json:"operation"`
	Properties mixpanel.Properties `json:"properties"`
	Test       *bool               `json:"test"`
}

func (e *Endpoint) engage(w http.ResponseWriter, r *http.Request) {
	req := &engageRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request body")
		return
	}

	if req.Operation != mixpanel.OperationSet && req.Operation != mixpanel.OperationTrackCharge {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeMissingParameter, "unknown operation")
		return
	}

	e.enqueue(w, NewPeopleJob(req.Operation, req.Properties, testFlag(req.Test)))
}

type funnelRequest struct {
	Funnel     string              `json:"funnel"`
	Step       string              `json:"step"`
	Goal       string              `json:"goal"`
	Properties mixpanel.Properties `json:"properties"`
	Test       *bool               `json:"test"`
}

func (e *Endpoint) funnel(w http.ResponseWriter, r *http.Request) {
	req := &funnelRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request body")
		return
	}

	if req.Funnel == "" || req.Step == "" || req.Goal == "" {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeMissingParameter, "missing funnel, step or goal")
		return
	}

	// Caller error, reject here instead of failing the job later.
	_, err = mixpanel.FunnelProperties(req.Properties, req.Funnel, req.Step, req.Goal)
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidFunnelProperty, err.Error())
		return
	}

	e.enqueue(w, NewFunnelJob(req.Funnel, req.Step, req.Goal, req.Properties, testFlag(req.Test)))
}

func (e *Endpoint) enqueue(w http.ResponseWriter, job *Job) {
	err := e.queue.Push(job)
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToEnqueue, "failed to enqueue")
		return
	}

	err = httputil.JsonEncode(w, struct {
		ID string `json:"id"`
	}{ID: job.ID})
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToEnqueue, "failed to encode")
	}
}

func testFlag(test *bool) mixpanel.TestFlag {
	if test == nil {
		return mixpanel.TestDefault
	}

	if *test {
		return mixpanel.TestOn
	}

	return mixpanel.TestOff
}
