package portal

import (
	"context"
	"sync"
	"time"

	uphttp "github.com/abdul-hamid-achik/userportal/packages/http"
)

// Doer sends one request. *http.Client from this module satisfies it.
type Doer interface {
	Do(ctx context.Context, req *uphttp.Request) (*uphttp.Response, error)
}

// Result is the outcome of one submission. Exactly one of Response and Err
// is set.
type Result struct {
	Action   Action
	Method   string
	URL      string
	Response *uphttp.Response
	Err      error
	Duration time.Duration
}

// Failed reports whether no response was received.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Dispatcher issues one HTTP call per Submit. Calls through the same
// Dispatcher never overlap.
type Dispatcher struct {
	client Doer
	mu     sync.Mutex
}

func NewDispatcher(client Doer) *Dispatcher {
	if client == nil {
		client = uphttp.NewClient()
	}
	return &Dispatcher{client: client}
}

// SetClient replaces the client used for later submissions. It waits for
// an in-flight submission to finish.
func (d *Dispatcher) SetClient(client Doer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.client = client
}

// Submit builds and sends the request for action. Every failure, including
// a malformed base URL, is reported on the Result rather than returned.
func (d *Dispatcher) Submit(ctx context.Context, action Action, target Target, values Values) *Result {
	res := &Result{Action: action}

	req, err := Build(action, target, values)
	if err != nil {
		res.Err = err
		return res
	}
	res.Method = req.Method
	res.URL = req.BuildURL()

	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	resp, err := d.client.Do(ctx, req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Response = resp
	return res
}
