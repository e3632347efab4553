package portal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uphttp "github.com/abdul-hamid-achik/userportal/packages/http"
)

type recorded struct {
	method string
	uri    string
	auth   string
	accept string
	body   string
}

func recordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{
			method: r.Method,
			uri:    r.URL.RequestURI(),
			auth:   r.Header.Get("Authorization"),
			accept: r.Header.Get("Accept"),
			body:   string(body),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestDispatcher_PatchSendsOneRequest(t *testing.T) {
	server, calls := recordingServer(t, http.StatusOK, `{"ok":true}`)

	d := NewDispatcher(uphttp.NewClient())
	res := d.Submit(context.Background(), ActionPatchUser, Target{BaseURL: server.URL, Token: "abc123"}, Values{
		FieldUserID: "42",
		FieldName:   "Alice",
	})

	require.NoError(t, res.Err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "PATCH", call.method)
	assert.Equal(t, "/user", call.uri)
	assert.Equal(t, "Bearer abc123", call.auth)
	assert.Equal(t, "application/json", call.accept)
	assert.JSONEq(t, `{"user_id":"42","name":"Alice"}`, call.body)
	assert.Equal(t, 200, res.Response.StatusCode)
	assert.Equal(t, server.URL+"/user", res.URL)
}

func TestDispatcher_GetWithoutAuth(t *testing.T) {
	server, calls := recordingServer(t, http.StatusNotFound, `{"detail":"User not found"}`)

	d := NewDispatcher(nil)
	res := d.Submit(context.Background(), ActionGetUser, Target{BaseURL: server.URL, Token: "abc123"}, Values{})

	require.NoError(t, res.Err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "GET", (*calls)[0].method)
	assert.Equal(t, "/user?user_id=", (*calls)[0].uri)
	assert.Empty(t, (*calls)[0].auth)
	assert.Equal(t, 404, res.Response.StatusCode)
}

func TestDispatcher_UnreachableIsResult(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	d := NewDispatcher(uphttp.NewClient(uphttp.WithTimeout(time.Second)))
	res := d.Submit(context.Background(), ActionAddUser, Target{BaseURL: url}, Values{FieldName: "x"})

	assert.True(t, res.Failed())
	assert.Nil(t, res.Response)
}

func TestDispatcher_EmptyBaseURLIsResult(t *testing.T) {
	d := NewDispatcher(nil)
	res := d.Submit(context.Background(), ActionGetUser, Target{}, Values{FieldUserID: "1"})

	require.True(t, res.Failed())
	assert.Contains(t, res.Err.Error(), "no http or https scheme")
}

func TestDispatcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	d := NewDispatcher(uphttp.NewClient(uphttp.WithTimeout(50 * time.Millisecond)))
	res := d.Submit(context.Background(), ActionGetUser, Target{BaseURL: server.URL}, Values{FieldUserID: "1"})
	assert.True(t, res.Failed())
}

type slowDoer struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *slowDoer) Do(ctx context.Context, req *uphttp.Request) (*uphttp.Response, error) {
	n := s.inFlight.Add(1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	s.inFlight.Add(-1)
	return &uphttp.Response{StatusCode: 200}, nil
}

func TestDispatcher_SerializesSubmissions(t *testing.T) {
	doer := &slowDoer{}
	d := NewDispatcher(doer)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Submit(context.Background(), ActionGetUser, Target{BaseURL: "http://h"}, Values{})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), doer.maxSeen.Load())
}
