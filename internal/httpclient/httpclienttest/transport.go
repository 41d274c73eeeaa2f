// Package httpclienttest provides a scripted backend for exercising the client core and
// everything built on it without a network.
package httpclienttest

import (
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/warehouse-console/internal/httpclient"
)

// BaseURL is the backend root used by Client.
const BaseURL = "http://backend.test/api/v1"

// Reply is one canned answer. A non-nil Err simulates a transport failure.
type Reply struct {
	Status      int
	ContentType string
	Body        string
	Err         error
}

// JSON answers 200 with a JSON body.
func JSON(body string) Reply {
	return Reply{Status: fasthttp.StatusOK, ContentType: "application/json", Body: body}
}

// Status answers with the given status and a JSON detail body.
func Status(status int, detail string) Reply {
	return Reply{Status: status, ContentType: "application/json", Body: `{"detail":"` + detail + `"}`}
}

// Request is what the backend saw.
type Request struct {
	Method        string
	Path          string
	Query         string
	Body          string
	ContentType   string
	Authorization string
	RequestID     string
}

// Transport routes by method and path. Replies for a route are consumed in order and the
// last one repeats.
type Transport struct {
	mu       sync.Mutex
	routes   map[string][]Reply
	served   map[string]int
	requests []Request
}

func New() *Transport {
	return &Transport{routes: make(map[string][]Reply), served: make(map[string]int)}
}

// On scripts replies for method and path (path includes the /api/v1 prefix).
func (t *Transport) On(method, path string, replies ...Reply) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := method + " " + path
	t.routes[key] = replies
	t.served[key] = 0
	return t
}

func (t *Transport) DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, _ time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := Request{
		Method:        string(req.Header.Method()),
		Path:          string(req.URI().Path()),
		Query:         string(req.URI().QueryString()),
		Body:          string(req.Body()),
		ContentType:   string(req.Header.ContentType()),
		Authorization: string(req.Header.Peek("Authorization")),
		RequestID:     string(req.Header.Peek("X-Request-ID")),
	}
	t.requests = append(t.requests, r)

	key := r.Method + " " + r.Path
	replies, ok := t.routes[key]
	if !ok || len(replies) == 0 {
		resp.SetStatusCode(fasthttp.StatusNotFound)
		resp.Header.SetContentType("application/json")
		resp.SetBodyString(`{"detail":"Not Found"}`)
		return nil
	}
	idx := t.served[key]
	if idx >= len(replies) {
		idx = len(replies) - 1
	}
	t.served[key]++

	reply := replies[idx]
	if reply.Err != nil {
		return reply.Err
	}
	status := reply.Status
	if status == 0 {
		status = fasthttp.StatusOK
	}
	resp.SetStatusCode(status)
	if reply.ContentType != "" {
		resp.Header.SetContentType(reply.ContentType)
	}
	resp.SetBodyString(reply.Body)
	return nil
}

// Requests returns every request seen so far.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.requests...)
}

// Count returns how many times method and path were requested.
func (t *Transport) Count(method, path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, r := range t.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request, or the zero Request.
func (t *Transport) Last() Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return Request{}
	}
	return t.requests[len(t.requests)-1]
}

// Client builds a client over t with no retry delay. session may be nil.
func Client(t *Transport, session httpclient.Session, opts ...httpclient.Option) *httpclient.Client {
	cfg := httpclient.Config{
		BaseURL:     BaseURL,
		Timeout:     time.Second,
		RetryBudget: 3,
		RetryDelay:  time.Millisecond,
	}
	return httpclient.New(cfg, session, append([]httpclient.Option{httpclient.WithTransport(t)}, opts...)...)
}
