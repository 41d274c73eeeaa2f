package httpclient

import (
	"net/url"
	"strings"
	"time"
)

// Descriptor describes one logical request. It is owned by that request for its whole
// life, including every retry attempt.
type Descriptor struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Headers     map[string]string
	// Timeout bounds one attempt; zero means the client default.
	Timeout time.Duration
	// Raw skips envelope inspection and returns the payload untouched (PDF downloads).
	Raw bool
	// Upload marks multipart payloads, which get the longer upload timeout by default.
	Upload bool

	RequestID string

	retryBudget int
	retryDelay  time.Duration
	retryCount  int
}

// Attempts returns how many times the request has been issued so far.
func (d *Descriptor) Attempts() int {
	return d.retryCount + 1
}

// RetryCount is the number of re-issues performed.
func (d *Descriptor) RetryCount() int {
	return d.retryCount
}

// SetHeader sets a header for every subsequent attempt.
func (d *Descriptor) SetHeader(key, value string) {
	if d.Headers == nil {
		d.Headers = make(map[string]string)
	}
	d.Headers[key] = value
}

func (d *Descriptor) DelHeader(key string) {
	delete(d.Headers, key)
}

// URL joins the base URL, path and encoded query.
func (d *Descriptor) URL(baseURL string) string {
	path := d.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := strings.TrimRight(baseURL, "/") + path
	if len(d.Query) > 0 {
		target += "?" + d.Query.Encode()
	}
	return target
}

func (d *Descriptor) String() string {
	return d.Method + " " + d.Path
}
