package testHelpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// RecordedRequest is what the fake provider saw for one call
type RecordedRequest struct {
	Host     string // host the client aimed at, before rewriting
	Path     string
	RawQuery string
	Header   http.Header
}

// Responder answers one request with a status code and a body
type Responder func(r *http.Request) (int, string)

// FakeProvider is a local stand-in for the api-sports hosts. Use Client so
// requests to any https://host/... end up here.
type FakeProvider struct {
	Server    *httptest.Server
	responder Responder

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeProvider starts a server answering with responder. Close it when done.
func NewFakeProvider(responder Responder) *FakeProvider {
	fp := &FakeProvider{responder: responder}
	fp.Server = httptest.NewServer(http.HandlerFunc(fp.serve))
	return fp
}

func (fp *FakeProvider) serve(w http.ResponseWriter, r *http.Request) {
	fp.mu.Lock()
	fp.requests = append(fp.requests, RecordedRequest{
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
	})
	fp.mu.Unlock()

	status, body := fp.responder(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Requests returns a copy of the requests received so far
func (fp *FakeProvider) Requests() []RecordedRequest {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	out := make([]RecordedRequest, len(fp.requests))
	copy(out, fp.requests)
	return out
}

// Client returns an http client that sends every request to the fake
// provider while keeping the original host in the Host header.
func (fp *FakeProvider) Client() *http.Client {
	target, _ := url.Parse(fp.Server.URL)
	return &http.Client{Transport: rewriteTransport{target: target, base: http.DefaultTransport}}
}

// Close shuts the server down
func (fp *FakeProvider) Close() {
	fp.Server.Close()
}

type rewriteTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Host = req.URL.Host
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	return t.base.RoundTrip(out)
}

// Envelope renders an api-sports style body. errs is raw JSON for the
// errors member; items are raw JSON objects.
func Envelope(errs string, items ...string) string {
	if errs == "" {
		errs = "[]"
	}
	return fmt.Sprintf(`{"get":"fixtures","errors":%s,"results":%d,"response":[%s]}`, errs, len(items), strings.Join(items, ","))
}
