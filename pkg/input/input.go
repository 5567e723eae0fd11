// Package input abstracts the payload of an incoming request so the
// framework core never touches a transport object directly. Adapters build
// an Input from net/http or fasthttp; tests and sub-requests build one
// in-memory.
package input

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
)

// Input is the request payload abstraction consumed by the framework.
type Input interface {
	Method() string
	URI() string
	Query() url.Values
	Form() url.Values
	Header() http.Header
	Body() io.ReadCloser
	RemoteAddr() string
	Context() context.Context
}

// Values is the in-memory Input implementation.
type Values struct {
	method string
	uri    string
	query  url.Values
	form   url.Values
	header http.Header
	body   io.ReadCloser
	remote string
	ctx    context.Context
}

// Option mutates a Values under construction.
type Option func(*Values)

// WithQuery sets the query string values.
func WithQuery(q url.Values) Option { return func(v *Values) { v.query = q } }

// WithForm sets the form (POST body) values.
func WithForm(f url.Values) Option { return func(v *Values) { v.form = f } }

// WithHeader sets the request headers.
func WithHeader(h http.Header) Option { return func(v *Values) { v.header = h } }

// WithBody sets the raw request body.
func WithBody(b io.ReadCloser) Option { return func(v *Values) { v.body = b } }

// WithBodyString sets the raw request body from a string.
func WithBodyString(s string) Option {
	return func(v *Values) { v.body = io.NopCloser(bytes.NewReader([]byte(s))) }
}

// WithRemoteAddr sets the client address.
func WithRemoteAddr(a string) Option { return func(v *Values) { v.remote = a } }

// WithContext sets the request context.
func WithContext(ctx context.Context) Option { return func(v *Values) { v.ctx = ctx } }

// New constructs an in-memory Input for the given method and URI.
func New(method, uri string, opts ...Option) *Values {
	v := &Values{
		method: method,
		uri:    uri,
		query:  url.Values{},
		form:   url.Values{},
		header: make(http.Header),
		body:   io.NopCloser(bytes.NewReader(nil)),
		remote: "",
		ctx:    context.Background(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Empty returns an Input carrying no payload, used as the default for
// requests constructed without one.
func Empty() *Values { return New(http.MethodGet, "/") }

// FromNetHTTP builds an Input from a standard net/http request.
func FromNetHTTP(r *http.Request) *Values {
	form := url.Values{}
	// ParseForm mutates r; read form values only for form content types so
	// other bodies stay consumable by the controller.
	if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
		ct := r.Header.Get("Content-Type")
		if ct == "application/x-www-form-urlencoded" {
			if err := r.ParseForm(); err == nil {
				form = r.PostForm
			}
		}
	}
	return New(r.Method, r.URL.Path,
		WithQuery(r.URL.Query()),
		WithForm(form),
		WithHeader(r.Header.Clone()),
		WithBody(r.Body),
		WithRemoteAddr(r.RemoteAddr),
		WithContext(r.Context()),
	)
}

func (v *Values) Method() string           { return v.method }
func (v *Values) URI() string              { return v.uri }
func (v *Values) Query() url.Values        { return v.query }
func (v *Values) Form() url.Values         { return v.form }
func (v *Values) Header() http.Header      { return v.header }
func (v *Values) Body() io.ReadCloser      { return v.body }
func (v *Values) RemoteAddr() string       { return v.remote }
func (v *Values) Context() context.Context { return v.ctx }
