package input

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	v := New("GET", "/path")
	if v.Method() != "GET" || v.URI() != "/path" {
		t.Fatalf("method/uri wrong: %s %s", v.Method(), v.URI())
	}
	if v.Query() == nil || v.Form() == nil || v.Header() == nil {
		t.Fatalf("collections not initialized")
	}
	if v.Context() == nil {
		t.Fatalf("context not initialized")
	}
	b, err := io.ReadAll(v.Body())
	if err != nil || len(b) != 0 {
		t.Fatalf("default body should be empty, got %q err %v", b, err)
	}
}

func TestOptions(t *testing.T) {
	q := url.Values{"a": {"1"}}
	v := New("POST", "/x",
		WithQuery(q),
		WithBodyString("payload"),
		WithRemoteAddr("10.0.0.1:1234"),
	)
	if v.Query().Get("a") != "1" {
		t.Fatalf("query option lost")
	}
	b, _ := io.ReadAll(v.Body())
	if string(b) != "payload" {
		t.Fatalf("body option lost: %q", b)
	}
	if v.RemoteAddr() != "10.0.0.1:1234" {
		t.Fatalf("remote addr lost")
	}
}

func TestFromNetHTTP(t *testing.T) {
	r := httptest.NewRequest("GET", "/things?page=2", nil)
	r.Header.Set("X-Test", "yes")
	v := FromNetHTTP(r)
	if v.Method() != "GET" || v.URI() != "/things" {
		t.Fatalf("method/uri wrong: %s %s", v.Method(), v.URI())
	}
	if v.Query().Get("page") != "2" {
		t.Fatalf("query not parsed")
	}
	if v.Header().Get("X-Test") != "yes" {
		t.Fatalf("headers not copied")
	}
}

func TestFromNetHTTPFormBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/submit", strings.NewReader("name=fuel&tag=go"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	v := FromNetHTTP(r)
	if v.Form().Get("name") != "fuel" || v.Form().Get("tag") != "go" {
		t.Fatalf("form not parsed: %v", v.Form())
	}
}

func TestFromNetHTTPNonFormBodyStaysReadable(t *testing.T) {
	r := httptest.NewRequest("POST", "/submit", strings.NewReader(`{"k":"v"}`))
	r.Header.Set("Content-Type", "application/json")
	v := FromNetHTTP(r)
	b, err := io.ReadAll(v.Body())
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(b) != `{"k":"v"}` {
		t.Fatalf("json body consumed by form parsing: %q", b)
	}
}
