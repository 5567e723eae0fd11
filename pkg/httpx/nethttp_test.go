package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihildebrandt/fuelgo/pkg/app"
	"github.com/ihildebrandt/fuelgo/pkg/response"
	"github.com/ihildebrandt/fuelgo/pkg/router"
	"github.com/ihildebrandt/fuelgo/pkg/view"
)

func demoApp(t *testing.T) *app.Application {
	t.Helper()
	rtr := router.NewMux()
	a := app.New("demo", rtr)

	rtr.GET("/", func(ctx context.Context, r *app.Request) (any, error) {
		return response.New("home"), nil
	})
	rtr.GET("/hello/{name}", func(ctx context.Context, r *app.Request) (any, error) {
		v, err := view.Parse("hello", `hello {{.name}}`)
		if err != nil {
			return nil, err
		}
		return response.New(v.Set("name", r.ParamOr("name", "?"))), nil
	})
	rtr.GET("/away", func(ctx context.Context, r *app.Request) (any, error) {
		return nil, app.NewRedirect("/")
	})
	rtr.GET("/broken", func(ctx context.Context, r *app.Request) (any, error) {
		return 17, nil
	})
	rtr.GET("/header", func(ctx context.Context, r *app.Request) (any, error) {
		resp := response.New("with header")
		resp.Header().Set("X-Custom", "v1")
		return resp, nil
	})
	return a
}

func TestNetHTTPServesResponse(t *testing.T) {
	srv := httptest.NewServer(NetHTTPHandler(demoApp(t)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestNetHTTPRendersView(t *testing.T) {
	h := NetHTTPHandler(demoApp(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/hello/gopher", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() != "hello gopher" {
		t.Fatalf("body %q", rec.Body.String())
	}
}

func TestNetHTTPRedirect(t *testing.T) {
	h := NetHTTPHandler(demoApp(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/away", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Header().Get("Location") != "/" {
		t.Fatalf("location %q", rec.Header().Get("Location"))
	}
}

func TestNetHTTPNotFound(t *testing.T) {
	h := NetHTTPHandler(demoApp(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"not found"}` {
		t.Fatalf("body %q", rec.Body.String())
	}
}

func TestNetHTTPInternalError(t *testing.T) {
	h := NetHTTPHandler(demoApp(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/broken", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestNetHTTPCopiesResponseHeaders(t *testing.T) {
	h := NetHTTPHandler(demoApp(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/header", nil))

	if rec.Header().Get("X-Custom") != "v1" {
		t.Fatalf("response header not propagated")
	}
}
