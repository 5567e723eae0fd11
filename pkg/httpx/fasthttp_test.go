package httpx

import (
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"
)

func TestFastHTTPServesResponse(t *testing.T) {
	h := FastHTTPHandler(demoApp(t))

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/hello/fast")
	h(&ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status %d", ctx.Response.StatusCode())
	}
	if string(ctx.Response.Body()) != "hello fast" {
		t.Fatalf("body %q", ctx.Response.Body())
	}
}

func TestFastHTTPNotFound(t *testing.T) {
	h := FastHTTPHandler(demoApp(t))

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/missing")
	h(&ctx)

	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Fatalf("status %d", ctx.Response.StatusCode())
	}
}

func TestFastHTTPQueryArgsCopied(t *testing.T) {
	rtrApp := demoApp(t)
	h := FastHTTPHandler(rtrApp)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/?page=3")
	h(&ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status %d", ctx.Response.StatusCode())
	}
}
