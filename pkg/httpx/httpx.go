// Package httpx binds an application to real HTTP transports. Each adapter
// builds an input from the transport request, executes a framework request
// against the application, and writes the normalized response back.
package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/ihildebrandt/fuelgo/pkg/app"
	"github.com/ihildebrandt/fuelgo/pkg/logger"
	"github.com/ihildebrandt/fuelgo/pkg/metrics"
	"github.com/ihildebrandt/fuelgo/pkg/router"
)

// outcome is the transport-neutral result of executing one request.
type outcome struct {
	status  int
	header  http.Header
	content string
}

// execute runs one framework request and flattens it into an outcome,
// mapping framework errors to HTTP statuses in JSON error bodies.
func execute(a *app.Application, req *app.Request) outcome {
	start := time.Now()
	metrics.Enter(a.Name())
	// Leave must run even when a controller panic unwinds through Execute;
	// the transport may recover and keep serving, and the gauge has to
	// stay paired with Enter.
	defer metrics.Leave(a.Name())
	r, err := req.Execute(req.Input().Context())

	var out outcome
	switch {
	case err == nil:
		resp := r.Response()
		content, cerr := resp.Content()
		if cerr != nil {
			logger.Error("response_content_failed", "app", a.Name(), "uri", req.URI(), "error", cerr)
			out = outcome{status: http.StatusInternalServerError, header: make(http.Header), content: `{"error":"internal error"}`}
			out.header.Set("Content-Type", "application/json")
			break
		}
		out = outcome{status: resp.Status(), header: resp.Header(), content: content}
	case errors.Is(err, router.ErrNoRoute):
		out = outcome{status: http.StatusNotFound, header: make(http.Header), content: `{"error":"not found"}`}
		out.header.Set("Content-Type", "application/json")
	default:
		logger.Error("request_failed", "app", a.Name(), "method", req.Method(), "uri", req.URI(), "error", err)
		out = outcome{status: http.StatusInternalServerError, header: make(http.Header), content: `{"error":"internal error"}`}
		out.header.Set("Content-Type", "application/json")
	}

	metrics.Observe(a.Name(), req.Method(), out.status, time.Since(start))
	return out
}
