package httpx

import (
	"net/http"

	"github.com/ihildebrandt/fuelgo/pkg/app"
	"github.com/ihildebrandt/fuelgo/pkg/input"
)

// NetHTTPHandler serves an application over net/http.
func NetHTTPHandler(a *app.Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in := input.FromNetHTTP(r)
		req := a.NewRequest(r.URL.Path, app.WithInput(in), app.WithMethod(r.Method))

		out := execute(a, req)
		for k, vals := range out.header {
			for _, v := range vals {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(out.status)
		_, _ = w.Write([]byte(out.content))

		// ensure body is closed if the controller did not consume it
		if in.Body() != nil {
			_ = in.Body().Close()
		}
	})
}
