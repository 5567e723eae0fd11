package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/ihildebrandt/fuelgo/pkg/app"
	"github.com/ihildebrandt/fuelgo/pkg/input"
)

// FastHTTPHandler serves an application over fasthttp.
func FastHTTPHandler(a *app.Application) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		cctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		in := fromFastHTTP(ctx, cctx)
		req := a.NewRequest(string(ctx.Path()), app.WithInput(in), app.WithMethod(string(ctx.Method())))

		out := execute(a, req)
		for k, vals := range out.header {
			for _, v := range vals {
				ctx.Response.Header.Add(k, v)
			}
		}
		ctx.SetStatusCode(out.status)
		ctx.SetBodyString(out.content)
	}
}

// fromFastHTTP builds a framework input from a fasthttp request context.
// Header and arg values are copied out because fasthttp reuses its buffers.
func fromFastHTTP(ctx *fasthttp.RequestCtx, cctx context.Context) *input.Values {
	hdr := make(http.Header)
	ctx.Request.Header.VisitAll(func(k, v []byte) {
		key := string(k)
		hdr[key] = append(hdr[key], string(v))
	})

	query := url.Values{}
	ctx.QueryArgs().VisitAll(func(k, v []byte) {
		query.Add(string(k), string(v))
	})

	form := url.Values{}
	ctx.PostArgs().VisitAll(func(k, v []byte) {
		form.Add(string(k), string(v))
	})

	bodyBytes := ctx.PostBody()
	var body io.ReadCloser
	if len(bodyBytes) > 0 {
		body = io.NopCloser(bytes.NewReader(append([]byte(nil), bodyBytes...)))
	} else {
		body = io.NopCloser(bytes.NewReader(nil))
	}

	return input.New(string(ctx.Method()), string(ctx.Path()),
		input.WithQuery(query),
		input.WithForm(form),
		input.WithHeader(hdr),
		input.WithBody(body),
		input.WithRemoteAddr(ctx.RemoteAddr().String()),
		input.WithContext(cctx),
	)
}
