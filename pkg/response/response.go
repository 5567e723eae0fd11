// Package response defines the capability set a controller result must
// satisfy and a basic implementation of it.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ihildebrandt/fuelgo/pkg/view"
)

// Response is the capability set required of every controller result. The
// request lifecycle rejects results that do not satisfy it in full.
type Response interface {
	Status() int
	SetStatus(status int)
	Header() http.Header
	Body() any
	SetBody(body any)
	Content() (string, error)
}

// Basic is the standard Response implementation.
type Basic struct {
	status int
	header http.Header
	body   any
}

// New returns a 200 response with the given body.
func New(body any) *Basic {
	return NewStatus(http.StatusOK, body)
}

// NewStatus returns a response with an explicit status code.
func NewStatus(status int, body any) *Basic {
	return &Basic{status: status, header: make(http.Header), body: body}
}

// NewRedirect returns a redirect response pointing at location. A status
// outside the 3xx range is replaced with 302.
func NewRedirect(location string, status int) *Basic {
	if status < 300 || status > 399 {
		status = http.StatusFound
	}
	r := NewStatus(status, "")
	r.header.Set("Location", location)
	return r
}

// JSON marshals v into a response body with the JSON content type.
func JSON(v any) (*Basic, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json response: %w", err)
	}
	r := New(string(b))
	r.header.Set("Content-Type", "application/json")
	return r, nil
}

func (b *Basic) Status() int          { return b.status }
func (b *Basic) SetStatus(status int) { b.status = status }
func (b *Basic) Header() http.Header  { return b.header }
func (b *Basic) Body() any            { return b.body }
func (b *Basic) SetBody(body any)     { b.body = body }

// Content resolves the body into its final string form, rendering Viewable
// bodies on demand.
func (b *Basic) Content() (string, error) {
	switch v := b.body.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case view.Viewable:
		return v.Render()
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("response body %T has no string form", b.body)
	}
}
