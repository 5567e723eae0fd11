package app

import (
	"errors"
	"fmt"
	"net/http"
)

// Redirect is the control-flow signal a controller raises (as an error) to
// request a redirect. The request lifecycle converts it into a response
// instead of propagating it.
type Redirect struct {
	Location string
	Status   int
}

// NewRedirect builds a 302 redirect signal to location.
func NewRedirect(location string) *Redirect {
	return &Redirect{Location: location, Status: http.StatusFound}
}

// WithStatus overrides the redirect status code.
func (r *Redirect) WithStatus(status int) *Redirect {
	r.Status = status
	return r
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s (%d)", r.Location, r.Status)
}

// AsRedirect unwraps err into a Redirect signal if it carries one.
func AsRedirect(err error) (*Redirect, bool) {
	var r *Redirect
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
