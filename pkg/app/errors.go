package app

import "errors"

var (
	// ErrNotInvocable reports that routing resolved to a value the
	// framework cannot invoke as a controller.
	ErrNotInvocable = errors.New("routed controller is not invocable")

	// ErrInvalidResponse reports that a controller result does not satisfy
	// the response capability set.
	ErrInvalidResponse = errors.New("controller result does not satisfy the response contract")

	// ErrAlreadyExecuted reports a second Execute call on the same request.
	ErrAlreadyExecuted = errors.New("request already executed")

	// ErrNoApplication reports an environment lookup for an unknown or
	// missing active application.
	ErrNoApplication = errors.New("no such application")
)
