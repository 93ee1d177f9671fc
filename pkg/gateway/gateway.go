// Package gateway is the CRUD conduit between the planner and wherever tasks
// are stored: the remote /api/tasks backend or the local state directory.
//
// Every failure comes back as an error value wrapping one of the sentinels
// below; nothing panics and no result is returned alongside an error.
package gateway

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/task"
)

var (
	// ErrTransport means the request never produced a response.
	ErrTransport = errors.New("gateway: transport failure")
	// ErrStatus means the backend answered with a non-2xx status.
	ErrStatus = errors.New("gateway: unexpected status")
	// ErrBusiness means the envelope carried a failure code.
	ErrBusiness = errors.New("gateway: business failure")
	// ErrMalformed means the body could not be understood.
	ErrMalformed = errors.New("gateway: malformed response")
	// ErrNotFound is returned by the local gateway for unknown ids.
	ErrNotFound = errors.New("gateway: task not found")
)

// Gateway stores tasks.
type Gateway interface {
	// GetAll lists every task.
	GetAll(ctx context.Context) ([]task.Task, error)
	// Create stores a draft and returns the stored record. The record may be
	// empty when the backend acknowledges without a payload.
	Create(ctx context.Context, d task.Draft) (*task.Task, error)
	// Update applies a partial change.
	Update(ctx context.Context, id string, p task.Patch) (*task.Task, error)
	// Delete removes a task.
	Delete(ctx context.Context, id string) error
}

// Offline reports whether err is a network-level failure rather than a
// rejection by a reachable backend.
func Offline(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrStatus)
}
