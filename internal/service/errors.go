package service

import (
	"errors"

	"github.com/edirooss/streamforge/internal/repo/store"
)

var (
	// ErrInvalid wraps request validation failures.
	ErrInvalid = errors.New("invalid request")

	// ErrNotFound means the project does not exist in the workspace.
	ErrNotFound = store.ErrNotFound

	// ErrBusy means the workspace already has a chat request in flight.
	ErrBusy = errors.New("a chat request is already in progress")
)
