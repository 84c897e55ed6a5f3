package service

import (
	"github.com/samber/oops"
	"github.com/tungsten-replicator/configure-service/lib/transformer"
)

var (
	ErrMissingServiceName = oops.New("service name is required")
	ErrInvalidServiceName = oops.New("invalid service name")
	ErrAlreadyExists      = oops.New("service artifact already exists")
	ErrNotFound           = oops.New("service artifact does not exist")
	ErrMissingParameter   = oops.New("required configuration parameter is not set")

	// ErrIO is shared with the transformer so callers test one kind.
	ErrIO = transformer.ErrIO
)
