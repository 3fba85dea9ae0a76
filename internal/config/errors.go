package config

import "errors"

var (
	// ErrMissingArgument is returned when a mandatory value is absent.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidArgument is returned when a value is present but unusable.
	ErrInvalidArgument = errors.New("invalid argument")
)
