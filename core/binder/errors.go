package binder

import "errors"

var (
	// ErrFailedToBindForm indicates form values could not be mapped onto
	// the target struct, either because the target is not a settable
	// struct pointer or a value failed type conversion.
	ErrFailedToBindForm = errors.New("failed to bind form values")
)
