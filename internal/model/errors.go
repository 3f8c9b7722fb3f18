package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores when a unique key is taken.
	ErrAlreadyExists = errors.New("already exists")
)
