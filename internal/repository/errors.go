// Package repository owns all entity state. It is the only component that
// assigns ids, generates public product codes, or mutates collections.
// Sentinel errors defined here let handlers map storage outcomes onto HTTP
// statuses without inspecting error strings.
package repository

import "errors"

// ErrNotFound is returned by every lookup whose subject does not exist.
// Handlers decide the HTTP-level consequence; for product verification a
// miss is a 200 with a negative authenticity flag, not an error.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when a user is created with a username
// that is already taken. Handlers translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")
