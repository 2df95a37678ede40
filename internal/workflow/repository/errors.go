package repository

import "errors"

// ErrIntentNotFound is returned when no live intent exists for the
// (scope, kind) pair. It is an expected condition, never a failure.
var ErrIntentNotFound = errors.New("workflow intent not found")
