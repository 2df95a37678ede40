package chat

import "errors"

var (
	ErrInvalidScope = errors.New("invalid user or conversation id")
	ErrEmptyMessage = errors.New("message is empty")
)
