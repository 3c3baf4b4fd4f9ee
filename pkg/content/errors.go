package content

import "errors"

var (
	ErrUnknownKind = errors.New("content: unknown kind")
	ErrNotFound    = errors.New("content: not found")
)
