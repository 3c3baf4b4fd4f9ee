package async

import "errors"

var (
	ErrTimeout    = errors.New("async: operation timed out waiting for future completion")
	ErrSuperseded = errors.New("async: task superseded by a newer one")
)
