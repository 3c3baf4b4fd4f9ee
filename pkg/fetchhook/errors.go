package fetchhook

import "errors"

var (
	ErrUnexpectedStatus = errors.New("fetchhook: unexpected response status")
	ErrDecodeResponse   = errors.New("fetchhook: failed to decode response")
	ErrBuildRequest     = errors.New("fetchhook: failed to build request")
)
