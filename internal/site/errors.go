package site

import "errors"

var (
	ErrUnknownCacheDriver = errors.New("site: unknown cache driver")
	ErrContentUnavailable = errors.New("site: content directory unavailable")
)
