package langsync

import "errors"

var (
	ErrNotMounted     = errors.New("langsync: synchronizer is not mounted")
	ErrAlreadyMounted = errors.New("langsync: synchronizer is already mounted")
	ErrClosed         = errors.New("langsync: synchronizer is closed")
	ErrNilURL         = errors.New("langsync: url is nil")
)
