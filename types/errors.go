package types

import "errors"

var (
	// ErrNotFound is returned when a requested document is absent from
	// the local store. Non-fatal: callers degrade to an empty result.
	ErrNotFound = errors.New("document not found")

	// ErrStorageUnavailable is returned when the local persistence
	// backend cannot be opened or written. Non-fatal: callers proceed
	// without local caching.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrRemoteUnavailable is returned when the remote recommendation
	// service fails (network error, timeout, non-2xx or malformed
	// response). It triggers the local fallback and is never surfaced
	// to the UI.
	ErrRemoteUnavailable = errors.New("remote recommendation service unavailable")
)
