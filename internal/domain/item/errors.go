package item

import "errors"

// ErrStoreFailure marks any failure talking to the persistent store. It is
// the only error kind the service exposes.
var ErrStoreFailure = errors.New("store unavailable or query failed")
