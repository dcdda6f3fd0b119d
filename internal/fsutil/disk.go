package fsutil

import "errors"

// ErrUnsupported is returned by probes that have no implementation on this platform.
var ErrUnsupported = errors.New("not supported on this platform")
