// Package netutil classifies network errors for operator facing messages.
//
// Errors are matched by type through errors.Is against syscall constants, so
// checks work whether the error arrives bare, inside a *net.OpError, or
// wrapped again by an HTTP client.
package netutil

import (
	"errors"
	"syscall"
)

// IsAddressInUseError reports whether err means the listen address is taken.
// contactd uses it to suggest a different --api address at startup.
func IsAddressInUseError(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// IsConnectionRefusedError reports whether err means nothing is listening
// at the target. contactctl uses it to hint that contactd is not running.
func IsConnectionRefusedError(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
