// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"errors"
	"fmt"
)

// UnavailableError reports a transport failure, a non-success status or an
// undecodable body for one gateway operation. It is never retried.
type UnavailableError struct {
	// Op is the gateway operation, e.g. "list_entries".
	Op string
	// Target is the scope, name or id that was requested.
	Target string
	// Status is the HTTP status code, zero for transport failures.
	Status int
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("remote: %s %q returned status %d", e.Op, e.Target, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("remote: %s %q failed: %v", e.Op, e.Target, e.Err)
	default:
		return fmt.Sprintf("remote: %s %q unavailable", e.Op, e.Target)
	}
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err (or any error in its chain) is an [*UnavailableError].
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
