// Package errutil provides small helpers for dealing with errors.
package errutil

import "fmt"

// RunAndSetError runs f and, if f fails while *err is still nil, stores
// the wrapped failure in *err. Meant to be deferred around cleanups such
// as Body.Close so their failures aren't silently dropped.
func RunAndSetError(f func() error, err *error, msg string) {
	if ferr := f(); ferr != nil && *err == nil {
		*err = fmt.Errorf("%s: %w", msg, ferr)
	}
}
