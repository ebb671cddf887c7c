//go:build !cgo

package fastembed

import "errors"

func isExpectedRejection(err error) bool {
	return errors.Is(err, ErrNotAvailable)
}
