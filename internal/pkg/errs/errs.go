// Package errs wraps cockroachdb/errors behind the few operations the
// rest of the codebase needs: stack-carrying construction, wrapping,
// and sentinel marking.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr as an equivalence marker: errors.Is(result,
// markErr) holds while the original cause and stack stay intact.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
