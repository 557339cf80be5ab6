package infra

import (
	"errors"
	"fmt"

	"stayhub/internal/pkg/errs"
)

// RepositoryErrorKind partitions storage failures into the categories
// the usecase layer branches on.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error
}

func (e RepositoryError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
}

func (e RepositoryError) Unwrap() error { return e.err }

// WrapRepoErr classifies a storage error. Kind defaults to DB_FAILURE.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind RepositoryErrorKind) bool {
	var re RepositoryError
	return errors.As(err, &re) && re.Kind == kind
}
