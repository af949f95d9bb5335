package store

import "errors"

// ErrRejected matches every validation rejection returned by a Store
// mutation. A rejected mutation leaves the state unchanged.
var ErrRejected = errors.New("rejected")

type rejection struct{ msg string }

func (r *rejection) Error() string        { return r.msg }
func (r *rejection) Is(target error) bool { return target == ErrRejected }

// Specific rejections. Each also matches ErrRejected under errors.Is.
var (
	ErrProjectNotFound  error = &rejection{"project not found"}
	ErrFlagNotFound     error = &rejection{"flag not found"}
	ErrEnumTypeNotFound error = &rejection{"enum type not found"}
	ErrEmptyName        error = &rejection{"name must not be empty"}
	ErrInvalidType      error = &rejection{"invalid flag type"}
	ErrInvalidParent    error = &rejection{"parent must be an existing boolean flag in the same project"}
	ErrCycle            error = &rejection{"move would create a cycle"}
	ErrHasChildren      error = &rejection{"flag has children"}
	ErrDuplicateName    error = &rejection{"enum type name already exists"}
	ErrInvalidValues    error = &rejection{"values must be non-empty, non-blank and unique"}
	ErrInvalidValue     error = &rejection{"value is not allowed by the enum type"}
	ErrNotBoolean       error = &rejection{"flag is not boolean"}
	ErrNotEnum          error = &rejection{"flag is not an enum"}
)
