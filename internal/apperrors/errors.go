package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the requesting user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource is not in a state that permits the requested change.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected failure in a collaborator (persistence, storage).
var ErrInternal = errors.New("internal error")
