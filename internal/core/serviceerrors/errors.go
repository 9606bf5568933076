package serviceerrors

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

// ServiceError is an expected failure the caller can act on. Cause keeps the
// adapter error that produced it, if any.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewUnprocessableEntityError(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidRequestError(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind ErrorKind, cause error, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Cause: cause}
}
