package errors

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile file not found")
	ErrProfileParseFailed = errors.New("profile parsing failed")
	ErrImagePullFailed    = errors.New("image pull failed")
	ErrContainerFailed    = errors.New("container execution failed")
	ErrRuntimeFailed      = errors.New("runtime operation failed")
	ErrConfigInvalid      = errors.New("configuration invalid")
	ErrFileSystemFailed   = errors.New("filesystem operation failed")
)

type RunboxError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *RunboxError) Error() string {
	return e.OriginalErr.Error()
}

func (e *RunboxError) Unwrap() error {
	return e.OriginalErr
}

func NewRunboxError(errorType error, context, cause, suggestion string, originalErr error) *RunboxError {
	return &RunboxError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewProfileError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrProfileNotFound, context, cause, suggestion, originalErr)
}

func NewParseError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrProfileParseFailed, context, cause, suggestion, originalErr)
}

func NewImagePullError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrImagePullFailed, context, cause, suggestion, originalErr)
}

func NewContainerError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrContainerFailed, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

func NewFileSystemError(context, cause, suggestion string, originalErr error) *RunboxError {
	return NewRunboxError(ErrFileSystemFailed, context, cause, suggestion, originalErr)
}
