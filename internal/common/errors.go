// Package common provides shared error types and logging helpers used across picsort.
package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a sorting run.
var (
	// ErrConfig marks missing or malformed category definitions. Always fatal.
	ErrConfig = errors.New("configuration error")
	// ErrIO marks filesystem failures while preparing folders, reading or copying images.
	ErrIO = errors.New("filesystem error")
	// ErrService marks a failed request to the classification service.
	ErrService = errors.New("classification service error")

	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrNotFound         = errors.New("not found")
	ErrMissingConfig    = errors.New("missing configuration")
)

// ConfigError reports a problem with the category definition file.
type ConfigError struct {
	Err  error
	Path string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid categories: %v", e.Err)
	}
	return fmt.Sprintf("invalid categories in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConfig) match any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// NewConfigError wraps err as a ConfigError for path.
func NewConfigError(path string, err error) error {
	return &ConfigError{Path: path, Err: err}
}

// IOError reports a filesystem operation that failed.
type IOError struct {
	Err  error
	Op   string
	Path string
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// NewIOError wraps err as an IOError.
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// ServiceError reports a classification request that failed for one image.
type ServiceError struct {
	Err   error
	Image string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Image, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrService) match any ServiceError.
func (e *ServiceError) Is(target error) bool { return target == ErrService }

// NewServiceError wraps err as a ServiceError for image.
func NewServiceError(image string, err error) error {
	return &ServiceError{Image: image, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsFatal reports whether err must stop the whole run. Service errors are
// isolated to the image that caused them; everything else aborts.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrService)
}
