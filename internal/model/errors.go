package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by operations addressing an unknown item.
	ErrNotFound = errors.New("item not found")

	// ErrStorageUnavailable wraps every failure of the durable store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidInput matches any *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError lists the fields of a draft that failed validation,
// keyed by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// GatewayError is a failed notification gateway call. It is always
// temporary: the user may retry.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return e.Op + ": gateway failure"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Temporary reports that the call may succeed if retried.
func (e *GatewayError) Temporary() bool {
	return true
}

// StorageError wraps err so that it matches ErrStorageUnavailable.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
