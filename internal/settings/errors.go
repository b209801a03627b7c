package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrStoreRequired    = errors.New("settings: store is required")
	ErrUnknownModule    = errors.New("settings: unknown module")
	ErrDuplicateModule  = errors.New("settings: module already registered")
	ErrKeyRequired      = errors.New("settings: key is required")
	ErrRecordIDRequired = errors.New("settings: record id is required")
	ErrInvalidPayload   = errors.New("settings: invalid payload")
)

// ValidationError lists field level problems of a submitted value. Nothing
// is persisted when it is returned.
type ValidationError struct {
	ContentType string
	Issues      map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "settings: validation failed"
	}
	fields := make([]string, 0, len(e.Issues))
	for field := range e.Issues {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Issues[field])
	}
	return fmt.Sprintf("settings: %s validation failed: %s", e.ContentType, strings.Join(parts, "; "))
}

// StoreUnavailableError wraps a failing document store call.
type StoreUnavailableError struct {
	ContentType string
	Op          string
	Err         error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("settings: %s %s: store unavailable: %v", e.ContentType, e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// NotFoundError reports a missing independent record.
type NotFoundError struct {
	ContentType string
	Key         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("settings: %s %q not found", e.ContentType, e.Key)
}

// ValidationIssues converts an ozzo-validation result into a
// ValidationError. Internal validation failures are returned unchanged.
func ValidationIssues(contentType string, err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	issues := map[string]string{}
	flattenIssues("", err, issues)
	return &ValidationError{ContentType: contentType, Issues: issues}
}

// PrefixIssues nests the issues of err under prefix, used for list items.
func PrefixIssues(prefix string, err *ValidationError, into map[string]string) {
	for field, msg := range err.Issues {
		key := prefix
		if field != "" {
			key = prefix + "." + field
		}
		into[key] = msg
	}
}

func flattenIssues(prefix string, err error, into map[string]string) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, nested := range fieldErrs {
			if nested == nil {
				continue
			}
			key := field
			if prefix != "" {
				key = prefix + "." + field
			}
			flattenIssues(key, nested, into)
		}
		return
	}
	key := prefix
	if key == "" {
		key = "_"
	}
	into[key] = err.Error()
}

func storeError(contentType, op string, err error) error {
	if err == nil {
		return nil
	}
	var unavailable *StoreUnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	return &StoreUnavailableError{ContentType: contentType, Op: op, Err: err}
}
