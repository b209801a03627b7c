package transfer

import (
	"errors"
	"fmt"
)

var ErrStoreRequired = errors.New("transfer: store is required")

// MessageParse is shown when an import file is not JSON.
const MessageParse = "Invalid JSON file format."

// ParseError is a snapshot that is not valid JSON. Nothing was written.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "transfer: parse snapshot: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// StageValidate marks an ImportError raised by snapshot schema validation.
const StageValidate = "validate"

// ImportError is any other import failure.
type ImportError struct {
	Stage string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("transfer: import %s: %v", e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// PublicMessage maps an import error to the admin facing text.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return MessageParse
	}
	var importErr *ImportError
	if errors.As(err, &importErr) {
		return "Failed to import database: " + importErr.Err.Error()
	}
	return "Failed to import database: " + err.Error()
}
