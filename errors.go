package jsonnode

import (
	"errors"
	"fmt"
)

// Core error definitions
var (
	// Structural parse errors
	ErrParse              = errors.New("structural parse error")
	ErrUnbalancedBrackets = fmt.Errorf("%w: unbalanced brackets", ErrParse)
	ErrUnterminatedString = fmt.Errorf("%w: unterminated string", ErrParse)
	ErrInvalidEscape      = fmt.Errorf("%w: invalid escape sequence", ErrParse)

	// Binary decode errors
	ErrDecode          = errors.New("binary decode error")
	ErrCorruptStream   = fmt.Errorf("%w: corrupt stream", ErrDecode)
	ErrTruncatedStream = fmt.Errorf("%w: truncated stream", ErrDecode)

	// Tree mutation errors
	ErrTypeMismatch = errors.New("type mismatch")
	ErrRefConsumed  = errors.New("reference already materialized")
	ErrInvalidPath  = errors.New("invalid path format")

	// Limit-related errors
	ErrSizeLimit  = errors.New("size limit exceeded")
	ErrDepthLimit = errors.New("depth limit exceeded")

	ErrProcessorClosed = errors.New("processor is closed")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// NodeError represents a document engine error with essential context
type NodeError struct {
	Op      string `json:"op"`      // Operation that failed
	Path    string `json:"path"`    // Tree path where the error occurred, if any
	Offset  int    `json:"offset"`  // Input offset for parse and decode errors, -1 if unknown
	Message string `json:"message"` // Human-readable error message
	Err     error  `json:"err"`     // Underlying error
}

func (e *NodeError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("jsonnode %s failed at path '%s': %s", e.Op, e.Path, e.Message)
	case e.Offset >= 0:
		return fmt.Sprintf("jsonnode %s failed at offset %d: %s", e.Op, e.Offset, e.Message)
	default:
		return fmt.Sprintf("jsonnode %s failed: %s", e.Op, e.Message)
	}
}

// Unwrap returns the underlying error for error chain support
func (e *NodeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is
func (e *NodeError) Is(target error) bool {
	if target == nil {
		return false
	}

	if targetErr, ok := target.(*NodeError); ok {
		return e.Op == targetErr.Op && e.Err == targetErr.Err
	}

	return errors.Is(e.Err, target)
}

// IsParseError reports whether err is a structural parse failure
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsDecodeError reports whether err is a binary decode failure
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsUserError reports whether err was caused by caller input rather than
// by the processor itself.
func IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrParse), errors.Is(err, ErrDecode):
		return true
	case errors.Is(err, ErrTypeMismatch), errors.Is(err, ErrRefConsumed), errors.Is(err, ErrInvalidPath):
		return true
	case errors.Is(err, ErrSizeLimit), errors.Is(err, ErrDepthLimit):
		return true
	default:
		return false
	}
}
