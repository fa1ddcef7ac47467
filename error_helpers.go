package jsonnode

import "fmt"

// newError creates a standard NodeError with all fields
func newError(op, path, message string, err error) *NodeError {
	return &NodeError{
		Op:      op,
		Path:    path,
		Offset:  -1,
		Message: message,
		Err:     err,
	}
}

// newOffsetError creates errors for parse and decode failures
func newOffsetError(op string, offset int, message string, err error) *NodeError {
	return &NodeError{
		Op:      op,
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// newLimitError creates errors for size/depth limits
func newLimitError(op string, current, max int64, limitType string, err error) *NodeError {
	return &NodeError{
		Op:      op,
		Offset:  -1,
		Message: fmt.Sprintf("%s %d exceeds maximum %d", limitType, current, max),
		Err:     err,
	}
}

func newOperationError(op, message string, err error) *NodeError {
	return newError(op, "", message, err)
}

func newPathError(path, message string, err error) *NodeError {
	return newError("path", path, message, err)
}

func newSizeLimitError(op string, size, maxSize int64) *NodeError {
	return newLimitError(op, size, maxSize, "size", ErrSizeLimit)
}

func newDepthLimitError(op string, depth, maxDepth int) *NodeError {
	return newLimitError(op, int64(depth), int64(maxDepth), "depth", ErrDepthLimit)
}

func newKindError(op string, got Kind, want string) *NodeError {
	return newOperationError(op, fmt.Sprintf("cannot %s on %s node", want, got), ErrTypeMismatch)
}
