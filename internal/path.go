package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPath is returned for paths that cannot be split into segments
var ErrMalformedPath = errors.New("malformed path")

// EscapeJSONPointer escapes special characters for JSON Pointer
func EscapeJSONPointer(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			sb.WriteString("~0")
		case '/':
			sb.WriteString("~1")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// UnescapeJSONPointer unescapes JSON Pointer special characters
func UnescapeJSONPointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+1 < len(s) {
			switch s[i+1] {
			case '0':
				sb.WriteByte('~')
				i++
				continue
			case '1':
				sb.WriteByte('/')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// PathSegmentType represents the type of path segment
type PathSegmentType int

const (
	PropertySegment PathSegmentType = iota
	ArrayIndexSegment
)

// String returns the segment type name
func (pst PathSegmentType) String() string {
	switch pst {
	case PropertySegment:
		return "property"
	case ArrayIndexSegment:
		return "array"
	default:
		return "unknown"
	}
}

// PathSegment is one step of a parsed path
type PathSegment struct {
	Type  PathSegmentType
	Key   string // PropertySegment
	Index int    // ArrayIndexSegment; negative means append
}

// String returns a string representation of the path segment
func (ps PathSegment) String() string {
	if ps.Type == ArrayIndexSegment {
		return "[" + strconv.Itoa(ps.Index) + "]"
	}
	return ps.Key
}

// ParsePath parses a path into segments. Paths starting with "/" are JSON
// Pointers; anything else is dot notation with optional bracket indices,
// e.g. "users[0].name" or "users.0.name".
func ParsePath(path string) ([]PathSegment, error) {
	if path == "" {
		return []PathSegment{}, nil
	}
	if strings.HasPrefix(path, "/") {
		return parseJSONPointer(path), nil
	}
	return parseDotNotation(path)
}

// parseDotNotation parses paths like "user.name" or "users[0].name"
func parseDotNotation(path string) ([]PathSegment, error) {
	segments := make([]PathSegment, 0, strings.Count(path, ".")+1)

	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' && path[i] != '[' {
			continue
		}
		if part := path[start:i]; part != "" {
			segments = append(segments, propertyOrIndex(part))
		}
		if i == len(path) {
			break
		}
		if path[i] == '.' {
			start = i + 1
			continue
		}

		end := strings.IndexByte(path[i:], ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: unclosed '[' at %d", ErrMalformedPath, i)
		}
		index, err := parseArrayIndex(path[i+1 : i+end])
		if err != nil {
			return nil, err
		}
		segments = append(segments, PathSegment{Type: ArrayIndexSegment, Index: index})

		i += end
		start = i + 1
		if start < len(path) && path[start] != '.' && path[start] != '[' {
			return nil, fmt.Errorf("%w: unexpected %q after ']'", ErrMalformedPath, path[start])
		}
	}

	if strings.IndexByte(path, ']') >= 0 && strings.Count(path, "[") != strings.Count(path, "]") {
		return nil, fmt.Errorf("%w: unbalanced brackets", ErrMalformedPath)
	}
	return segments, nil
}

func propertyOrIndex(part string) PathSegment {
	if index, err := strconv.Atoi(part); err == nil {
		return PathSegment{Type: ArrayIndexSegment, Index: index}
	}
	return PathSegment{Type: PropertySegment, Key: part}
}

func parseArrayIndex(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty array index", ErrMalformedPath)
	}
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid array index '%s'", ErrMalformedPath, s)
	}
	return index, nil
}

// parseJSONPointer parses JSON Pointer paths like "/users/0/name". The
// pointer "/" addresses the empty key.
func parseJSONPointer(path string) []PathSegment {
	parts := strings.Split(path[1:], "/")
	segments := make([]PathSegment, 0, len(parts))
	for _, part := range parts {
		if index, err := strconv.Atoi(part); err == nil && index >= 0 {
			segments = append(segments, PathSegment{Type: ArrayIndexSegment, Index: index})
			continue
		}
		if part == "-" {
			segments = append(segments, PathSegment{Type: ArrayIndexSegment, Index: -1})
			continue
		}
		segments = append(segments, PathSegment{Type: PropertySegment, Key: UnescapeJSONPointer(part)})
	}
	return segments
}

// FormatPath renders segments back into dot notation
func FormatPath(segments []PathSegment) string {
	var sb strings.Builder
	for i, seg := range segments {
		if seg.Type == PropertySegment && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// FormatPointer renders segments as a JSON Pointer
func FormatPointer(segments []PathSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteByte('/')
		switch {
		case seg.Type == PropertySegment:
			sb.WriteString(EscapeJSONPointer(seg.Key))
		case seg.Index < 0:
			sb.WriteByte('-')
		default:
			sb.WriteString(strconv.Itoa(seg.Index))
		}
	}
	return sb.String()
}
