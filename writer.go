package jsonnode

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cybergodev/jsonnode/internal"
)

// TextMode selects how a tree is rendered as text
type TextMode int

const (
	// Compact emits no whitespace between tokens
	Compact TextMode = iota
	// Indent puts every element on its own line, indented by the step
	// width per nesting level, with " : " between keys and values.
	Indent
)

// String returns the mode name
func (m TextMode) String() string {
	if m == Indent {
		return "indent"
	}
	return "compact"
}

func toText(n *Node, mode TextMode, indentStep int, cfg *Config) string {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	tw := textWriter{step: max(indentStep, 0), ascii: cfg.forceASCII()}
	buf.B = tw.appendNode(buf.B, n, 0, mode)
	return string(buf.B)
}

func writeText(w io.Writer, n *Node, mode TextMode, indentStep int, cfg *Config) error {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	tw := textWriter{step: max(indentStep, 0), ascii: cfg.forceASCII()}
	buf.B = tw.appendNode(buf.B, n, 0, mode)
	_, err := w.Write(buf.B)
	return err
}

type textWriter struct {
	step  int
	ascii bool
}

func (w *textWriter) appendNode(dst []byte, n *Node, indent int, mode TextMode) []byte {
	switch n.Kind() {
	case KindNull:
		return append(dst, literalNull...)
	case KindBool:
		if n.b {
			return append(dst, literalTrue...)
		}
		return append(dst, literalFalse...)
	case KindNumber:
		return appendNumber(dst, n.num)
	case KindString:
		return w.appendString(dst, n.str)
	case KindArray:
		if n.inline {
			mode = Compact
		}
		dst = append(dst, '[')
		for i, item := range n.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			if mode == Indent {
				dst = appendNewline(dst, indent+w.step)
			}
			dst = w.appendNode(dst, item, indent+w.step, mode)
		}
		if mode == Indent {
			dst = appendNewline(dst, indent)
		}
		return append(dst, ']')
	case KindObject:
		if n.inline {
			mode = Compact
		}
		dst = append(dst, '{')
		for i, f := range n.fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			if mode == Indent {
				dst = appendNewline(dst, indent+w.step)
			}
			dst = w.appendString(dst, f.key)
			if mode == Indent {
				dst = append(dst, " : "...)
			} else {
				dst = append(dst, ':')
			}
			dst = w.appendNode(dst, f.value, indent+w.step, mode)
		}
		if mode == Indent {
			dst = appendNewline(dst, indent)
		}
		return append(dst, '}')
	default:
		panic(unknownKind(n.Kind()))
	}
}

func appendNewline(dst []byte, spaces int) []byte {
	dst = append(dst, '\n')
	for range spaces {
		dst = append(dst, ' ')
	}
	return dst
}

// appendString appends s quoted and escaped. Control characters always use
// \uXXXX; with ascii set so does every code point above 127, astral ones
// as UTF-16 surrogate pairs.
func (w *textWriter) appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			if !w.ascii {
				dst = append(dst, c)
				i++
				continue
			}
			r, size := utf8.DecodeRuneInString(s[i:])
			i += size
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				dst = internal.AppendUnicodeEscape(dst, uint16(r1))
				dst = internal.AppendUnicodeEscape(dst, uint16(r2))
				continue
			}
			dst = internal.AppendUnicodeEscape(dst, uint16(r))
			continue
		}
		i++
		switch c {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '"':
			dst = append(dst, '\\', '"')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			if c < 0x20 {
				dst = internal.AppendUnicodeEscape(dst, uint16(c))
			} else {
				dst = append(dst, c)
			}
		}
	}
	return append(dst, '"')
}
