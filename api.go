package jsonnode

import (
	"io"
)

// Parse parses JSON text into a tree using the global processor.
//
// The parser is lenient: unknown bare tokens become strings and missing
// commas are not diagnosed. It fails only on bracket imbalance, an
// unterminated string, a malformed \u escape or a configured limit, and
// never returns a partial tree.
func Parse(text string) (*Node, error) {
	return getDefaultProcessor().Parse(text)
}

// ParseBytes parses JSON text held in a byte slice
func ParseBytes(data []byte) (*Node, error) {
	return getDefaultProcessor().ParseBytes(data)
}

// ParseReader reads r to the end and parses the text
func ParseReader(r io.Reader) (*Node, error) {
	return getDefaultProcessor().ParseReader(r)
}

// ParseWithConfig parses JSON text using the flags and limits in cfg,
// bypassing the global processor.
func ParseWithConfig(text string, cfg *Config) (*Node, error) {
	return parse(text, cfg)
}

// ToText renders n as JSON text. Indent mode uses indentStep spaces per
// nesting level.
func ToText(n *Node, mode TextMode, indentStep int) string {
	return toText(n, mode, indentStep, getDefaultProcessor().config)
}

// WriteText renders n to w
func WriteText(w io.Writer, n *Node, mode TextMode, indentStep int) error {
	return writeText(w, n, mode, indentStep, getDefaultProcessor().config)
}

// ToTextWithConfig renders n using the ForceASCII flag of cfg
func ToTextWithConfig(n *Node, mode TextMode, indentStep int, cfg *Config) string {
	return toText(n, mode, indentStep, cfg)
}

// DecodeBinary rebuilds a tree from its binary form. The whole input must
// be consumed by exactly one root value.
func DecodeBinary(data []byte) (*Node, error) {
	return getDefaultProcessor().DecodeBinary(data)
}

// DecodeBinaryBase64 decodes base64 text produced by EncodeBinaryBase64
func DecodeBinaryBase64(text string) (*Node, error) {
	return getDefaultProcessor().DecodeBinaryBase64(text)
}

// ReadBinary reads exactly one encoded tree from r. When r does not
// implement io.ByteReader it is buffered, and bytes after the root may be
// consumed from r.
func ReadBinary(r io.Reader) (*Node, error) {
	return getDefaultProcessor().ReadBinary(r)
}

// DecodeBinaryWithConfig decodes using the limits and null policy of cfg
func DecodeBinaryWithConfig(data []byte, cfg *Config) (*Node, error) {
	return decodeBinary(data, cfg)
}

// GetStats returns statistics of the global processor
func GetStats() Stats {
	return getDefaultProcessor().Stats()
}

// ClearCache drops the global processor's cache
func ClearCache() {
	getDefaultProcessor().ClearCache()
}
