package jsonnode

// Default limits and sizes
const (
	DefaultMaxJSONSize     = 100 * 1024 * 1024 // 100MB
	DefaultMaxNestingDepth = 512
	DefaultMaxCacheSize    = 128
	DefaultIndentStep      = 2

	// cacheKeyMinSize skips caching for tiny inputs where parsing is cheaper
	// than hashing and cloning.
	cacheKeyMinSize = 64

	// maxPreviewLength bounds input excerpts written to logs.
	maxPreviewLength = 64
)

// Literal tokens recognised by the parser and emitted by the writer
const (
	literalTrue     = "true"
	literalFalse    = "false"
	literalNull     = "null"
	literalNaN      = "NaN"
	literalInfinity = "Infinity"
	byteOrderMark   = '\uFEFF'
)

// Binary stream layout
const (
	binaryBoolFalse byte = 0
	binaryBoolTrue  byte = 1
	binaryCountSize      = 4
	binaryFloatSize      = 8
)
