package internal

import (
	"github.com/valyala/bytebufferpool"
)

// maxPooledBufferSize keeps huge one-off documents from pinning memory
// in the pool.
const maxPooledBufferSize = 1 << 20

var bufferPool bytebufferpool.Pool

// GetBuffer gets an empty buffer from the pool
func GetBuffer() *bytebufferpool.ByteBuffer {
	return bufferPool.Get()
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytebufferpool.ByteBuffer) {
	if buf == nil || cap(buf.B) > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// hexChars contains upper-case hex characters for \u escapes
var hexChars = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E', 'F',
}

// AppendUnicodeEscape appends \uXXXX for a UTF-16 code unit
func AppendUnicodeEscape(dst []byte, unit uint16) []byte {
	return append(dst, '\\', 'u',
		hexChars[unit>>12&0xF],
		hexChars[unit>>8&0xF],
		hexChars[unit>>4&0xF],
		hexChars[unit&0xF],
	)
}

// HexValue returns the value of a hex digit
func HexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
