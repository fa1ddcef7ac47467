package jsonnode

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cybergodev/jsonnode/internal"
)

// EncodeBinary serializes n in the tagged binary format: a pre-order walk
// where each node starts with its Kind byte.
//
//	Null    tag
//	Bool    tag, 0|1
//	Number  tag, float64 little endian
//	String  tag, uvarint length, UTF-8 bytes
//	Array   tag, int32 little endian count, elements
//	Object  tag, int32 little endian count, (uvarint key length, key, value)...
func EncodeBinary(n *Node) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	buf.B = appendBinary(buf.B, n)
	return append([]byte(nil), buf.B...)
}

// WriteBinary writes the binary form of n to w
func WriteBinary(w io.Writer, n *Node) error {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	buf.B = appendBinary(buf.B, n)
	_, err := w.Write(buf.B)
	return err
}

// EncodeBinaryBase64 returns the binary form of n as standard base64 text
func EncodeBinaryBase64(n *Node) string {
	return base64.StdEncoding.EncodeToString(EncodeBinary(n))
}

func appendBinary(dst []byte, n *Node) []byte {
	kind := n.Kind()
	dst = append(dst, byte(kind))
	switch kind {
	case KindNull:
		return dst
	case KindBool:
		if n.b {
			return append(dst, binaryBoolTrue)
		}
		return append(dst, binaryBoolFalse)
	case KindNumber:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(n.num))
	case KindString:
		return appendBinaryString(dst, n.str)
	case KindArray:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(n.items)))
		for _, item := range n.items {
			dst = appendBinary(dst, item)
		}
		return dst
	case KindObject:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(n.fields)))
		for _, f := range n.fields {
			dst = appendBinaryString(dst, f.key)
			dst = appendBinary(dst, f.value)
		}
		return dst
	default:
		panic(unknownKind(kind))
	}
}

func appendBinaryString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func decodeBinary(data []byte, cfg *Config) (*Node, error) {
	if cfg != nil && cfg.MaxJSONSize > 0 && int64(len(data)) > cfg.MaxJSONSize {
		return nil, newSizeLimitError("decode_binary", int64(len(data)), cfg.MaxJSONSize)
	}
	src := &sliceSource{data: data}
	d := binaryDecoder{src: src, cfg: cfg, maxDepth: cfg.maxNestingDepth()}
	n, err := d.node(0)
	if err != nil {
		return nil, err
	}
	if src.pos != len(data) {
		return nil, newOffsetError("decode_binary", src.pos, "trailing bytes after root value", ErrCorruptStream)
	}
	return n, nil
}

func decodeBinaryBase64(text string, cfg *Config) (*Node, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, newOperationError("decode_base64", err.Error(), ErrCorruptStream)
	}
	return decodeBinary(data, cfg)
}

func readBinary(r io.Reader, cfg *Config) (*Node, error) {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := binaryDecoder{src: &readerSource{r: br}, cfg: cfg, maxDepth: cfg.maxNestingDepth()}
	return d.node(0)
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// byteSource is the input of the decoder. Both methods report io.EOF or
// io.ErrUnexpectedEOF when the input ends early.
type byteSource interface {
	io.ByteReader
	readFull(n int) ([]byte, error)
	offset() int
}

type sliceSource struct {
	data []byte
	pos  int
}

func (s *sliceSource) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	c := s.data[s.pos]
	s.pos++
	return c, nil
}

func (s *sliceSource) readFull(n int) ([]byte, error) {
	if n > len(s.data)-s.pos {
		s.pos = len(s.data)
		return nil, io.ErrUnexpectedEOF
	}
	b := s.data[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *sliceSource) offset() int { return s.pos }

type readerSource struct {
	r   byteReader
	pos int
}

func (s *readerSource) ReadByte() (byte, error) {
	c, err := s.r.ReadByte()
	if err == nil {
		s.pos++
	}
	return c, err
}

func (s *readerSource) readFull(n int) ([]byte, error) {
	// read in chunks; a corrupt length must not allocate up front
	const chunk = 64 << 10
	b := make([]byte, 0, min(n, chunk))
	for len(b) < n {
		step := min(n-len(b), chunk)
		start := len(b)
		b = append(b, make([]byte, step)...)
		read, err := io.ReadFull(s.r, b[start:])
		s.pos += read
		if err != nil {
			return nil, io.ErrUnexpectedEOF
		}
	}
	return b, nil
}

func (s *readerSource) offset() int { return s.pos }

type binaryDecoder struct {
	src      byteSource
	cfg      *Config
	maxDepth int
}

func (d *binaryDecoder) node(depth int) (*Node, error) {
	if depth > d.maxDepth {
		return nil, newDepthLimitError("decode_binary", depth, d.maxDepth)
	}

	tagOffset := d.src.offset()
	tag, err := d.src.ReadByte()
	if err != nil {
		return nil, d.truncated(err)
	}

	switch Kind(tag) {
	case KindNull:
		return d.cfg.Null(), nil
	case KindBool:
		b, err := d.src.ReadByte()
		if err != nil {
			return nil, d.truncated(err)
		}
		switch b {
		case binaryBoolFalse:
			return NewBool(false), nil
		case binaryBoolTrue:
			return NewBool(true), nil
		default:
			return nil, newOffsetError("decode_binary", d.src.offset()-1, "invalid bool byte", ErrCorruptStream)
		}
	case KindNumber:
		raw, err := d.src.readFull(binaryFloatSize)
		if err != nil {
			return nil, d.truncated(err)
		}
		return NewNumber(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
	case KindString:
		s, err := d.string()
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case KindArray:
		count, err := d.count()
		if err != nil {
			return nil, err
		}
		arr := &Node{kind: KindArray, items: make([]*Node, 0, min(count, 1024))}
		for range count {
			item, err := d.node(depth + 1)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, item)
		}
		return arr, nil
	case KindObject:
		count, err := d.count()
		if err != nil {
			return nil, err
		}
		obj := NewObject()
		for range count {
			key, err := d.string()
			if err != nil {
				return nil, err
			}
			value, err := d.node(depth + 1)
			if err != nil {
				return nil, err
			}
			obj.put(key, value)
		}
		return obj, nil
	default:
		return nil, newOffsetError("decode_binary", tagOffset, "unknown tag byte", ErrCorruptStream)
	}
}

func (d *binaryDecoder) count() (int, error) {
	raw, err := d.src.readFull(binaryCountSize)
	if err != nil {
		return 0, d.truncated(err)
	}
	count := int32(binary.LittleEndian.Uint32(raw))
	if count < 0 {
		return 0, newOffsetError("decode_binary", d.src.offset()-binaryCountSize, "negative element count", ErrCorruptStream)
	}
	return int(count), nil
}

func (d *binaryDecoder) string() (string, error) {
	length, err := binary.ReadUvarint(d.src)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", d.truncated(err)
		}
		return "", newOffsetError("decode_binary", d.src.offset(), "invalid string length", ErrCorruptStream)
	}
	if length > math.MaxInt32 {
		return "", newOffsetError("decode_binary", d.src.offset(), "string length out of range", ErrCorruptStream)
	}
	raw, err := d.src.readFull(int(length))
	if err != nil {
		return "", d.truncated(err)
	}
	return string(raw), nil
}

func (d *binaryDecoder) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newOffsetError("decode_binary", d.src.offset(), "unexpected end of stream", ErrTruncatedStream)
	}
	return newOffsetError("decode_binary", d.src.offset(), err.Error(), ErrDecode)
}
