package jsonnode

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cybergodev/jsonnode/internal"
	"github.com/valyala/fastjson/fastfloat"
)

// parser holds the scan state of a single parse call
type parser struct {
	text string
	cfg  *Config

	stack     []*Node
	root      *Node
	ctx       *Node
	token     []byte
	tokenName string

	quoteMode     bool
	tokenIsQuoted bool
	quoteStart    int
}

// parse scans text once, keeping open containers on a stack. A nil cfg
// means the default flags without a size limit.
func parse(text string, cfg *Config) (*Node, error) {
	if cfg != nil && cfg.MaxJSONSize > 0 && int64(len(text)) > cfg.MaxJSONSize {
		return nil, newSizeLimitError("parse", int64(len(text)), cfg.MaxJSONSize)
	}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	p := &parser{text: text, cfg: cfg, token: buf.B[:0]}
	err := p.run()
	buf.B = p.token
	if err != nil {
		return nil, err
	}
	if p.root == nil {
		return p.element(), nil
	}
	return p.root, nil
}

func (p *parser) run() error {
	text := p.text
	comments := p.cfg.allowLineComments()
	maxDepth := p.cfg.maxNestingDepth()

	for i := 0; i < len(text); i++ {
		c := text[i]
		if p.quoteMode && c != '"' && c != '\\' {
			p.token = append(p.token, c)
			continue
		}

		switch c {
		case '{', '[':
			if len(p.stack) >= maxDepth {
				return newDepthLimitError("parse", len(p.stack)+1, maxDepth)
			}
			var child *Node
			if c == '{' {
				child = NewObject()
			} else {
				child = &Node{kind: KindArray}
			}
			if p.ctx != nil {
				p.ctx.attach(p.tokenName, child)
			}
			if p.root == nil {
				p.root = child
			}
			p.stack = append(p.stack, child)
			p.ctx = child
			p.reset()

		case '}', ']':
			if len(p.stack) == 0 {
				return newOffsetError("parse", i, "too many closing brackets", ErrUnbalancedBrackets)
			}
			p.stack = p.stack[:len(p.stack)-1]
			p.commit()
			if len(p.stack) > 0 {
				p.ctx = p.stack[len(p.stack)-1]
			}

		case ':':
			p.tokenName = string(p.token)
			p.token = p.token[:0]
			p.tokenIsQuoted = false

		case '"':
			p.quoteMode = !p.quoteMode
			if p.quoteMode {
				p.tokenIsQuoted = true
				p.quoteStart = i
			}

		case ',':
			p.commit()

		case ' ', '\t', '\r', '\n':

		case '\\':
			i++
			if i >= len(text) {
				if p.quoteMode {
					return newOffsetError("parse", p.quoteStart, "quotation marks seem to be messed up", ErrUnterminatedString)
				}
				break
			}
			if !p.quoteMode {
				_, size := utf8.DecodeRuneInString(text[i:])
				i += size - 1
				break
			}
			next, err := p.escape(i)
			if err != nil {
				return err
			}
			i = next

		case '/':
			if comments && i+1 < len(text) && text[i+1] == '/' {
				for i+1 < len(text) && text[i+1] != '\n' && text[i+1] != '\r' {
					i++
				}
				break
			}
			p.token = append(p.token, c)

		default:
			if c == 0xEF && strings.HasPrefix(text[i:], string(byteOrderMark)) {
				i += utf8.RuneLen(byteOrderMark) - 1
				break
			}
			p.token = append(p.token, c)
		}
	}

	if p.quoteMode {
		return newOffsetError("parse", p.quoteStart, "quotation marks seem to be messed up", ErrUnterminatedString)
	}
	if len(p.stack) > 0 {
		return newOffsetError("parse", len(text), "unclosed brackets at end of input", ErrUnbalancedBrackets)
	}
	return nil
}

// escape decodes the escape sequence whose letter is at text[i] and
// returns the index of its last byte.
func (p *parser) escape(i int) (int, error) {
	text := p.text
	switch text[i] {
	case 't':
		p.token = append(p.token, '\t')
	case 'r':
		p.token = append(p.token, '\r')
	case 'n':
		p.token = append(p.token, '\n')
	case 'b':
		p.token = append(p.token, '\b')
	case 'f':
		p.token = append(p.token, '\f')
	case 'u':
		r, ok := hex4(text, i+1)
		if !ok {
			return 0, newOffsetError("parse", i-1, "malformed \\u escape", ErrInvalidEscape)
		}
		i += 4
		if utf16.IsSurrogate(r) && r < 0xDC00 && i+6 < len(text) && text[i+1] == '\\' && text[i+2] == 'u' {
			if low, ok := hex4(text, i+3); ok && utf16.IsSurrogate(low) && low >= 0xDC00 {
				r = utf16.DecodeRune(r, low)
				i += 6
			}
		}
		p.token = utf8.AppendRune(p.token, r)
	default:
		_, size := utf8.DecodeRuneInString(text[i:])
		p.token = append(p.token, text[i:i+size]...)
		i += size - 1
	}
	return i, nil
}

func hex4(text string, start int) (rune, bool) {
	if start+4 > len(text) {
		return 0, false
	}
	var r rune
	for j := start; j < start+4; j++ {
		v, ok := internal.HexValue(text[j])
		if !ok {
			return 0, false
		}
		r = r<<4 | rune(v)
	}
	return r, true
}

// commit attaches the accumulated token to the current container when it
// holds a value, then clears the token state.
func (p *parser) commit() {
	if (len(p.token) > 0 || p.tokenIsQuoted) && p.ctx != nil {
		p.ctx.attach(p.tokenName, p.element())
	}
	p.reset()
}

func (p *parser) reset() {
	p.tokenName = ""
	p.token = p.token[:0]
	p.tokenIsQuoted = false
}

// element infers the value of the current token
func (p *parser) element() *Node {
	token := string(p.token)
	if p.tokenIsQuoted {
		return NewString(token)
	}
	return parseElement(token, p.cfg)
}

// parseElement turns an unquoted token into a value: true/false/null
// case-insensitively, then a float literal, otherwise the token itself as
// a String.
func parseElement(token string, cfg *Config) *Node {
	switch {
	case strings.EqualFold(token, literalTrue):
		return NewBool(true)
	case strings.EqualFold(token, literalFalse):
		return NewBool(false)
	case strings.EqualFold(token, literalNull):
		return cfg.Null()
	}
	if f, ok := parseNumber(token); ok {
		return NewNumber(f)
	}
	return NewString(token)
}

// parseNumber parses an invariant float literal. fastfloat is exact for
// short mantissas without exponent; longer mantissas and exponents are
// re-read by strconv to keep shortest-form output round-tripping.
func parseNumber(token string) (float64, bool) {
	f, err := fastfloat.Parse(token)
	if err != nil {
		return 0, false
	}
	if needsExactParse(token) {
		if exact, err := strconv.ParseFloat(token, 64); err == nil {
			return exact, true
		}
	}
	return f, true
}

func needsExactParse(token string) bool {
	digits := 0
	for i := 0; i < len(token); i++ {
		switch c := token[i]; {
		case c == 'e' || c == 'E':
			return true
		case '0' <= c && c <= '9':
			digits++
		}
	}
	return digits > 15
}
