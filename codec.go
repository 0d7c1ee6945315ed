package radix4

import (
	"bytes"
	"math"
)

const (
	defaultBufferSize = 64
	defaultLineBreak  = "\n"
	defaultWhitespace = "\t\n\r "
	defaultTerminator = '.'
)

// Lookup classes in the codes table beyond alphabet indices 0..63.
const (
	codeInvalid    = -1
	codeWhitespace = -2
)

// A Codec is an immutable Radix4 coding definition: a mapping plus the
// formatting parameters that govern encoding and decoding. Codecs are safe
// for concurrent use by multiple goroutines.
type Codec struct {
	mapping    *Mapping
	codes      [256]int8 // char -> alphabet index, codeInvalid or codeWhitespace
	whitespace string
	lineLength int
	lineBreak  string
	// line break commonly left untouched - avoid converting per flush
	lineBreakBytes []byte
	bufferSize     int
	streaming  bool
	optimistic bool
	terminated bool
	terminator byte
}

var (
	streamCodec = mustCodec(defaultConfig(true))
	blockCodec  = mustCodec(defaultConfig(false))
)

func mustCodec(cfg config) *Codec {
	c, err := cfg.codec()
	if err != nil {
		panic(err)
	}
	return c
}

// Stream returns the standard codec for streaming data: stream format,
// optimistic, unterminated, no line breaks.
func Stream() *Codec {
	return streamCodec
}

// Block returns the standard codec for block-encoded data: block format,
// optimistic, unterminated, no line breaks.
func Block() *Codec {
	return blockCodec
}

// Mapping returns the byte permutation used by this codec.
func (c *Codec) Mapping() *Mapping { return c.mapping }

// Whitespace returns the characters this codec's decoders silently skip,
// in ascending order.
func (c *Codec) Whitespace() string { return c.whitespace }

// Streaming reports whether this codec interleaves radix characters for
// incremental decoding (true) or groups them in a block tail (false).
func (c *Codec) Streaming() bool { return c.streaming }

// Optimistic reports whether encoding defers radix characters until the
// first byte that is not radix-free.
func (c *Codec) Optimistic() bool { return c.optimistic }

// Terminated reports whether encoded output is explicitly terminated.
func (c *Codec) Terminated() bool { return c.terminated }

// Terminator returns the character used to mark the end of an optimistic
// prefix and, for terminated codecs, the end of the encoding.
func (c *Codec) Terminator() byte { return c.terminator }

// LineLength returns the number of characters between line breaks in
// encoded output, or zero if no line breaks are inserted.
func (c *Codec) LineLength() int { return c.lineLength }

// LineBreak returns the whitespace string inserted to break lines.
func (c *Codec) LineBreak() string { return c.lineBreak }

// BufferSize returns the number of bytes used to buffer stream encoding.
func (c *Codec) BufferSize() int { return c.bufferSize }

// Equal reports whether two codecs produce identical encodings for all
// inputs. Parameters that cannot influence output under the current
// configuration (the line break when breaks are off, the terminator when
// neither terminated nor optimistic, decode-only whitespace) are ignored.
func (c *Codec) Equal(o *Codec) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	if c.streaming != o.streaming || c.optimistic != o.optimistic || c.terminated != o.terminated {
		return false
	}
	if c.lineLength != o.lineLength {
		return false
	}
	if c.lineLength != 0 && c.lineBreak != o.lineBreak {
		return false
	}
	if (c.terminated || c.optimistic) && c.terminator != o.terminator {
		return false
	}
	return c.mapping.Equal(o.mapping)
}

// EncodedLen computes the number of ASCII characters this codec produces
// for src, including any optimistic marker, terminator and line breaks.
func (c *Codec) EncodedLen(src []byte) (int, error) {
	var radixFree int64
	if c.optimistic {
		radixFree = int64(c.mapping.RadixFreeLen(src))
	}
	n, err := c.encodedLen(int64(len(src)), radixFree)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, ErrTooLong
	}
	return int(n), nil
}

// encodedLen is the character count formula shared by [Codec.EncodedLen]
// and the block encoder. radixFreeLength is only meaningful under an
// optimistic codec and is otherwise ignored.
func (c *Codec) encodedLen(byteLength, radixFreeLength int64) (int64, error) {
	if !c.optimistic {
		radixFreeLength = 0
	}
	radixed := byteLength - radixFreeLength
	enc := radixFreeLength + radixed/3*4
	switch radixed % 3 {
	case 1:
		enc += 2
	case 2:
		enc += 3
	}
	if c.terminated {
		enc++
	}
	if c.optimistic && (c.terminated || radixFreeLength < byteLength) {
		enc++
	}
	if c.lineLength > 0 && enc > 0 {
		breaks := (enc - 1) / int64(c.lineLength) * int64(len(c.lineBreak))
		if enc+breaks < enc {
			return 0, ErrTooLong
		}
		enc += breaks
	}
	if enc < 0 {
		return 0, ErrTooLong
	}
	return enc, nil
}

// extraLineBreakLen returns the number of line-break bytes interspersed
// among the first n encoded characters.
func (c *Codec) extraLineBreakLen(n int) int {
	if n == 0 {
		return 0
	}
	return (n - 1) / c.lineLength * len(c.lineBreak)
}

// EncodeToString encodes src and returns the encoding as a string.
func (c *Codec) EncodeToString(src []byte) (string, error) {
	b, err := c.EncodeToBytes(src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeToBytes encodes src and returns the encoding as ASCII bytes.
func (c *Codec) EncodeToBytes(src []byte) ([]byte, error) {
	if c.streaming {
		return c.streamEncode(src)
	}
	return c.blockEncode(src)
}

// DecodeString decodes a string of Radix4 encoded data. Whitespace is
// skipped; any non-ASCII character is rejected.
func (c *Codec) DecodeString(s string) ([]byte, error) {
	if c.streaming {
		return c.streamDecode(c.NewStringDecoder(s))
	}
	buf, err := stripString(c, s)
	if err != nil {
		return nil, err
	}
	return c.blockDecode(buf)
}

// DecodeBytes decodes a byte slice of Radix4 encoded data. Whitespace is
// skipped.
func (c *Codec) DecodeBytes(src []byte) ([]byte, error) {
	if c.streaming {
		return c.streamDecode(c.NewDecoder(bytes.NewReader(src)))
	}
	return c.blockDecode(stripBytes(c, src))
}
