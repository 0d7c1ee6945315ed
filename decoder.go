package radix4

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const defaultReadBufSize = 4 * 1024

// readBuffer pulls encoded bytes from an io.Reader one at a time through
// an internal window.
type readBuffer struct {
	buf        []byte
	start, end int
}

func (rb *readBuffer) init() {
	if len(rb.buf) == 0 {
		rb.buf = make([]byte, defaultReadBufSize)
	}
}

func (rb *readBuffer) readByte(r io.Reader) (byte, error) {
	for rb.start == rb.end {
		rb.init()
		rb.start, rb.end = 0, 0
		n, err := r.Read(rb.buf)
		if n > 0 {
			rb.end = n
			break
		}
		if err != nil {
			return 0, err
		}
	}
	b := rb.buf[rb.start]
	rb.start++
	return b, nil
}

// scan classifications for the next meaningful encoded character.
const (
	scanValue = iota // an alphabet character; its index accompanies it
	scanTerm         // the terminator
	scanEOS          // end of the source
)

// A Decoder reads Radix4 encoded data from an underlying [io.Reader] and
// yields the decoded binary data through its own Read. On a streaming
// codec decoding is incremental; on a block codec the source is read in
// full on first use.
//
// A Decoder must not be used from multiple goroutines concurrently.
type Decoder struct {
	c  *Codec
	r  io.Reader
	rb readBuffer

	radixFree bool
	i, j      int     // position within the reconstructed triple; i == j is end
	bs        [3]byte // reconstructed mapped values
	err       error   // sticky

	block bool
	out   []byte // block mode decoded remainder
	done  bool   // block mode source consumed
}

// NewDecoder returns a [Decoder] reading encoded data from r.
func (c *Codec) NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{c: c, r: r}
	if c.streaming {
		d.radixFree = c.optimistic
		d.j = 3
	} else {
		d.block = true
	}
	return d
}

// NewStringDecoder returns a [Decoder] reading encoded data from s.
func (c *Codec) NewStringDecoder(s string) *Decoder {
	return c.NewDecoder(strings.NewReader(s))
}

// Read implements [io.Reader], filling p with decoded bytes.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.r == nil {
		return 0, errNilReader
	}
	n := 0
	for n < len(p) {
		b, err := d.next()
		if err != nil {
			if err == io.EOF && n > 0 {
				return n, nil
			}
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}

func (d *Decoder) next() (byte, error) {
	if d.err != nil {
		return 0, d.err
	}
	b, err := d.decodeByte()
	if err != nil {
		d.err = err
	}
	return b, err
}

func (d *Decoder) decodeByte() (byte, error) {
	if d.block {
		return d.blockNext()
	}
	if d.i == d.j {
		return 0, io.EOF
	}
	decmap := &d.c.mapping.decmap
	if d.radixFree {
		v, kind, err := d.scan()
		if err != nil {
			return 0, err
		}
		switch kind {
		case scanEOS:
			if d.c.terminated {
				return 0, io.ErrUnexpectedEOF
			}
			d.j = 0
			return 0, io.EOF
		case scanTerm:
			// end of the radix-free run; fall through to triple decoding
			d.radixFree = false
		default:
			return decmap[v], nil
		}
	}
	if d.i == 0 {
		if err := d.readTriple(); err != nil {
			return 0, err
		}
		if d.i == d.j {
			return 0, io.EOF
		}
	}
	b := d.bs[d.i]
	d.i++
	if d.i == 3 {
		d.i = 0
	}
	return decmap[b], nil
}

// readTriple reads one radix character and up to three data characters,
// reconstructing the mapped values in bs. A source that ends mid-triple
// shrinks j so the partial triple is served before EOF.
func (d *Decoder) readTriple() error {
	radix, kind, err := d.scan()
	if err != nil {
		return err
	}
	if kind != scanValue {
		if kind == scanEOS && d.c.terminated {
			return io.ErrUnexpectedEOF
		}
		if kind == scanTerm && !d.c.terminated {
			return fmt.Errorf("radix4: terminator in unterminated stream: %w", ErrMisplacedTerminator)
		}
		d.j = 0
		return nil
	}
	b0, kind0, err := d.scan()
	if err != nil {
		return err
	}
	if kind0 != scanValue {
		if kind0 == scanEOS {
			return io.ErrUnexpectedEOF
		}
		return fmt.Errorf("radix4: terminator after radix character: %w", ErrMisplacedTerminator)
	}
	d.bs[0] = b0 | radix<<2&0xc0
	b1, kind1, err := d.scan()
	if err != nil {
		return err
	}
	if kind1 != scanValue {
		if err := d.endTriple(kind1); err != nil {
			return err
		}
		d.j = 1
		return nil
	}
	d.bs[1] = b1 | radix<<4&0xc0
	b2, kind2, err := d.scan()
	if err != nil {
		return err
	}
	if kind2 != scanValue {
		if err := d.endTriple(kind2); err != nil {
			return err
		}
		d.j = 2
		return nil
	}
	d.bs[2] = b2 | radix<<6&0xc0
	return nil
}

// endTriple validates a mid-triple terminator or end of source against
// the codec's termination mode: a terminated stream must end at its
// terminator, an unterminated one must not contain any.
func (d *Decoder) endTriple(kind int) error {
	if kind == scanEOS && d.c.terminated {
		return io.ErrUnexpectedEOF
	}
	if kind == scanTerm && !d.c.terminated {
		return fmt.Errorf("radix4: terminator in unterminated stream: %w", ErrMisplacedTerminator)
	}
	return nil
}

// scan returns the next non-whitespace character from the source as an
// alphabet index, terminator or end of source.
func (d *Decoder) scan() (byte, int, error) {
	for {
		b, err := d.rb.readByte(d.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, scanEOS, nil
			}
			return 0, 0, err
		}
		if b == d.c.terminator {
			return 0, scanTerm, nil
		}
		switch v := d.c.codes[b]; v {
		case codeWhitespace:
			continue
		case codeInvalid:
			return 0, 0, fmt.Errorf("radix4: character %#02x: %w", b, ErrInvalidCharacter)
		default:
			return byte(v), scanValue, nil
		}
	}
}

// blockNext serves decoded bytes on a block codec, slurping and decoding
// the whole source the first time through.
func (d *Decoder) blockNext() (byte, error) {
	if !d.done {
		d.done = true
		src, err := io.ReadAll(d.r)
		if err != nil {
			return 0, err
		}
		out, err := d.c.DecodeBytes(src)
		if err != nil {
			return 0, err
		}
		d.out = out
	}
	if len(d.out) == 0 {
		return 0, io.EOF
	}
	b := d.out[0]
	d.out = d.out[1:]
	return b, nil
}

// streamDecode is the batch entry point for streaming codecs.
func (c *Codec) streamDecode(d *Decoder) ([]byte, error) {
	var out bytes.Buffer
	if _, err := out.ReadFrom(d); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
