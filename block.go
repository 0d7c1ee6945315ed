package radix4

import "fmt"

// blockEncode performs a single-pass array encode. Data characters are
// written at an advancing front cursor while their radix characters are
// written at an offset cursor positioned so the radices trail the data
// they belong to.
func (c *Codec) blockEncode(src []byte) ([]byte, error) {
	total, err := c.EncodedLen(src)
	if err != nil {
		return nil, err
	}
	out := make([]byte, total)

	breakLines := c.lineLength > 0
	fullLine := c.lineLength + len(c.lineBreak)

	// put writes b at cursor i, first emitting a line break when i sits
	// at a column boundary, and returns the advanced cursor.
	put := func(i int, b byte) int {
		if breakLines && i%fullLine == c.lineLength {
			copy(out[i:], c.lineBreak)
			i += len(c.lineBreak)
		}
		out[i] = b
		return i + 1
	}

	encmap := &c.mapping.encmap
	alphabet := c.mapping.decmap[:64]

	i := 0
	position := 0

	if c.optimistic {
		for i < len(src) {
			m := encmap[src[i]]
			if m&0xc0 != 0 {
				break
			}
			position = put(position, alphabet[m])
			i++
		}
		// mark the end of the radix-free run unless it is unnecessary
		if i < len(src) || c.terminated {
			position = put(position, c.terminator)
		}
	}

	// radix characters go after the remaining data characters
	offset := position + len(src) - i
	if breakLines {
		soFar := i
		if c.optimistic {
			soFar++
		}
		offset -= c.extraLineBreakLen(soFar) // already counted in position
		offset += c.extraLineBreakLen(offset)
	}

	index := 0
	var radix byte
	for i < len(src) {
		m := encmap[src[i]]
		i++
		position = put(position, alphabet[m&0x3f])
		index++
		radix |= (m & 0xc0) >> (uint(index) * 2)
		if index == 3 {
			offset = put(offset, alphabet[radix])
			index = 0
			radix = 0
		}
	}
	if index != 0 {
		offset = put(offset, alphabet[radix])
	}

	if c.terminated {
		put(offset, c.terminator)
	}

	return out, nil
}

// stripBytes removes whitespace from src, copying only when whitespace is
// actually present.
func stripBytes(c *Codec, src []byte) []byte {
	var out []byte
	j := 0
	for i, b := range src {
		if c.codes[b] == codeWhitespace {
			if out == nil {
				out = make([]byte, len(src))
				copy(out, src[:i])
				j = i
			}
		} else if out != nil {
			out[j] = b
			j++
		}
	}
	if out == nil {
		return src
	}
	return out[:j]
}

// stripString removes whitespace from s and rejects non-ASCII characters.
func stripString(c *Codec, s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b > 0x7f {
			return nil, fmt.Errorf("radix4: non-ASCII character at index %d: %w", i, ErrInvalidCharacter)
		}
		if c.codes[b] == codeWhitespace {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// lookup resolves an encoded character to its alphabet index, rejecting
// terminators and anything outside the alphabet. i indexes the
// whitespace-stripped input and is only used for error context.
func (c *Codec) lookup(b byte, i int) (byte, error) {
	v := c.codes[b]
	if v >= 0 {
		return byte(v), nil
	}
	if b == c.terminator {
		return 0, fmt.Errorf("radix4: terminator at index %d: %w", i, ErrMisplacedTerminator)
	}
	return 0, fmt.Errorf("radix4: character %#02x at index %d: %w", b, i, ErrInvalidCharacter)
}

// blockDecode decodes a whitespace-stripped block encoding.
func (c *Codec) blockDecode(buf []byte) ([]byte, error) {
	length := len(buf)
	if c.terminated {
		if length == 0 || buf[length-1] != c.terminator {
			return nil, ErrMissingTerminator
		}
		length--
	}

	firstRadix := 0
	termLen := 0
	if c.optimistic {
		firstRadix = length
		for i := length - 1; i >= 0; i-- {
			if buf[i] == c.terminator {
				firstRadix = i
				termLen = 1
				break
			}
		}
		// successful optimism with redundant marker
		if termLen == 1 && firstRadix == length-1 {
			length = firstRadix
		}
	}

	var size int
	if firstRadix == length {
		size = length
	} else {
		dataLen := length - firstRadix - termLen
		if dataLen&3 == 1 {
			return nil, ErrInvalidLength
		}
		size = firstRadix + dataLen*3/4
	}
	out := make([]byte, size)

	decmap := &c.mapping.decmap

	// radix-free prefix decodes by direct lookup
	for i := 0; i < firstRadix; i++ {
		v, err := c.lookup(buf[i], i)
		if err != nil {
			return nil, err
		}
		out[i] = decmap[v]
	}

	// radix-coded region: data characters from start, radices from offset
	if firstRadix < size {
		start := firstRadix + termLen
		n := size - firstRadix
		offset := size + termLen // == start + data character count
		index := 2
		var radix byte
		for i := 0; i < n; i++ {
			index++
			if index == 3 {
				v, err := c.lookup(buf[offset], offset)
				if err != nil {
					return nil, err
				}
				radix = v
				index = 0
				offset++
			}
			v, err := c.lookup(buf[start+i], start+i)
			if err != nil {
				return nil, err
			}
			b := v&0x3f | radix<<uint((index+1)*2)&0xc0
			out[firstRadix+i] = decmap[b]
		}
	}

	return out, nil
}
