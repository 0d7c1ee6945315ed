package radix4

import "fmt"

// DefaultAlphabet is the output alphabet of [DefaultMapping]: '_', the
// digits, the upper case letters, the lower case letters and '-', in
// mapping order.
const DefaultAlphabet = "_0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

// defaultDecmap is the decoding table of the default mapping. Entry i is
// the raw byte represented by the mapped value i; the first 64 entries are
// the alphabet, which is what makes alphabet-only input survive encoding
// untouched. The remaining 192 entries hold the other byte values in a
// fixed hand-placed order rather than in ascending order.
var defaultDecmap = [256]byte{
	0x5f, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39, 0x41, 0x42, 0x43, 0x44, 0x45, // 00-0f
	0x46, 0x47, 0x48, 0x49, 0x4a, 0x4b, 0x4c, 0x4d, 0x4e, 0x4f, 0x50, 0x51, 0x52, 0x53, 0x54, 0x55, // 10-1f
	0x56, 0x57, 0x58, 0x59, 0x5a, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69, 0x6a, 0x6b, // 20-2f
	0x6c, 0x6d, 0x6e, 0x6f, 0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79, 0x7a, 0x2d, // 30-3f
	0x00, 0x25, 0x1f, 0x1e, 0x1d, 0x1c, 0x80, 0x81, 0x82, 0x83, 0x84, 0x01, 0x02, 0x03, 0x04, 0x05, // 40-4f
	0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, // 50-5f
	0x16, 0x17, 0x18, 0x19, 0x1a, 0x27, 0x5c, 0x3a, 0x85, 0x21, 0x86, 0x3e, 0x87, 0x88, 0x89, 0x8a, // 60-6f
	0x3c, 0x8b, 0x23, 0x8c, 0x28, 0x22, 0x5d, 0x24, 0x8d, 0x8e, 0x8f, 0x90, 0x2a, 0x91, 0x92, 0x20, // 70-7f
	0x2c, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98, 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e, 0x9f, 0x7f, 0x1b, // 80-8f
	0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xab, 0xac, 0xad, 0xae, 0xaf, // 90-9f
	0xb0, 0xb1, 0xb2, 0xb3, 0xb4, 0x40, 0xb5, 0x5e, 0xb6, 0x26, 0xb7, 0x60, 0xb8, 0xb9, 0xba, 0xbb, // a0-af
	0x5b, 0xbc, 0xbd, 0xbe, 0x2b, 0x29, 0x7d, 0x2f, 0xbf, 0xc0, 0xc1, 0xc2, 0xc3, 0xc4, 0xc5, 0x7c, // b0-bf
	0x2e, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xcb, 0xcc, 0xcd, 0xce, 0xcf, 0xd0, 0xd1, 0xd2, 0xd3, 0xd4, // c0-cf
	0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xdb, 0xdc, 0xdd, 0xde, 0xdf, 0xe0, 0xe1, 0xe2, 0xe3, 0xe4, // d0-df
	0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea, 0xeb, 0xec, 0xed, 0x3d, 0xee, 0xef, 0xf0, 0xf1, 0xf2, 0xf3, // e0-ef
	0x7b, 0xf4, 0xf5, 0xf6, 0xf7, 0x3f, 0xf8, 0x3b, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff, 0x7e, // f0-ff
}

// A Mapping is a bijection on byte values that governs the transformation
// of binary data prior to encoding. Raw bytes whose mapped value lies in
// [0, 64) are preserved verbatim by the encoding. Mappings are immutable
// and safe for concurrent use.
type Mapping struct {
	decmap [256]byte // mapped value -> raw byte; entries 0..63 are the alphabet
	encmap [256]byte // raw byte -> mapped value
}

// initialized as a variable rather than in init so the canonical codecs,
// whose initializers depend on it, observe a fully derived mapping
var defaultMapping = func() *Mapping {
	m := &Mapping{decmap: defaultDecmap}
	m.derive()
	return m
}()

// DefaultMapping returns the mapping used by [Stream] and [Block]: the
// alphabet is [DefaultAlphabet] and the non-alphabet bytes follow in a fixed
// hand-placed order, so it differs from NewMapping(DefaultAlphabet).
func DefaultMapping() *Mapping {
	return defaultMapping
}

// NewMapping builds a mapping from a 64-character alphabet. The alphabet
// characters occupy mapped values 0..63 in the given order; the remaining
// byte values fill the rest of the permutation in ascending order.
func NewMapping(alphabet string) (*Mapping, error) {
	if len(alphabet) != 64 {
		return nil, fmt.Errorf("radix4: expected 64 alphabet characters, got %d: %w", len(alphabet), ErrInvalidMapping)
	}
	m := new(Mapping)
	var used [256]bool
	for i := 0; i < 64; i++ {
		c := alphabet[i]
		if c > 0x7f {
			return nil, fmt.Errorf("radix4: non-ASCII alphabet character %#02x: %w", c, ErrInvalidMapping)
		}
		if used[c] {
			return nil, fmt.Errorf("radix4: duplicate alphabet character %q: %w", c, ErrInvalidMapping)
		}
		used[c] = true
		m.decmap[i] = c
	}
	next := 64
	for v := 0; v < 256; v++ {
		if !used[v] {
			m.decmap[next] = byte(v)
			next++
		}
	}
	m.derive()
	return m, nil
}

// NewMappingFromTable builds a mapping from a full 256-entry decoding
// table: entry i is the raw byte that the mapped value i stands for. The
// table must be a permutation of the byte values and its first 64 entries,
// the alphabet, must be ASCII.
func NewMappingFromTable(table []byte) (*Mapping, error) {
	if len(table) != 256 {
		return nil, fmt.Errorf("radix4: expected 256 table entries, got %d: %w", len(table), ErrInvalidMapping)
	}
	var seen [256]bool
	for _, v := range table {
		if seen[v] {
			return nil, fmt.Errorf("radix4: duplicate table value %#02x: %w", v, ErrInvalidMapping)
		}
		seen[v] = true
	}
	for i := 0; i < 64; i++ {
		if table[i] > 0x7f {
			return nil, fmt.Errorf("radix4: non-ASCII alphabet character %#02x: %w", table[i], ErrInvalidMapping)
		}
	}
	m := new(Mapping)
	copy(m.decmap[:], table)
	m.derive()
	return m, nil
}

func (m *Mapping) derive() {
	for i := 0; i < 256; i++ {
		m.encmap[m.decmap[i]] = byte(i)
	}
}

// Alphabet returns the 64 characters this mapping encodes to, in mapping
// order.
func (m *Mapping) Alphabet() string {
	return string(m.decmap[:64])
}

// DecodingTable returns a copy of the permutation that defines this
// mapping, suitable for [NewMappingFromTable].
func (m *Mapping) DecodingTable() []byte {
	table := make([]byte, 256)
	copy(table, m.decmap[:])
	return table
}

// IsRadixFree reports whether b is preserved verbatim by the encoding,
// that is, whether its mapped value has no radix bits.
func (m *Mapping) IsRadixFree(b byte) bool {
	return m.encmap[b]&0xc0 == 0
}

// RadixFreeLen returns the length of the longest prefix of p consisting
// entirely of radix-free bytes.
func (m *Mapping) RadixFreeLen(p []byte) int {
	for i, b := range p {
		if m.encmap[b]&0xc0 != 0 {
			return i
		}
	}
	return len(p)
}

// Equal reports whether two mappings define the same bijection.
func (m *Mapping) Equal(o *Mapping) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.decmap == o.decmap
}
