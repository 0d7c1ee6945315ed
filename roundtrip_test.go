package radix4

import (
	"bytes"
	randv2 "math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRand(seed byte) *randv2.Rand {
	return randv2.New(randv2.NewChaCha8([32]byte(bytes.Repeat([]byte{seed}, 32))))
}

func randomBytes(r *randv2.Rand, n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(r.UintN(256))
	}
	return p
}

// isEncodingByte reports whether b may legally occur in output of c.
func isEncodingByte(c *Codec, b byte) bool {
	if c.codes[b] >= 0 || b == c.terminator {
		return true
	}
	return strings.IndexByte(c.lineBreak, b) >= 0
}

func TestRoundTripRandomConfigs(t *testing.T) {
	r := testRand(0x42)
	for i := 0; i < 500; i++ {
		opts := []Option{
			WithStreaming(r.UintN(2) == 0),
			WithOptimistic(r.UintN(2) == 0),
			WithTerminated(r.UintN(2) == 0),
			WithBufferSize(int(r.UintN(100))),
		}
		if r.UintN(2) == 0 {
			opts = append(opts, WithLineLength(1+int(r.UintN(50))))
		}
		c, err := NewCodec(opts...)
		require.NoError(t, err)

		in := randomBytes(r, int(r.UintN(1<<r.UintN(11))))

		enc, err := c.EncodeToBytes(in)
		require.NoError(t, err)

		n, err := c.EncodedLen(in)
		require.NoError(t, err)
		require.Len(t, enc, n, "length formula (streaming=%v optimistic=%v terminated=%v line=%d len=%d)",
			c.Streaming(), c.Optimistic(), c.Terminated(), c.LineLength(), len(in))

		for _, b := range enc {
			require.True(t, isEncodingByte(c, b), "alphabet discipline: %#02x", b)
		}
		require.Equal(t, strings.TrimSpace(string(enc)), string(enc), "no surrounding whitespace")

		dec, err := c.DecodeBytes(enc)
		require.NoError(t, err)
		require.Equal(t, in, dec)

		dec, err = c.DecodeString(string(enc))
		require.NoError(t, err)
		require.Equal(t, in, dec)
	}
}

func TestRoundTripTerminatedWithSuffix(t *testing.T) {
	// a terminated encoding is self-delimiting within surrounding data
	r := testRand(0x07)
	for _, streaming := range []bool{true, false} {
		c, err := NewCodec(WithStreaming(streaming), WithTerminated(true))
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			in := randomBytes(r, int(r.UintN(256)))
			enc, err := c.EncodeToString(in)
			require.NoError(t, err)

			if streaming {
				var suffix strings.Builder
				for r.UintN(2) == 0 {
					suffix.WriteByte(byte(32 + r.UintN(96)))
				}
				enc += suffix.String()
			}

			dec, err := c.DecodeString(enc)
			require.NoError(t, err)
			require.Equal(t, in, dec)
		}
	}
}

func TestRoundTripIdempotence(t *testing.T) {
	// alphabet-only input is its own encoding under optimistic codecs
	r := testRand(0x11)
	for _, c := range []*Codec{Stream(), Block()} {
		for i := 0; i < 100; i++ {
			in := make([]byte, r.UintN(200))
			for j := range in {
				in[j] = DefaultAlphabet[r.UintN(64)]
			}
			enc, err := c.EncodeToBytes(in)
			require.NoError(t, err)
			require.Equal(t, in, enc)
		}
	}
}

func TestRoundTripCustomMapping(t *testing.T) {
	// rotate the alphabet so different characters are preserved
	alphabet := DefaultAlphabet[13:] + DefaultAlphabet[:13]
	m, err := NewMapping(alphabet)
	require.NoError(t, err)

	r := testRand(0x23)
	for _, streaming := range []bool{true, false} {
		c, err := NewCodec(WithStreaming(streaming), WithMapping(m))
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			in := randomBytes(r, int(r.UintN(512)))
			enc, err := c.EncodeToBytes(in)
			require.NoError(t, err)
			dec, err := c.DecodeBytes(enc)
			require.NoError(t, err)
			require.Equal(t, in, dec)
		}
	}
}

func TestRoundTripLarge(t *testing.T) {
	raw := randomBytes(testRand(0xBA), 1<<20)

	for _, c := range []*Codec{Stream(), Block()} {
		var encoded bytes.Buffer
		e := c.NewEncoder(&encoded)
		_, err := e.Write(raw)
		require.NoError(t, err)
		require.NoError(t, e.Close())

		var decoded bytes.Buffer
		_, err = decoded.ReadFrom(c.NewDecoder(bytes.NewReader(encoded.Bytes())))
		require.NoError(t, err)
		require.Equal(t, raw, decoded.Bytes())
	}
}

func BenchmarkEncode(b *testing.B) {
	raw := randomBytes(testRand(0x99), 1<<20)
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for b.Loop() {
		_, err := Stream().EncodeToBytes(raw)
		require.NoError(b, err)
	}
}

func BenchmarkDecode(b *testing.B) {
	raw := randomBytes(testRand(0x99), 1<<20)
	enc, err := Block().EncodeToBytes(raw)
	require.NoError(b, err)
	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for b.Loop() {
		_, err := Block().DecodeBytes(enc)
		require.NoError(b, err)
	}
}
