package radix4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalCodecs(t *testing.T) {
	s := Stream()
	require.True(t, s.Streaming())
	require.True(t, s.Optimistic())
	require.False(t, s.Terminated())
	require.Equal(t, byte('.'), s.Terminator())
	require.Equal(t, 0, s.LineLength())
	require.Equal(t, "\n", s.LineBreak())
	require.Equal(t, "\t\n\r ", s.Whitespace())
	require.Equal(t, 64, s.BufferSize())
	require.True(t, s.Mapping().Equal(DefaultMapping()))

	b := Block()
	require.False(t, b.Streaming())
	require.True(t, b.Optimistic())
}

func TestConfigure(t *testing.T) {
	c, err := Stream().Configure(
		WithTerminated(true),
		WithLineLength(76),
	)
	require.NoError(t, err)
	require.True(t, c.Terminated())
	require.Equal(t, 76, c.LineLength())
	// untouched parameters carry over
	require.True(t, c.Streaming())
	require.True(t, c.Optimistic())

	// the source codec is unchanged
	require.False(t, Stream().Terminated())
}

func TestOptionNormalization(t *testing.T) {
	c, err := NewCodec(WithBufferSize(-5), WithLineLength(-1))
	require.NoError(t, err)
	require.Equal(t, 64, c.BufferSize())
	require.Equal(t, 0, c.LineLength())

	c, err = NewCodec(WithWhitespace(" \n"))
	require.NoError(t, err)
	require.Equal(t, "\n ", c.Whitespace(), "whitespace is normalized to ascending order")
}

func TestBuildValidation(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want error
	}{
		{"terminator in alphabet", []Option{WithTerminator('A')}, ErrInvalidTerminator},
		{"terminator is whitespace", []Option{WithTerminator(' ')}, ErrInvalidTerminator},
		{"non-ASCII terminator", []Option{WithTerminator(0x80)}, ErrInvalidTerminator},
		{"empty line break", []Option{WithLineBreak("")}, ErrInvalidLineBreak},
		{"non-whitespace line break", []Option{WithLineBreak("x")}, ErrInvalidLineBreak},
		{"line break outside whitespace set", []Option{WithWhitespace(" "), WithLineBreak("\n")}, ErrInvalidLineBreak},
		{"empty whitespace", []Option{WithWhitespace("")}, ErrInvalidWhitespace},
		{"duplicate whitespace", []Option{WithWhitespace("  \n")}, ErrInvalidWhitespace},
		{"non-ASCII whitespace", []Option{WithWhitespace("\n\x80")}, ErrInvalidWhitespace},
		{"whitespace collides with alphabet", []Option{WithWhitespace("\nA")}, ErrInvalidWhitespace},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCodec(tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCustomTerminatorAndWhitespace(t *testing.T) {
	c, err := NewCodec(WithTerminator('!'), WithTerminated(true))
	require.NoError(t, err)
	enc, err := c.EncodeToString([]byte("ABC123"))
	require.NoError(t, err)
	require.Equal(t, "ABC123!!", enc)

	dec, err := c.DecodeString(enc)
	require.NoError(t, err)
	require.Equal(t, []byte("ABC123"), dec)
}

func TestCodecEqual(t *testing.T) {
	assert.True(t, Stream().Equal(Stream()))
	assert.False(t, Stream().Equal(Block()))
	assert.False(t, Stream().Equal(nil))

	a, err := NewCodec()
	require.NoError(t, err)
	assert.True(t, a.Equal(Stream()))

	// buffer size and whitespace cannot influence encoded output
	b, err := NewCodec(WithBufferSize(128), WithWhitespace(" \n"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	// line break only matters when line breaks are on
	lb1, err := NewCodec(WithLineBreak("\r\n"))
	require.NoError(t, err)
	assert.True(t, a.Equal(lb1))
	lb2, err := NewCodec(WithLineLength(10), WithLineBreak("\r\n"))
	require.NoError(t, err)
	lb3, err := NewCodec(WithLineLength(10))
	require.NoError(t, err)
	assert.False(t, lb2.Equal(lb3))

	// terminator only matters when terminated or optimistic
	t1, err := NewCodec(WithOptimistic(false), WithTerminator(','))
	require.NoError(t, err)
	t2, err := NewCodec(WithOptimistic(false))
	require.NoError(t, err)
	assert.True(t, t1.Equal(t2))
	t3, err := NewCodec(WithTerminator(','))
	require.NoError(t, err)
	assert.False(t, t3.Equal(a))
}

func TestEncodedLen(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		in   string
		want int
	}{
		{"empty", nil, "", 0},
		{"radix free", nil, "ABC123", 6},
		{"radix free terminated", []Option{WithTerminated(true)}, "ABC123", 8},
		{"mixed", nil, "Hello World!", 16},
		{"no optimism", []Option{WithOptimistic(false)}, "ABC123", 8},
		{"empty terminated", []Option{WithTerminated(true)}, "", 2},
		{"empty terminated plain", []Option{WithTerminated(true), WithOptimistic(false)}, "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCodec(tc.opts...)
			require.NoError(t, err)
			n, err := c.EncodedLen([]byte(tc.in))
			require.NoError(t, err)
			require.Equal(t, tc.want, n)

			enc, err := c.EncodeToBytes([]byte(tc.in))
			require.NoError(t, err)
			require.Len(t, enc, n)
		})
	}
}

func TestEncodedLenLineBreaks(t *testing.T) {
	c, err := NewCodec(WithLineLength(4), WithLineBreak("\r\n"))
	require.NoError(t, err)
	in := []byte("ABCDEFGH") // 8 radix-free chars, breaks after 4 and 8... but never trailing
	n, err := c.EncodedLen(in)
	require.NoError(t, err)
	// 8 chars, one break after the first 4: (8-1)/4 = 1 break of 2 bytes
	require.Equal(t, 10, n)

	enc, err := c.EncodeToString(in)
	require.NoError(t, err)
	require.Equal(t, "ABCD\r\nEFGH", enc)
}
