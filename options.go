package radix4

import (
	"fmt"
	"sort"
)

// config collects the mutable parameters from which a [Codec] is built.
type config struct {
	mapping    *Mapping
	bufferSize int
	lineLength int
	lineBreak  string
	whitespace string
	streaming  bool
	optimistic bool
	terminated bool
	terminator byte
}

func defaultConfig(streaming bool) config {
	return config{
		mapping:    defaultMapping,
		bufferSize: defaultBufferSize,
		lineLength: 0,
		lineBreak:  defaultLineBreak,
		whitespace: defaultWhitespace,
		streaming:  streaming,
		optimistic: true,
		terminated: false,
		terminator: defaultTerminator,
	}
}

// An Option adjusts one parameter of a codec under construction.
type Option func(*config)

// WithMapping selects the byte permutation used by the codec. A nil
// mapping selects [DefaultMapping].
func WithMapping(m *Mapping) Option {
	return func(cfg *config) {
		if m == nil {
			m = defaultMapping
		}
		cfg.mapping = m
	}
}

// WithBufferSize sets the number of bytes used to buffer stream encoding.
// A non-positive size selects the default (64). The effective buffer is
// rounded up to a multiple of 4.
func WithBufferSize(size int) Option {
	return func(cfg *config) {
		if size < 1 {
			size = defaultBufferSize
		}
		cfg.bufferSize = size
	}
}

// WithLineLength sets the number of characters output between line
// breaks. A non-positive length disables line breaks. Whitespace is
// skipped during decoding irrespective of this setting.
func WithLineLength(length int) Option {
	return func(cfg *config) {
		if length < 1 {
			length = 0
		}
		cfg.lineLength = length
	}
}

// WithLineBreak sets the character sequence used to delimit lines. It
// must be non-empty and consist only of the codec's whitespace
// characters.
func WithLineBreak(lineBreak string) Option {
	return func(cfg *config) { cfg.lineBreak = lineBreak }
}

// WithWhitespace sets the characters decoders silently skip. The set
// must be non-empty ASCII with no duplicates and no overlap with the
// alphabet or the terminator.
func WithWhitespace(whitespace string) Option {
	return func(cfg *config) { cfg.whitespace = whitespace }
}

// WithStreaming selects stream format (radix characters interleaved for
// incremental decoding) or block format (radix characters grouped at the
// tail).
func WithStreaming(streaming bool) Option {
	return func(cfg *config) { cfg.streaming = streaming }
}

// WithOptimistic controls whether encoding initially assumes input to be
// radix-free, preserving it verbatim up to the first byte that is not.
func WithOptimistic(optimistic bool) Option {
	return func(cfg *config) { cfg.optimistic = optimistic }
}

// WithTerminated controls whether encoded output is explicitly
// terminated so that its end can be recognized in surrounding data.
func WithTerminated(terminated bool) Option {
	return func(cfg *config) { cfg.terminated = terminated }
}

// WithTerminator sets the termination character. It must be ASCII and
// must collide with neither the alphabet nor the whitespace set.
func WithTerminator(terminator byte) Option {
	return func(cfg *config) { cfg.terminator = terminator }
}

// NewCodec builds a codec from the standard streaming configuration with
// the given options applied, validating the combined parameters.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg := defaultConfig(true)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.codec()
}

// Configure derives a new codec from c with the given options applied on
// top of c's parameters.
func (c *Codec) Configure(opts ...Option) (*Codec, error) {
	cfg := config{
		mapping:    c.mapping,
		bufferSize: c.bufferSize,
		lineLength: c.lineLength,
		lineBreak:  c.lineBreak,
		whitespace: c.whitespace,
		streaming:  c.streaming,
		optimistic: c.optimistic,
		terminated: c.terminated,
		terminator: c.terminator,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.codec()
}

// codec validates cfg and freezes it into an immutable Codec.
func (cfg config) codec() (*Codec, error) {
	if cfg.mapping == nil {
		cfg.mapping = defaultMapping
	}

	ws, err := normalizeWhitespace(cfg.whitespace)
	if err != nil {
		return nil, err
	}

	c := &Codec{
		mapping:    cfg.mapping,
		whitespace: ws,
		lineLength: cfg.lineLength,
		lineBreak:  cfg.lineBreak,
		bufferSize: cfg.bufferSize,
		streaming:  cfg.streaming,
		optimistic: cfg.optimistic,
		terminated: cfg.terminated,
		terminator: cfg.terminator,
	}

	for i := range c.codes {
		c.codes[i] = codeInvalid
	}
	for i := 0; i < 64; i++ {
		c.codes[c.mapping.decmap[i]] = int8(i)
	}
	for i := 0; i < len(ws); i++ {
		w := ws[i]
		if c.codes[w] != codeInvalid {
			return nil, fmt.Errorf("radix4: whitespace %q collides with alphabet: %w", w, ErrInvalidWhitespace)
		}
		c.codes[w] = codeWhitespace
	}

	if c.terminator > 0x7f || c.codes[c.terminator] != codeInvalid {
		return nil, fmt.Errorf("radix4: terminator %q: %w", c.terminator, ErrInvalidTerminator)
	}

	if len(c.lineBreak) == 0 {
		return nil, fmt.Errorf("radix4: empty line break: %w", ErrInvalidLineBreak)
	}
	for i := 0; i < len(c.lineBreak); i++ {
		b := c.lineBreak[i]
		if b > 0x7f || c.codes[b] != codeWhitespace {
			return nil, fmt.Errorf("radix4: line break character %q is not whitespace: %w", b, ErrInvalidLineBreak)
		}
	}
	c.lineBreakBytes = []byte(c.lineBreak)

	return c, nil
}

// normalizeWhitespace sorts the whitespace set into ascending order,
// rejecting non-ASCII characters and duplicates.
func normalizeWhitespace(ws string) (string, error) {
	if len(ws) == 0 {
		return "", fmt.Errorf("radix4: empty whitespace set: %w", ErrInvalidWhitespace)
	}
	b := []byte(ws)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i, w := range b {
		if w > 0x7f {
			return "", fmt.Errorf("radix4: non-ASCII whitespace character %#02x: %w", w, ErrInvalidWhitespace)
		}
		if i > 0 && w == b[i-1] {
			return "", fmt.Errorf("radix4: duplicate whitespace character %q: %w", w, ErrInvalidWhitespace)
		}
	}
	return string(b), nil
}
