// Package radix4 implements a binary-to-text codec over the 64-character
// alphabet [-_A-Za-z0-9].
//
// Unlike base64, the encoding is built around a 256<->256 byte permutation
// whose first 64 values are the alphabet itself. A byte whose permuted value
// fits in six bits (a "radix-free" byte) encodes as exactly itself, so input
// that already consists of alphabet characters passes through nearly (or, in
// optimistic mode, completely) unchanged. The two high "radix" bits of other
// bytes are collected three at a time into extra alphabet characters.
//
// Two output formats are supported. In stream format a radix character is
// interleaved ahead of every three data characters, so output can be decoded
// incrementally as it arrives. In block format all radix characters are
// grouped after the data characters, which keeps runs of preserved input
// contiguous but requires the whole block before decoding.
//
// In optimistic mode the encoder assumes input is radix-free and emits bytes
// verbatim until the first byte that is not, marking the boundary with a
// terminator character (default '.'). Encodings may additionally be
// self-terminated, and may have line breaks inserted at a fixed column.
// Decoders skip whitespace wherever it appears.
//
// The package-level [Stream] and [Block] codecs cover common use:
//
//	s, _ := radix4.Stream().EncodeToString([]byte("Hello World!")) // "Hello.F-Wo_rldFe"
//
// Alternative codecs are built with [NewCodec] or derived from an existing
// one with [Codec.Configure]. Codecs are immutable and safe for concurrent
// use; the incremental [Encoder] and [Decoder] are single-owner.
package radix4
