package radix4

import "errors"

var (
	// ErrInvalidCharacter is returned when decoding encounters a byte that
	// is not an alphabet character, whitespace or a permitted terminator.
	ErrInvalidCharacter = errors.New("radix4: invalid character")

	// ErrMisplacedTerminator is returned when decoding finds a terminator
	// character somewhere a terminator cannot occur.
	ErrMisplacedTerminator = errors.New("radix4: misplaced terminator")

	// ErrMissingTerminator is returned by block decoding with a terminated
	// codec when the input does not end with the terminator.
	ErrMissingTerminator = errors.New("radix4: missing terminator")

	// ErrInvalidLength is returned by block decoding when the radix-coded
	// region has a length that no encoder could have produced.
	ErrInvalidLength = errors.New("radix4: invalid encoded length")

	// ErrClosed is returned by writes to an [Encoder] after Close.
	ErrClosed = errors.New("radix4: encoder closed")

	// ErrTooLong is returned when the encoded form of the input would not
	// fit in an int.
	ErrTooLong = errors.New("radix4: bytes too long")

	// Codec construction failures.
	ErrInvalidMapping    = errors.New("radix4: invalid mapping")
	ErrInvalidTerminator = errors.New("radix4: invalid terminator")
	ErrInvalidLineBreak  = errors.New("radix4: invalid line break")
	ErrInvalidWhitespace = errors.New("radix4: invalid whitespace")
)

var (
	errNilWriter = errors.New("radix4: writer is nil")
	errNilReader = errors.New("radix4: reader is nil")
)
