package coffar

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrFieldOverflow is returned when the text form of a header field does
	// not fit its fixed width. Nothing is ever truncated.
	ErrFieldOverflow = errors.NewKind("ar: header field %s value %q exceeds %d bytes")

	// ErrInvalidName is returned for a member name that cannot be written
	// without being mistaken for a reserved name or a long-name reference.
	ErrInvalidName = errors.NewKind("ar: invalid member name %q: %s")

	// ErrInvalidSymbol is returned for a symbol name the linker members
	// cannot represent.
	ErrInvalidSymbol = errors.NewKind("ar: member %q: symbol %q contains a NUL byte")

	// ErrInvalidHeader indicates a member header that cannot be decoded.
	ErrInvalidHeader = errors.NewKind("ar: invalid member header: %s")

	// ErrOffsetOverflow is returned when a member starts beyond what the
	// 32-bit linker member offsets can address.
	ErrOffsetOverflow = errors.NewKind("ar: member %q at offset %d is not addressable by the symbol index")

	// ErrTooManyMembers is returned when the member index cannot refer to
	// every member with its 16-bit positions.
	ErrTooManyMembers = errors.NewKind("ar: %d members exceed the member index limit of %d")

	// ErrWriterFlushed is returned by Reserve and Flush once Flush has run.
	ErrWriterFlushed = errors.NewKind("ar: writer already flushed")
)
