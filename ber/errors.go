package ber

import "fmt"

// Kind names the category of error a Decoder or Encoder can raise. It mirrors
// the error taxonomy rather than exposing distinct Go error types per cause,
// so callers can match on Kind without a long type switch.
type Kind string

const (
	// KindMalformed covers truncated TLVs, bad length forms, and structurally
	// invalid payloads (e.g. an OID with fewer than two components).
	KindMalformed Kind = "decode.malformed"
	// KindInvariant covers encoder misuse: Output called with an unfinalised
	// constructed context, or Leave called without a matching Enter.
	KindInvariant Kind = "encode.invariant"
)

// Error is returned by every Decoder and Encoder operation that can fail. It
// carries the byte offset of the failure so a caller can report where in the
// datagram decoding went wrong.
type Error struct {
	Kind   Kind
	Offset int
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("ber: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("ber: %s at offset %d: %v", e.Kind, e.Offset, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func malformed(offset int, cause error) error {
	return &Error{Kind: KindMalformed, Offset: offset, Cause: cause}
}

func invariant(cause error) error {
	return &Error{Kind: KindInvariant, Cause: cause}
}
