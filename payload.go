package cusip

import "github.com/finwire/cusip/internal/alphabet"

// payloadLength is the number of characters preceding the check digit.
const payloadLength = 8

// Payload is an immutable 8-character CUSIP payload: the 6-character
// issuer field followed by the 2-character issue field.
//
// A Payload exists only after alphabet validation. It is produced by
// ParsePayload or by CUSIP.Payload, never constructed directly, so any
// Payload value may be passed to Build without re-checking its
// characters.
type Payload struct {
	value string
}

// newPayload creates a Payload from an already-validated string.
// The caller must ensure s is 8 alphabet-valid characters.
func newPayload(s string) Payload {
	return Payload{value: s}
}

// ParsePayload validates and creates a Payload from a raw string.
// It returns InvalidLengthError if s is not exactly 8 characters, or
// InvalidCharacterError (1-indexed) for the first character outside the
// CUSIP alphabet.
func ParsePayload(s string) (Payload, error) {
	if len(s) != payloadLength {
		return Payload{}, InvalidLengthError{Actual: len(s)}
	}
	for i := 0; i < len(s); i++ {
		if !alphabet.IsValid(s[i]) {
			return Payload{}, InvalidCharacterError{Position: i + 1}
		}
	}
	return Payload{value: s}, nil
}

// String returns the raw 8-character payload string.
func (p Payload) String() string {
	return p.value
}

// Issuer returns the 6-character issuer field, or "" for the zero
// Payload.
func (p Payload) Issuer() string {
	if p.value == "" {
		return ""
	}
	return p.value[:6]
}

// Issue returns the 2-character issue field, or "" for the zero Payload.
func (p Payload) Issue() string {
	if p.value == "" {
		return ""
	}
	return p.value[6:]
}
