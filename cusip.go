// Package cusip validates, builds, and repairs CUSIP identifiers.
//
// A CUSIP is a fixed-width 9-character code identifying a North American
// security: an 8-character payload (6-character issuer field, 2-character
// issue field) followed by a single decimal check digit derived from the
// payload. The allowed alphabet is digits 0-9, uppercase letters A-Z, and
// the special characters '*', '@', '#'.
//
// The package is designed to be:
//   - Immutable and concurrency-safe (no mutexes needed).
//   - Pure: validation has no side effects and no global state.
//   - Explicit about failure: every defect is a typed, matchable error.
//
// # Quick Start
//
//	c, err := cusip.Parse("037833100")        // validated identifier
//	fixed, err := cusip.FromPayload("03783310") // compute the check digit
//
// # Repair
//
// When [Parse] returns [IncorrectCheckDigitError], the payload is known to
// be structurally sound and the identifier can be repaired by recomputing
// its check digit: parse the first 8 characters with [ParsePayload] and
// pass the result to [Build].
package cusip

import (
	"database/sql/driver"
	"fmt"

	"github.com/finwire/cusip/internal/alphabet"
)

// length is the fixed width of a CUSIP identifier.
const length = 9

// CUSIP is an immutable, validated 9-character identifier.
//
// A CUSIP exists only after successful validation or repair: it is
// produced by Parse, FromPayload, Build, or the unmarshal/scan methods,
// all of which validate their input. CUSIP values are safe for concurrent
// use because they are immutable.
type CUSIP struct {
	value string
}

// Scan implements [database/sql.Scanner] so a CUSIP can be read directly
// from a database column. The column value must be a string or []byte
// holding a valid 9-character identifier.
func (c *CUSIP) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cusip: cannot scan %T into CUSIP", src)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements [database/sql/driver.Valuer] so a CUSIP can be written
// directly to a database column as a string.
func (c CUSIP) Value() (driver.Value, error) {
	if c.value == "" {
		return nil, nil
	}
	return c.String(), nil
}

// MarshalJSON implements [encoding/json.Marshaler] so a CUSIP serializes
// as a JSON string (e.g. "037833100") rather than a struct.
func (c CUSIP) MarshalJSON() ([]byte, error) {
	if c.value == "" {
		return []byte("null"), nil
	}
	return []byte(`"` + c.value + `"`), nil
}

// UnmarshalJSON implements [encoding/json.Unmarshaler] so a CUSIP can be
// deserialized from a JSON string.
func (c *CUSIP) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Strip surrounding quotes.
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (c CUSIP) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *CUSIP) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse parses a candidate string and returns a validated CUSIP.
//
// Defects are reported in a fixed order, one per call: a wrong length is
// InvalidLengthError; the first character outside the alphabet is
// InvalidCharacterError with its 1-indexed position (the check-digit
// position must hold a decimal digit, so a letter or special character
// there is an InvalidCharacterError at position 9, not a checksum
// mismatch); a structurally valid input whose check digit does not match
// the payload is IncorrectCheckDigitError. Structural defects are always
// reported before any checksum comparison.
func Parse(s string) (CUSIP, error) {
	if len(s) != length {
		return CUSIP{}, InvalidLengthError{Actual: len(s)}
	}
	for i := 0; i < length; i++ {
		if !alphabet.IsValid(s[i]) {
			return CUSIP{}, InvalidCharacterError{Position: i + 1}
		}
	}
	if !alphabet.IsDigit(s[length-1]) {
		return CUSIP{}, InvalidCharacterError{Position: length}
	}

	expected := checkDigit(s[:payloadLength])
	was := int(s[length-1] - '0')
	if was != expected {
		return CUSIP{}, IncorrectCheckDigitError{Was: was, Expected: expected}
	}

	return CUSIP{value: s}, nil
}

// Valid reports whether s parses as a valid CUSIP.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Build returns the CUSIP formed by appending the computed check digit to
// p. It cannot fail: a Payload is alphabet-valid by construction, and
// every computed check digit yields a valid identifier.
//
// The zero Payload yields the zero CUSIP.
func Build(p Payload) CUSIP {
	if p.value == "" {
		return CUSIP{}
	}
	return CUSIP{value: p.value + string(alphabet.ToChar(checkDigit(p.value)))}
}

// FromPayload validates a raw 8-character payload string and returns the
// CUSIP formed by appending its computed check digit. It returns the same
// errors as ParsePayload.
//
// This is the repair entry point: given an input rejected with
// IncorrectCheckDigitError, FromPayload on its first 8 characters yields
// the corrected identifier.
func FromPayload(s string) (CUSIP, error) {
	p, err := ParsePayload(s)
	if err != nil {
		return CUSIP{}, err
	}
	return Build(p), nil
}

// String returns the full 9-character identifier, exactly as validated.
func (c CUSIP) String() string {
	return c.value
}

// Payload returns the 8-character payload preceding the check digit.
// The zero CUSIP returns the zero Payload.
func (c CUSIP) Payload() Payload {
	if c.value == "" {
		return Payload{}
	}
	return newPayload(c.value[:payloadLength])
}

// Issuer returns the 6-character issuer field, or "" for the zero CUSIP.
func (c CUSIP) Issuer() string {
	if c.value == "" {
		return ""
	}
	return c.value[:6]
}

// Issue returns the 2-character issue field, or "" for the zero CUSIP.
func (c CUSIP) Issue() string {
	if c.value == "" {
		return ""
	}
	return c.value[6:payloadLength]
}

// CheckDigit returns the check digit as an integer in [0, 9], or -1 for
// the zero CUSIP.
func (c CUSIP) CheckDigit() int {
	if c.value == "" {
		return -1
	}
	return int(c.value[length-1] - '0')
}

// IsCINS reports whether the identifier is in the CINS (CUSIP
// International Numbering System) range, indicated by a letter in the
// first position. The zero CUSIP reports false.
func (c CUSIP) IsCINS() bool {
	return c.value != "" && c.value[0] >= 'A' && c.value[0] <= 'Z'
}
