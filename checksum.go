package cusip

import "github.com/finwire/cusip/internal/alphabet"

// checkDigit computes the check digit for an 8-character payload.
//
// The caller must have already established that payload is exactly 8
// characters of the CUSIP alphabet; this is guaranteed by construction for
// every Payload value.
//
// Positions are 1-indexed within the full 9-character identifier, so the
// payload occupies positions 1–8. Values at even positions are doubled,
// every (possibly doubled) value is folded to the sum of its decimal
// digits, and the check digit is the modulus-10 complement of the total.
func checkDigit(payload string) int {
	sum := 0
	for i := 0; i < len(payload); i++ {
		v := alphabet.ToVal(payload[i])
		if i%2 == 1 {
			v *= 2
		}
		sum += v/10 + v%10
	}
	return (10 - sum%10) % 10
}

// ComputeCheckDigit computes the check digit for a raw 8-character payload
// string and returns it as an ASCII digit. It returns InvalidLengthError
// if payload is not 8 characters and InvalidCharacterError if any
// character is outside the CUSIP alphabet.
func ComputeCheckDigit(payload string) (byte, error) {
	p, err := ParsePayload(payload)
	if err != nil {
		return 0, err
	}
	// Check digits are in [0, 9], where the alphabet's values coincide
	// with the ASCII digits.
	return alphabet.ToChar(checkDigit(p.value)), nil
}
