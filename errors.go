package cusip

import "fmt"

// The validation error taxonomy. Parse returns exactly one of these three
// types per failure; they are mutually exclusive and carry enough detail
// for a caller to decide whether an input is discardable, reportable, or
// repairable. Match with errors.As.

// InvalidLengthError is returned when the input is not exactly 9
// characters long. Inputs with the wrong length are never repairable.
type InvalidLengthError struct {
	// Actual is the length of the rejected input, in bytes.
	Actual int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("cusip: invalid length %d, expected 9", e.Actual)
}

// InvalidCharacterError is returned when a character falls outside the
// CUSIP alphabet (digits, uppercase letters, '*', '@', '#'), or when the
// check-digit position holds an alphabet character that is not a decimal
// digit. Inputs with invalid characters are never repairable.
type InvalidCharacterError struct {
	// Position is the 1-indexed position of the offending character.
	Position int
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("cusip: invalid character at position %d", e.Position)
}

// IncorrectCheckDigitError is returned when the input is structurally
// valid but its check digit does not match the value computed from the
// payload. This is the only defect Build can repair.
type IncorrectCheckDigitError struct {
	// Was is the check digit present in the input.
	Was int
	// Expected is the check digit the payload requires.
	Expected int
}

func (e IncorrectCheckDigitError) Error() string {
	return fmt.Sprintf("cusip: incorrect check digit %d, expected %d", e.Was, e.Expected)
}
