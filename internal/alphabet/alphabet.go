// Package alphabet provides the 39-character CUSIP character set.
//
// The alphabet maps digits 0-9 to values 0–9, uppercase letters A-Z to
// 10–35, and the special characters '*', '@', '#' to 36–38. It is used
// internally by the check-digit logic to convert identifier characters
// into the numeric values the modulus-10 transform operates on.
package alphabet

import "fmt"

// Size is the number of characters in the CUSIP alphabet.
const Size = 39

// chars is the ordered CUSIP character set.
const chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ*@#"

// charToVal maps each allowed byte to its numeric value.
var charToVal [256]int

func init() {
	for i := range charToVal {
		charToVal[i] = -1
	}
	for i, c := range chars {
		charToVal[c] = i
	}
}

// ToChar converts a numeric value (0–38) to its CUSIP character.
// It panics if val is out of range.
func ToChar(val int) byte {
	if val < 0 || val >= Size {
		panic(fmt.Sprintf("alphabet: value %d out of range [0, %d)", val, Size))
	}
	return chars[val]
}

// ToVal converts a CUSIP character to its numeric value (0–38).
// It returns -1 if the character is not in the alphabet. The mapping is
// case-sensitive: lowercase letters are not in the alphabet.
func ToVal(c byte) int {
	return charToVal[c]
}

// IsValid reports whether c is a valid CUSIP character.
func IsValid(c byte) bool {
	return charToVal[c] >= 0
}

// IsDigit reports whether c is a decimal digit. The check-digit position
// of an identifier must satisfy this, not merely IsValid.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
