// pkg/crypto/dangerous.go

package crypto

import "strings"

// startingChars are the only bytes that can open a dangerous pattern.
const startingChars = "<&"

// IsDangerousString reports whether s contains a markup or script lead-in:
// '<' followed by an ASCII letter, '!', '/' or '?', or '&' followed by '#'.
// When dangerous, the returned index is the byte offset of the '<' or '&'.
// A safe string always reports index 0.
//
// This is a narrow request-validation heuristic, not an XSS sanitizer. A
// starting char in the final position is never flagged.
func IsDangerousString(s string) (bool, int) {
	for i := 0; ; {
		n := strings.IndexAny(s[i:], startingChars)
		if n < 0 {
			return false, 0
		}
		n += i

		if n == len(s)-1 {
			return false, 0
		}

		next := s[n+1]
		switch s[n] {
		case '<':
			if isAtoZ(next) || next == '!' || next == '/' || next == '?' {
				return true, n
			}
		case '&':
			if next == '#' {
				return true, n
			}
		}

		i = n + 1
	}
}

// DangerCheck is the reportable result of scanning a string.
type DangerCheck struct {
	Dangerous bool   `json:"dangerous" yaml:"dangerous"`
	Index     int    `json:"index" yaml:"index"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// CheckString runs IsDangerousString and captures the two-byte pattern that matched.
func CheckString(s string) DangerCheck {
	dangerous, idx := IsDangerousString(s)
	if !dangerous {
		return DangerCheck{}
	}
	return DangerCheck{
		Dangerous: true,
		Index:     idx,
		Pattern:   s[idx : idx+2],
	}
}

func isAtoZ(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
