// pkg/crypto/alphabet.go

package crypto

// Alphabet is the ordered 87-symbol table that random bytes are mapped onto.
// Index ranges: [0,10) digits, [10,36) uppercase, [36,62) lowercase,
// [62,87) punctuation.
const Alphabet = Digits + Uppercase + Lowercase + Punctuation

const (
	Digits    = "0123456789"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"

	// Punctuation is order-significant: the index within the range selects the symbol.
	Punctuation = "!@#$%^&*()_-+=[{]};:>|./?"
)

const (
	digitsStart      = 0
	uppercaseStart   = digitsStart + len(Digits)
	lowercaseStart   = uppercaseStart + len(Uppercase)
	punctuationStart = lowercaseStart + len(Lowercase)
	alphabetSize     = punctuationStart + len(Punctuation)
)

// SymbolClass identifies which of the four alphabet ranges a symbol belongs to.
type SymbolClass int

const (
	ClassUnknown SymbolClass = iota
	ClassDigit
	ClassUppercase
	ClassLowercase
	ClassPunctuation
)

func (c SymbolClass) String() string {
	switch c {
	case ClassDigit:
		return "digit"
	case ClassUppercase:
		return "uppercase"
	case ClassLowercase:
		return "lowercase"
	case ClassPunctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// IndexClass returns the range an alphabet index falls in.
func IndexClass(i int) SymbolClass {
	switch {
	case i < digitsStart || i >= alphabetSize:
		return ClassUnknown
	case i < uppercaseStart:
		return ClassDigit
	case i < lowercaseStart:
		return ClassUppercase
	case i < punctuationStart:
		return ClassLowercase
	default:
		return ClassPunctuation
	}
}

// SymbolClassOf classifies a single byte against the alphabet.
func SymbolClassOf(c byte) SymbolClass {
	switch {
	case c >= '0' && c <= '9':
		return ClassDigit
	case c >= 'A' && c <= 'Z':
		return ClassUppercase
	case c >= 'a' && c <= 'z':
		return ClassLowercase
	case isPunctuation(c):
		return ClassPunctuation
	default:
		return ClassUnknown
	}
}

// symbolAt maps a raw random byte onto the alphabet.
func symbolAt(b byte) byte {
	return Alphabet[int(b)%alphabetSize]
}

func isPunctuation(c byte) bool {
	for i := 0; i < len(Punctuation); i++ {
		if Punctuation[i] == c {
			return true
		}
	}
	return false
}

func isAlphanumeric(c byte) bool {
	switch SymbolClassOf(c) {
	case ClassDigit, ClassUppercase, ClassLowercase:
		return true
	}
	return false
}
