// Package passgen generates random passwords and scores password strength.
// Both functions are pure with respect to their inputs; generation draws from
// crypto/rand.
package passgen

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Options selects the character classes used by Generate.
type Options struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// DefaultOptions enables every character class.
func DefaultOptions() Options {
	return Options{Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Generate returns a random password of the given length drawn from the
// enabled character classes. If no class is enabled it falls back to
// letters and digits.
func Generate(length int, opts Options) (string, error) {
	var charset string
	if opts.Upper {
		charset += upperChars
	}
	if opts.Lower {
		charset += lowerChars
	}
	if opts.Digits {
		charset += digitChars
	}
	if opts.Symbols {
		charset += symbolChars
	}
	if charset == "" {
		charset = upperChars + lowerChars + digitChars
	}

	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[n.Int64()])
	}
	return b.String(), nil
}

// Score rates a password from 0 to 6 and returns feedback for every missing
// property: two points for length >= 12 (one for >= 8), one point per present
// character class.
func Score(password string) (int, []string) {
	score := 0
	feedback := []string{}

	switch {
	case len(password) >= 12:
		score += 2
	case len(password) >= 8:
		score++
	default:
		feedback = append(feedback, "Password is too short")
	}

	classes := []struct {
		present func(rune) bool
		hint    string
	}{
		{unicode.IsUpper, "Add uppercase letters"},
		{unicode.IsLower, "Add lowercase letters"},
		{unicode.IsDigit, "Add numbers"},
		{func(r rune) bool { return strings.ContainsRune(symbolChars, r) }, "Add special characters"},
	}

	for _, c := range classes {
		if strings.ContainsFunc(password, c.present) {
			score++
		} else {
			feedback = append(feedback, c.hint)
		}
	}

	return score, feedback
}
