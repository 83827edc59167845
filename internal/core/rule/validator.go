package rule

import "strings"

// Query is the input to a Validator: the rule under consideration and whether
// the rule before it was followed.
type Query struct {
	Rule            Rule
	PreviousApplied bool
}

// Validator decides whether a rule must be followed.
type Validator func(Query) bool

// LetterClass selects which letters a text-parity validator counts.
type LetterClass int

const (
	Vowels LetterClass = iota
	LetterI
)

// letters returns the case-folded runes that belong to the class.
func (c LetterClass) letters() string {
	if c == LetterI {
		return "i"
	}
	return "aeiou"
}

func (c LetterClass) String() string {
	if c == LetterI {
		return "letter I"
	}
	return "vowels"
}

// Parity is the target parity of a letter count.
type Parity int

const (
	Even Parity = iota
	Odd
)

func (p Parity) String() string {
	if p == Odd {
		return "odd"
	}
	return "even"
}

// StartsWith returns a validator that accepts rules whose text begins with
// prefix.
func StartsWith(prefix string) Validator {
	return func(q Query) bool {
		return strings.HasPrefix(q.Rule.Text(), prefix)
	}
}

// TextParity returns a validator that counts the letters of class in the
// candidate rule's own text, ignoring case, and accepts when the count has the
// given parity.
func TextParity(class LetterClass, parity Parity) Validator {
	letters := class.letters()
	want := int(parity)
	return func(q Query) bool {
		return CountLetters(q.Rule.Text(), letters)%2 == want
	}
}

// CountLetters counts the ASCII letters of text that, lowercased, are one of
// letters. Other runes never match.
func CountLetters(text, letters string) int {
	n := 0
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' && strings.ContainsRune(letters, r) {
			n++
		}
	}
	return n
}

// Invert returns the negation of previous. previous is captured as it is now;
// the returned validator never observes later replacements.
func Invert(previous Validator) Validator {
	return func(q Query) bool {
		return !previous(q)
	}
}

// Alternation returns a validator that accepts exactly when the previous rule
// was not followed, whatever the candidate says.
func Alternation() Validator {
	return func(q Query) bool {
		return !q.PreviousApplied
	}
}
