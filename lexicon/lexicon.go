// Package lexicon provides the dictionaries that challenged words are
// checked against.
package lexicon

// A Dictionary answers whether a word is valid. Lookups are exact and
// case-insensitive. Implementations are immutable once built and safe to
// share between goroutines.
type Dictionary interface {
	Name() string
	Contains(word string) bool
}

// AcceptAll is a dictionary that contains every word; challenges against
// it always fail.
type AcceptAll struct{}

func (AcceptAll) Name() string {
	return "AcceptAll"
}

func (AcceptAll) Contains(word string) bool {
	return true
}
