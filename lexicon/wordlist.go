package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"golang.org/x/text/cases"
)

// WordList is a dictionary read from a plain text file with one word per
// line. Words are stored as hashes of their case-folded form.
type WordList struct {
	name   string
	hashes map[uint64]struct{}
}

func fold(word string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(word))
}

// NewWordList builds a word list from the given words.
func NewWordList(name string, words []string) *WordList {
	wl := &WordList{name: name, hashes: make(map[uint64]struct{}, len(words))}
	for _, w := range words {
		wl.add(w)
	}
	return wl
}

func (wl *WordList) add(word string) {
	f := fold(word)
	if f == "" {
		return
	}
	wl.hashes[xxhash.Sum64String(f)] = struct{}{}
}

// ReadWordList reads one word per line. Blank lines and surrounding
// whitespace (including \r) are ignored.
func ReadWordList(name string, r io.Reader) (*WordList, error) {
	wl := &WordList{name: name, hashes: make(map[uint64]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		wl.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list %v: %w", name, err)
	}
	return wl, nil
}

// LoadWordList reads a word list file.
func LoadWordList(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWordList(filepath.Base(path), f)
}

func (wl *WordList) Name() string {
	return wl.name
}

func (wl *WordList) Contains(word string) bool {
	_, ok := wl.hashes[xxhash.Sum64String(fold(word))]
	return ok
}

// Len is the number of distinct words.
func (wl *WordList) Len() int {
	return len(wl.hashes)
}
