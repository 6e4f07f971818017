// Package tiletext converts between plain text and the chat's tile emoji
// notation, where each letter is written as its own :emoji: token.
package tiletext

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
)

// BlankEmoji is the token for the blank tile.
const BlankEmoji = ":blank:"

// These letters already have unrelated emoji of their own, so their tiles
// use a doubled name.
var doubledLetters = []rune{'a', 'b', 'm', 'o', 'v', 'x'}

var digitNames = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var reToken = regexp.MustCompile(`:([a-z0-9_+-]+):`)

// Letter returns the emoji token for a single letter or digit, or "" for
// anything else.
func Letter(r rune) string {
	r = unicode.ToLower(r)
	switch {
	case r >= '0' && r <= '9':
		return ":" + digitNames[r-'0'] + ":"
	case r == '_':
		return BlankEmoji
	case r < 'a' || r > 'z':
		return ""
	case lo.Contains(doubledLetters, r):
		return ":" + string(r) + string(r) + ":"
	}
	return ":" + string(r) + ":"
}

// Tiles renders tiles as emoji, blanks as BlankEmoji.
func Tiles(tiles []alphabet.Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(Letter(rune(t)))
	}
	return sb.String()
}

// FromText converts free text to tile emoji. Mentions and existing emoji
// pass through untouched, punctuation is dropped, and words are separated
// by wide gaps.
func FromText(text string) string {
	words := strings.Split(text, " ")
	converted := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, "<@") || strings.HasPrefix(w, "<#") ||
			(len(w) > 1 && strings.HasPrefix(w, ":") && strings.HasSuffix(w, ":")) {
			converted = append(converted, w)
			continue
		}
		var sb strings.Builder
		for _, r := range w {
			if r == '_' {
				// underscores are not letters in free text
				continue
			}
			sb.WriteString(Letter(r))
		}
		converted = append(converted, sb.String())
	}
	return strings.Join(converted, "   ")
}

// ToText converts tile emoji back to plain characters: doubled letters
// become single letters, digit names become digits and :blank: becomes
// '_'. Other emoji lose their colons. Text outside tokens is kept.
func ToText(text string) string {
	return reToken.ReplaceAllStringFunc(text, func(tok string) string {
		name := strings.Trim(tok, ":")
		if name == "blank" {
			return string(alphabet.BlankTile)
		}
		if idx := lo.IndexOf(digitNames, name); idx != -1 {
			return string(rune('0' + idx))
		}
		if len(name) == 2 && name[0] == name[1] && lo.Contains(doubledLetters, rune(name[0])) {
			return name[:1]
		}
		return name
	})
}
