package lexicon

import (
	"strings"

	wglconfig "github.com/domino14/word-golib/config"
	"github.com/domino14/word-golib/kwg"
	"github.com/domino14/word-golib/tilemapping"
)

// KWGDictionary checks words against a compiled KWG lexicon such as CSW21
// or NWL23.
type KWGDictionary struct {
	lex kwg.Lexicon
}

// LoadKWG loads the named lexicon from dataPath/lexica/gaddag.
func LoadKWG(dataPath, lexiconName string) (*KWGDictionary, error) {
	k, err := kwg.GetKWG(&wglconfig.Config{DataPath: dataPath}, lexiconName)
	if err != nil {
		return nil, err
	}
	return &KWGDictionary{lex: kwg.Lexicon{KWG: *k}}, nil
}

func (d *KWGDictionary) Name() string {
	return d.lex.Name()
}

// Contains returns false for anything the lexicon's alphabet cannot spell.
func (d *KWGDictionary) Contains(word string) bool {
	mw, err := tilemapping.ToMachineWord(strings.ToUpper(word), d.lex.GetAlphabet())
	if err != nil {
		return false
	}
	return d.lex.HasWord(mw)
}
