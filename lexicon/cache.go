package lexicon

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/cache"
	"github.com/domino14/scrabblebot/config"
)

const CacheKeyPrefix = "dictionary:"

// CacheLoadFunc loads the dictionary named by a cache key of the form
// dictionary:<kind>:<location>.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	kind, location, ok := strings.Cut(strings.TrimPrefix(key, CacheKeyPrefix), ":")
	if !ok {
		return nil, fmt.Errorf("bad dictionary cache key %q", key)
	}
	switch kind {
	case config.DictionaryWordList:
		wl, err := LoadWordList(location)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", location).Int("words", wl.Len()).Msg("loaded word list")
		return wl, nil
	case config.DictionaryKWG:
		return LoadKWG(cfg.GetString(config.ConfigKWGPath), location)
	}
	return nil, fmt.Errorf("unknown dictionary kind %q", kind)
}

// Get returns the configured dictionary, loading it on first use and
// sharing it afterwards.
func Get(cfg *config.Config) (Dictionary, error) {
	kind := cfg.GetString(config.ConfigDictionary)
	var location string
	switch kind {
	case config.DictionaryWordList:
		location = cfg.GetString(config.ConfigDictionaryPath)
	case config.DictionaryKWG:
		location = cfg.GetString(config.ConfigLexicon)
	default:
		return nil, fmt.Errorf("unknown dictionary kind %q", kind)
	}
	obj, err := cache.Load(cfg, CacheKeyPrefix+kind+":"+location, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	dict, ok := obj.(Dictionary)
	if !ok {
		return nil, fmt.Errorf("cached object for %v is not a dictionary", location)
	}
	return dict, nil
}
