// Package cache keeps large read-only objects, such as dictionaries, loaded
// once per process and shared by every game.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/config"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object for a key on first use.
type LoadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is shared by the whole process.
var GlobalObjectCache *cache

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the cached object for key, calling loadFunc the first time.
// Failed loads are not cached.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	return GlobalObjectCache.get(cfg, key, loadFunc)
}
