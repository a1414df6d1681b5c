package color

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/vitrine/internal/log"
)

const (
	memoExpiration      = 10 * time.Minute
	memoCleanupInterval = 30 * time.Minute
)

// shadeMemo caches derived ramps keyed by normalized base color.
type shadeMemo struct {
	cache *gocache.Cache
}

var memo = newShadeMemo()

func newShadeMemo() *shadeMemo {
	return &shadeMemo{cache: gocache.New(memoExpiration, memoCleanupInterval)}
}

func (m *shadeMemo) get(base string) (Shades, bool) {
	value, found := m.cache.Get(base)
	if !found {
		return nil, false
	}
	shades, ok := value.(Shades)
	if !ok {
		log.Error(log.CatCache, "wrong type in shade memo", "base", base)
		return nil, false
	}
	log.Debug(log.CatCache, "shade memo hit", "base", base)
	return shades, true
}

func (m *shadeMemo) set(base string, shades Shades) {
	m.cache.SetDefault(base, shades)
}

// ResetMemo drops every memoized ramp.
func ResetMemo() {
	memo.cache.Flush()
}
