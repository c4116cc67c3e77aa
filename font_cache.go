package figfont

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/ryanlewis/figfont/internal/parser"
)

// FontCache keeps parsed fonts for long-running programs, evicting the
// least recently used font once MaxSize is reached. Fonts are immutable,
// so a cached font may be handed to any number of goroutines.
//
// Fonts loaded from disk are keyed by absolute path; fonts parsed from
// bytes are keyed by the SHA-256 of their content.
type FontCache struct {
	mu        sync.Mutex
	fonts     map[string]*list.Element
	lru       *list.List
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  string
	font *Font
	size int64
}

var defaultCache = NewFontCache(100)

// NewFontCache creates a cache holding at most maxSize fonts. A maxSize of
// 0 or less means unlimited.
func NewFontCache(maxSize int) *FontCache {
	return &FontCache{
		fonts:   make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

// LoadFontCached loads a font from disk through the default cache.
func LoadFontCached(path string) (*Font, error) {
	return defaultCache.LoadFont(path)
}

// ParseFontCached parses font data through the default cache.
func ParseFontCached(data []byte) (*Font, error) {
	return defaultCache.ParseFont(data)
}

// LoadFont loads a font from disk, reusing an earlier load of the same path.
func (c *FontCache) LoadFont(path string) (*Font, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	key = "path:" + key
	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	c.put(key, font)
	return font, nil
}

// ParseFont parses font data, reusing an earlier parse of identical bytes.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])
	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, err
	}
	c.put(key, font)
	return font, nil
}

func (c *FontCache) get(key string) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.fonts[key]
	if !ok {
		c.misses.Add(1)
		return nil
	}
	c.lru.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*cacheEntry).font
}

func (c *FontCache) put(key string, font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fonts[key]; ok {
		return
	}
	if c.maxSize > 0 && c.lru.Len() >= c.maxSize {
		c.evictLRU()
	}
	c.fonts[key] = c.lru.PushFront(&cacheEntry{
		key:  key,
		font: font,
		size: estimateFontSize(font),
	})
}

// evictLRU drops the least recently used font. The caller holds c.mu.
func (c *FontCache) evictLRU() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	c.lru.Remove(back)
	delete(c.fonts, back.Value.(*cacheEntry).key)
	c.evictions.Add(1)
}

// Clear removes every cached font. Statistics are kept.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fonts = make(map[string]*list.Element)
	c.lru.Init()
}

// Stats returns cache statistics.
func (c *FontCache) Stats() CacheStats {
	c.mu.Lock()
	size := c.lru.Len()
	var bytes int64
	for e := c.lru.Front(); e != nil; e = e.Next() {
		bytes += e.Value.(*cacheEntry).size
	}
	c.mu.Unlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached fonts
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Approximate memory held by cached glyphs
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize approximates the bytes held by a font's glyph rows.
func estimateFontSize(f *Font) int64 {
	if f == nil || f.pf == nil {
		return 0
	}
	size := int64(128) + int64(len(f.Comment))
	for _, code := range parser.Codes() {
		g, err := f.pf.Glyphs.Lookup(code)
		if err != nil {
			continue
		}
		size += int64(len(g)) * 16
		for _, row := range g {
			size += int64(len(row))
		}
	}
	return size
}

// SetDefaultCacheSize replaces the default cache with an empty one of the
// given size.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewFontCache(maxSize)
}

// ClearDefaultCache clears the default font cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
