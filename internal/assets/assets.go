// Package assets fetches model files from disk or http(s) and decodes
// glTF/GLB scenes into posable hierarchies.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/logger"
	"github.com/Faultbox/posecraft/internal/scene"
)

// ErrUnsupportedFormat is returned for sources that are not .glb or .gltf.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// maxAssetBytes caps a single download or file read.
const maxAssetBytes = 256 << 20

// Manager handles asset loading with an in-memory byte cache.
type Manager struct {
	client *http.Client
	cache  *Cache
	log    *zap.Logger
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		client: http.DefaultClient,
		cache:  NewCache(),
		log:    logger.Named("assets"),
	}
}

// Load fetches src and decodes it into a hierarchy. It is safe to call
// from several goroutines.
func (m *Manager) Load(ctx context.Context, src string) (*scene.Hierarchy, error) {
	format, err := formatOf(src)
	if err != nil {
		return nil, err
	}

	data, err := m.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	h, err := decodeModel(data, src, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	m.log.Info("model decoded",
		zap.String("source", src),
		zap.Stringer("kind", h.Kind),
		zap.Int("bones", len(h.Bones)),
		zap.Int("parts", len(h.Parts)),
	)
	return h, nil
}

// Fetch returns the raw bytes of src. Local files are re-read when their
// size or modification time changed since the cached copy.
func (m *Manager) Fetch(ctx context.Context, src string) ([]byte, error) {
	remote := isRemote(src)

	var version string
	if !remote {
		info, err := os.Stat(src)
		if err != nil {
			return nil, err
		}
		version = fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano())
	}

	if data, ok := m.cache.Get(src, version); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if remote {
		data, err = m.download(ctx, src)
	} else {
		data, err = readFile(src)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(src, version, data)
	hits, misses := m.cache.Stats()
	m.log.Debug("asset fetched",
		zap.String("source", src),
		zap.Int("bytes", len(data)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return data, nil
}

func (m *Manager) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", src, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

func readFile(src string) ([]byte, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// formatOf picks the decoder from the source extension, ignoring any
// URL query string.
func formatOf(src string) (string, error) {
	p := src
	if isRemote(src) {
		if u, err := url.Parse(src); err == nil {
			p = u.Path
		}
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".glb", ".gltf":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, src)
	}
}

// Cache is a simple in-memory cache for fetched asset bytes. Each entry
// carries a version; a lookup with a different version is a miss.
type Cache struct {
	data map[string]cacheEntry
	mu   sync.RWMutex

	hits   int
	misses int
}

type cacheEntry struct {
	version string
	data    []byte
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]cacheEntry),
	}
}

// Get retrieves the bytes stored under key at version.
func (c *Cache) Get(key, version string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok && e.version == version {
		c.hits++
		return e.data, true
	}
	c.misses++
	return nil, false
}

// Set stores data under key, replacing any older version.
func (c *Cache) Set(key, version string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cacheEntry{version: version, data: data}
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
