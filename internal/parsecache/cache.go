// Package parsecache stores parsed sources on disk keyed by content hash so
// unchanged files are not parsed again.
package parsecache

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"javadox/internal/errors"
	"javadox/internal/model"
	"javadox/internal/slogutil"
	"javadox/internal/snapshot"
)

// entrySchema changes whenever the entry layout or snapshot.SchemaVersion
// changes.
const entrySchema uint16 = 1

const entryExt = ".mpz"

// Cache is a directory of zstd-compressed msgpack entries. A nil *Cache is
// valid and never hits. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	dir    string
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	logger *slog.Logger
}

type entry struct {
	Schema   uint16                   `msgpack:"schema"`
	Snapshot uint16                   `msgpack:"snapshot"`
	Path     string                   `msgpack:"path"`
	Source   *snapshot.SourceSnapshot `msgpack:"source"`
}

// Open creates the cache directory if needed.
func Open(dir string, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Cache{
		dir:    dir,
		enc:    enc,
		dec:    dec,
		logger: slogutil.OrDiscard(logger),
	}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the cache key of a file from its path and content.
func Key(path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	prefix := key
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return filepath.Join(c.dir, prefix, key+entryExt)
}

// Get returns the cached source for key. An unreadable entry is removed and
// reported as CACHE_CORRUPT; an entry from another schema is removed and
// reported as a miss.
func (c *Cache) Get(key string) (*model.Source, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	p := c.pathFor(key)

	c.mu.RLock()
	data, err := os.ReadFile(p)
	c.mu.RUnlock()
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		c.remove(p)
		return nil, false, errors.New(errors.CacheCorrupt, "cannot decompress cache entry "+key, err)
	}
	var e entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		c.remove(p)
		return nil, false, errors.New(errors.CacheCorrupt, "cannot decode cache entry "+key, err)
	}
	if e.Schema != entrySchema || e.Snapshot != snapshot.SchemaVersion || e.Source == nil {
		c.logger.Debug("Discarding stale cache entry", "key", key, "schema", e.Schema)
		c.remove(p)
		return nil, false, nil
	}
	return e.Source.Restore(), true, nil
}

// Put stores src under key, replacing any existing entry atomically.
func (c *Cache) Put(key string, src *model.Source) error {
	if c == nil {
		return nil
	}
	raw, err := msgpack.Marshal(&entry{
		Schema:   entrySchema,
		Snapshot: snapshot.SchemaVersion,
		Path:     src.Path(),
		Source:   snapshot.FromSource(src),
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	data := c.enc.EncodeAll(raw, nil)

	p := c.pathFor(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (c *Cache) remove(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(p); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		c.logger.Warn("Failed to remove cache entry", "path", p, "error", err)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the codec resources.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.dec.Close()
	return c.enc.Close()
}
