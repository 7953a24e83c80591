package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"vlisp/internal/source"
	"vlisp/internal/token"
)

// tokenCacheSchema is bumped whenever the payload layout changes; entries
// written under another schema read back as misses.
const tokenCacheSchema uint16 = 1

// DiskCache persists clean token sequences between runs, keyed by source
// content hash. Safe for concurrent use; all methods tolerate a nil
// receiver, which behaves as a disabled cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultCacheDir returns the user-level cache root for the tool.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "vlisp"), nil
}

// OpenDiskCache opens the cache under dir, creating it when missing.
// An empty dir selects DefaultCacheDir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "tokens"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp")
}

// Get loads the cached sequence for file, if a valid entry exists.
// A schema or hash mismatch is a miss; a corrupt entry is evicted.
func (c *DiskCache) Get(file *source.File) ([]token.Token, bool) {
	if c == nil {
		return nil, false
	}
	p := c.pathFor(file.Hash)

	c.mu.RLock()
	f, err := os.Open(p)
	if err != nil {
		c.mu.RUnlock()
		return nil, false
	}
	var payload tokenPayload
	err = msgpack.NewDecoder(f).Decode(&payload)
	_ = f.Close()
	c.mu.RUnlock()

	if err != nil {
		c.evict(p)
		return nil, false
	}
	toks, ok := payload.unpack(file)
	if !ok {
		c.evict(p)
		return nil, false
	}
	return toks, true
}

// Put stores a clean scan. Defective scans are never cached: diagnostics
// do not round-trip through the cache.
func (c *DiskCache) Put(file *source.File, toks []token.Token) error {
	if c == nil {
		return nil
	}
	payload := packTokens(file, toks)

	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pathFor(file.Hash)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// Atomic swap: readers see either the old entry or the new one.
	return os.Rename(f.Name(), p)
}

func (c *DiskCache) evict(path string) {
	c.mu.Lock()
	_ = os.Remove(path)
	c.mu.Unlock()
}

// Clean drops every cached entry, keeping the root in place.
func (c *DiskCache) Clean() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := filepath.Join(c.dir, "tokens")
	if err := os.RemoveAll(sub); err != nil {
		return err
	}
	return os.MkdirAll(sub, 0o755)
}

// Stats reports entry count and total size on disk.
func (c *DiskCache) Stats() (entries int, size int64, err error) {
	if c == nil {
		return 0, 0, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	err = filepath.WalkDir(filepath.Join(c.dir, "tokens"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size, err
}

// tokenPayload is the on-disk shape of a clean scan. Token text is never
// stored: spans re-slice the source content on load. Numeric values pack
// densely, in sequence order, one array per kind.
type tokenPayload struct {
	Schema uint16
	Hash   [32]byte
	Kinds  []uint8
	Starts []uint32
	Ends   []uint32
	Ints   []int32
	Floats []float32
}

func packTokens(file *source.File, toks []token.Token) *tokenPayload {
	p := &tokenPayload{
		Schema: tokenCacheSchema,
		Hash:   file.Hash,
		Kinds:  make([]uint8, len(toks)),
		Starts: make([]uint32, len(toks)),
		Ends:   make([]uint32, len(toks)),
	}
	for i, tok := range toks {
		p.Kinds[i] = uint8(tok.Kind)
		p.Starts[i] = tok.Span.Start
		p.Ends[i] = tok.Span.End
		switch tok.Kind {
		case token.Int32:
			p.Ints = append(p.Ints, tok.Int32)
		case token.Float32:
			p.Floats = append(p.Floats, tok.Float32)
		}
	}
	return p
}

// unpack rebuilds the token sequence against the current file content.
// Anything structurally off reads as a corrupt entry.
func (p *tokenPayload) unpack(file *source.File) ([]token.Token, bool) {
	if p.Schema != tokenCacheSchema || p.Hash != file.Hash {
		return nil, false
	}
	if len(p.Starts) != len(p.Kinds) || len(p.Ends) != len(p.Kinds) {
		return nil, false
	}
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, false
	}
	toks := make([]token.Token, len(p.Kinds))
	ints, floats := p.Ints, p.Floats
	for i := range p.Kinds {
		start, end := p.Starts[i], p.Ends[i]
		if start > end || end > limit {
			return nil, false
		}
		tok := token.Token{
			Kind: token.Kind(p.Kinds[i]),
			Span: source.Span{File: file.ID, Start: start, End: end},
		}
		switch tok.Kind {
		case token.Int32:
			if len(ints) == 0 {
				return nil, false
			}
			tok.Int32, ints = ints[0], ints[1:]
		case token.Float32:
			if len(floats) == 0 {
				return nil, false
			}
			tok.Float32, floats = floats[0], floats[1:]
		case token.Name, token.String, token.LParen, token.RParen:
		default:
			// EOF and Invalid never enter a materialized sequence.
			return nil, false
		}
		toks[i] = tok
	}
	if len(ints) != 0 || len(floats) != 0 {
		return nil, false
	}
	return toks, true
}
