// Package cache persists per-file lint results on disk so that unchanged
// files skip the lex/parse/check pipeline on the next run. Entries are keyed
// by content hash plus the active rule configuration, so edits and config
// changes both invalidate naturally.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sift/internal/diag"
	"sift/internal/rules"
	"sift/internal/source"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 2

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache — потокобезопасное хранилище результатов на диске.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the disk cache at the standard XDG location.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenAt opens the cache in an explicit directory. Used by tests and the
// --cache-dir flag.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Payload stores one file's diagnostics.
type Payload struct {
	Schema      uint16
	Path        string
	Diagnostics []Diagnostic
}

// Diagnostic is the cache image of diag.Diagnostic. Spans are stored as raw
// offsets; the FileID is rebound on restore.
type Diagnostic struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []Note
	Fixes    []Fix
}

// Note mirrors diag.Note.
type Note struct {
	Start uint32
	End   uint32
	Msg   string
}

// Fix mirrors diag.Fix.
type Fix struct {
	Title string
	Edits []FixEdit
}

// FixEdit mirrors diag.FixEdit.
type FixEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// FromDiagnostics builds a cacheable payload.
func FromDiagnostics(path string, items []diag.Diagnostic) *Payload {
	p := &Payload{
		Schema:      schemaVersion,
		Path:        path,
		Diagnostics: make([]Diagnostic, 0, len(items)),
	}
	for _, d := range items {
		cd := Diagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, Note{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, fx := range d.Fixes {
			cf := Fix{Title: fx.Title}
			for _, e := range fx.Edits {
				cf.Edits = append(cf.Edits, FixEdit{
					Start: e.Span.Start, End: e.Span.End,
					NewText: e.NewText, OldText: e.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// Restore converts the payload back to diagnostics, rebinding spans to
// fileID. A payload from another schema version restores to nothing.
func (p *Payload) Restore(fileID source.FileID) ([]diag.Diagnostic, bool) {
	if p == nil || p.Schema != schemaVersion {
		return nil, false
	}
	out := make([]diag.Diagnostic, 0, len(p.Diagnostics))
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Code:     diag.Code(cd.Code),
			Severity: diag.Severity(cd.Severity),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: fileID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		for _, cf := range cd.Fixes {
			fx := diag.Fix{Title: cf.Title}
			for _, e := range cf.Edits {
				fx.Edits = append(fx.Edits, diag.FixEdit{
					Span:    source.Span{File: fileID, Start: e.Start, End: e.End},
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			d.Fixes = append(d.Fixes, fx)
		}
		out = append(out, d)
	}
	return out, true
}

// RulesKey digests the active rule configuration. Order independent: the
// rules are sorted by name before hashing.
func RulesKey(active []rules.ConfiguredRule) Digest {
	names := make([]string, 0, len(active))
	bySev := make(map[string]diag.Severity, len(active))
	for _, cr := range active {
		names = append(names, cr.Rule.Name())
		bySev[cr.Rule.Name()] = cr.Severity
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0, uint8(bySev[name])})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Key combines a file's content hash with the rule configuration digest.
func Key(fileHash [32]byte, rulesKey Digest) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], schemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(fileHash[:])
	_, _ = h.Write(rulesKey[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог ради удобства ручной очистки
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
