// Package stats is a hierarchical JSON-backed store for counters and
// tool configuration. Consumers address entries by group and name and
// never depend on the on-disk representation.
package stats

import (
	"fmt"
	"os"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// AccessMode controls whether Sync persists the store.
type AccessMode int

// Access modes.
const (
	ReadOnly AccessMode = iota
	ReadWrite
)

// Statistics is a hierarchical key/value store. Groups nest with "."
// separators; leaf entries hold JSON scalar values.
type Statistics struct {
	k    *koanf.Koanf
	path string
	mode AccessMode
}

// New returns an empty in-memory read-write store.
func New() *Statistics {
	return &Statistics{k: koanf.New("."), mode: ReadWrite}
}

// Open loads a JSON store from disk. In ReadWrite mode a missing file is
// treated as an empty store that Sync will create.
func Open(path string, mode AccessMode) (*Statistics, error) {
	s := &Statistics{k: koanf.New("."), path: path, mode: mode}
	if err := s.k.Load(file.Provider(path), kjson.Parser()); err != nil {
		if mode == ReadWrite && os.IsNotExist(unwrapPathError(err)) {
			return s, nil
		}
		return nil, fmt.Errorf("cannot open statistics file %s: %w", path, err)
	}
	return s, nil
}

// Read parses a JSON document into a read-only store.
func Read(content []byte) (*Statistics, error) {
	s := &Statistics{k: koanf.New("."), mode: ReadOnly}
	if err := s.k.Load(rawbytes.Provider(content), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("cannot read statistics content: %w", err)
	}
	return s, nil
}

func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe
	}
	return err
}

// Mode returns the store's access mode.
func (s *Statistics) Mode() AccessMode { return s.mode }

// Group returns a view over the named top-level group. Groups spring
// into existence on first write.
func (s *Statistics) Group(name string) *Group {
	return &Group{s: s, prefix: name}
}

// HasGroup reports whether a top-level group exists.
func (s *Statistics) HasGroup(name string) bool {
	return len(s.k.MapKeys(name)) > 0
}

// Groups lists the top-level group names, sorted.
func (s *Statistics) Groups() []string {
	return s.k.MapKeys("")
}

// DeleteGroup removes a group and everything under it.
func (s *Statistics) DeleteGroup(name string) {
	s.k.Delete(name)
}

// Dump renders the whole store as indented JSON.
func (s *Statistics) Dump() ([]byte, error) {
	return s.k.Marshal(kjson.Parser())
}

// Sync writes the store back to its file. No-op for read-only or
// in-memory stores.
func (s *Statistics) Sync() error {
	if s.mode != ReadWrite || s.path == "" {
		return nil
	}
	out, err := s.Dump()
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0o644)
}

// Group is a named slice of the store. All reads return the caller's
// default when the entry is absent.
type Group struct {
	s      *Statistics
	prefix string
}

// Group returns a nested group view.
func (g *Group) Group(name string) *Group {
	return &Group{s: g.s, prefix: g.prefix + "." + name}
}

func (g *Group) key(name string) string { return g.prefix + "." + name }

// HasEntry reports whether the named entry exists.
func (g *Group) HasEntry(name string) bool {
	return g.s.k.Exists(g.key(name))
}

// ReadInt returns the named integer entry or a default.
func (g *Group) ReadInt(name string, def int) int {
	if !g.HasEntry(name) {
		return def
	}
	return g.s.k.Int(g.key(name))
}

// ReadFloat returns the named float entry or a default.
func (g *Group) ReadFloat(name string, def float64) float64 {
	if !g.HasEntry(name) {
		return def
	}
	return g.s.k.Float64(g.key(name))
}

// ReadString returns the named string entry or a default.
func (g *Group) ReadString(name, def string) string {
	if !g.HasEntry(name) {
		return def
	}
	return g.s.k.String(g.key(name))
}

// WriteEntry stores a value under the group.
func (g *Group) WriteEntry(name string, value any) error {
	return g.s.k.Set(g.key(name), value)
}

// Entries lists the group's direct child keys, sorted.
func (g *Group) Entries() []string {
	return g.s.k.MapKeys(g.prefix)
}
