// Package pkgjson implements the PackageConfigReader external collaborator
// from spec.md §6: reading and parsing package.json files. It is grounded
// on the teacher's parsePackageJSON (internal/resolver/package_json.go),
// rebuilt over gjson+jsonc instead of esbuild's own JS/JSON parser -- see
// DESIGN.md for why that swap was made.
package pkgjson

import (
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/go-jsresolve/jsresolve/internal/pkgvalue"
)

// Config is the PackageConfig record from spec.md §3.
type Config struct {
	Exists     bool
	PJSONPath  string
	Name       string
	Main       string
	Type       string // "module" | "commonjs" | ""
	Exports    pkgvalue.Value
	Imports    pkgvalue.Value
	HasExports bool
	HasImports bool
}

// ReadOptions mirrors the contextual hints the real reader contract takes
// per spec.md §6 ("read(path, { specifier, base, isESM })"); this repo's
// reader does not need them to parse the file itself but keeps the shape so
// callers that care about provenance (logging, cache keys) can pass it
// through uniformly.
type ReadOptions struct {
	Specifier string
	Base      string
	IsESM     bool
}

// Reader reads and memoizes package.json files by absolute path, per
// spec.md §5 ("PackageConfigReader owns its own memoization per
// pjsonPath"). FileReader is injectable so tests and internal/fsprobe's
// afero-backed filesystem can supply file contents without this package
// importing an I/O layer directly.
type Reader struct {
	FileReader func(path string) ([]byte, error)

	mu    sync.Mutex
	cache map[string]*Config
}

func NewReader(fileReader func(path string) ([]byte, error)) *Reader {
	return &Reader{FileReader: fileReader, cache: make(map[string]*Config)}
}

func (r *Reader) Read(pjsonPath string, opts ReadOptions) (*Config, error) {
	r.mu.Lock()
	if cached, ok := r.cache[pjsonPath]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	contents, err := r.FileReader(pjsonPath)
	if err != nil {
		cfg := &Config{Exists: false, PJSONPath: pjsonPath}
		r.store(pjsonPath, cfg)
		return cfg, nil
	}

	cfg, parseErr := Parse(pjsonPath, contents)
	if parseErr != nil {
		return nil, parseErr
	}
	r.store(pjsonPath, cfg)
	return cfg, nil
}

func (r *Reader) store(path string, cfg *Config) {
	r.mu.Lock()
	r.cache[path] = cfg
	r.mu.Unlock()
}

// Parse builds a Config from raw package.json bytes, preserving the source
// order of "exports"/"imports" map keys (spec.md §3 invariant, §9 "Map
// ordering" design note) by walking the text with gjson.ForEach, which
// visits object members in document order, after jsonc strips any
// comment/trailing-comma artifacts (the same defensive cleanup the pack's
// bennypowers-design-tokens-language-server applies before parsing LSP
// config documents).
func Parse(pjsonPath string, contents []byte) (*Config, error) {
	clean := jsonc.ToJSON(contents)
	if !gjson.ValidBytes(clean) {
		return &Config{Exists: false, PJSONPath: pjsonPath}, nil
	}
	root := gjson.ParseBytes(clean)

	cfg := &Config{Exists: true, PJSONPath: pjsonPath}

	if v := root.Get("name"); v.Exists() && v.Type == gjson.String {
		cfg.Name = v.String()
	}
	if v := root.Get("main"); v.Exists() && v.Type == gjson.String {
		cfg.Main = v.String()
	}
	if v := root.Get("type"); v.Exists() && v.Type == gjson.String {
		t := v.String()
		if t == "module" || t == "commonjs" {
			cfg.Type = t
		}
	}

	if v := root.Get("exports"); v.Exists() {
		cfg.Exports = toValue(v)
		cfg.HasExports = true
	}
	if v := root.Get("imports"); v.Exists() {
		cfg.Imports = toValue(v)
		cfg.HasImports = true
	}

	return cfg, nil
}

// toValue converts a gjson.Result into the order-preserving pkgvalue.Value
// tree. Object key order is exactly ForEach's visitation order, which gjson
// guarantees matches the source text.
func toValue(v gjson.Result) pkgvalue.Value {
	switch {
	case v.Type == gjson.Null:
		return pkgvalue.Nul()

	case v.Type == gjson.String:
		return pkgvalue.Str(v.String())

	case v.IsArray():
		var list []pkgvalue.Value
		v.ForEach(func(_, item gjson.Result) bool {
			list = append(list, toValue(item))
			return true
		})
		return pkgvalue.Value{Kind: pkgvalue.List, List: list}

	case v.IsObject():
		var entries []pkgvalue.Entry
		v.ForEach(func(key, item gjson.Result) bool {
			entries = append(entries, pkgvalue.Entry{Key: key.String(), Value: toValue(item)})
			return true
		})
		return pkgvalue.Value{Kind: pkgvalue.Map, Map: entries}

	default:
		return pkgvalue.Value{Kind: pkgvalue.Invalid}
	}
}

// DirOf returns the directory portion of a package.json path, e.g.
// "/a/b/package.json" -> "/a/b". Small helper kept here (rather than
// path.Dir at call sites) because package.json paths in this repo are
// always in "/"-normalized form regardless of host OS.
func DirOf(pjsonPath string) string {
	idx := strings.LastIndexByte(pjsonPath, '/')
	if idx == -1 {
		return "."
	}
	return pjsonPath[:idx]
}
