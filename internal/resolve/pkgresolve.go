package resolve

import (
	"net/url"
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
)

// ResolvePackage implements C7 (spec.md §4.7), grounded on the teacher's
// loadNodeModules/dirInfoCached directory-walk idiom (internal/resolver/
// resolver.go), trimmed of esbuild's browser-map, CSS, and Yarn PnP concerns
// -- this spec has no equivalent of any of those.
func (r *Resolver) ResolvePackage(specifier string, base *url.URL, conditions map[string]bool, depth int) (TargetResult, error) {
	if r.Builtins != nil && r.Builtins(specifier) {
		return TargetResult{Status: StatusURL, URL: "node:" + specifier}, nil
	}

	name, subpath, _, err := ParsePackageName(specifier)
	if err != nil {
		return TargetResult{}, err
	}

	// Step: self-reference. A package may import itself by its own "name"
	// field if it defines "exports" (spec.md §4.7).
	if selfResult, ok, selfErr := r.resolveSelfReference(name, subpath, base, conditions, depth); ok {
		return selfResult, selfErr
	}

	baseDir := dirOfFileURL(base)
	for _, nmDir := range ancestorNodeModulesDirs(baseDir) {
		pkgDir := joinPath(nmDir, name)
		pjsonPath := joinPath(pkgDir, "package.json")

		kind, statErr := r.FS.Stat(pjsonPath)
		if statErr != nil || kind != fsprobe.File {
			continue
		}

		cfg, err := r.PkgJSON.Read(pjsonPath, pkgjson.ReadOptions{Specifier: specifier, Base: base.String()})
		if err != nil {
			return TargetResult{}, err
		}
		if !cfg.Exists {
			continue
		}

		return r.resolveFromPackageConfig(cfg, pkgDir, subpath, conditions, depth)
	}

	suggestion := ""
	if r.CJSSuggester != nil {
		suggestion = r.CJSSuggester(specifier, base.String())
	}
	e := newErr(KindModuleNotFound, "cannot find package %q imported from %q", name, base.String())
	if suggestion != "" {
		e.Suggestion = suggestion
	}
	return TargetResult{}, e
}

// resolveSelfReference implements the "a package can import itself by name"
// clause of spec.md §4.7: walk up from base looking for the nearest
// package.json, and if its "name" matches, dispatch through ExportsResolver
// against that same package.json rather than through node_modules.
func (r *Resolver) resolveSelfReference(name, subpath string, base *url.URL, conditions map[string]bool, depth int) (TargetResult, bool, error) {
	dir := dirOfFileURL(base)
	for {
		pjsonPath := joinPath(dir, "package.json")
		kind, statErr := r.FS.Stat(pjsonPath)
		if statErr == nil && kind == fsprobe.File {
			cfg, err := r.PkgJSON.Read(pjsonPath, pkgjson.ReadOptions{Base: base.String()})
			if err != nil {
				return TargetResult{}, true, err
			}
			if cfg.Exists && cfg.Name == name && cfg.HasExports {
				result, err := r.resolveFromPackageConfig(cfg, dir, subpath, conditions, depth)
				return result, true, err
			}
			return TargetResult{}, false, nil
		}
		parent := parentDir(dir)
		if parent == dir || isNodeModulesSegment(baseName(dir)) {
			return TargetResult{}, false, nil
		}
		dir = parent
	}
}

func (r *Resolver) resolveFromPackageConfig(cfg *pkgjson.Config, pkgDir, subpath string, conditions map[string]bool, depth int) (TargetResult, error) {
	pkgJSONURL := &url.URL{Scheme: "file", Path: joinPath(pkgDir, "package.json")}

	if cfg.HasExports {
		ctx := &targetCtx{
			log:        r.Log,
			conditions: conditions,
			depth:      depth,
			resolveBare: func(specifier string, base *url.URL, conditions map[string]bool, depth int) (TargetResult, error) {
				return r.ResolvePackage(specifier, base, conditions, depth)
			},
		}
		return ResolveExports(ctx, pkgJSONURL, subpath, cfg.Exports)
	}

	if subpath == "." {
		mainURL, err := r.ResolveLegacyMain(pkgDir, cfg)
		if err != nil {
			return TargetResult{}, err
		}
		return TargetResult{Status: StatusURL, URL: mainURL}, nil
	}

	return TargetResult{Status: StatusURL, URL: joinPath(fileURL(pkgDir), subpath[2:])}, nil
}

// ancestorNodeModulesDirs yields "<dir>/node_modules" for dir and each of its
// ancestors, nearest first, matching Node's own node_modules lookup order.
func ancestorNodeModulesDirs(dir string) []string {
	var dirs []string
	for {
		dirs = append(dirs, joinPath(dir, "node_modules"))
		parent := parentDir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dirs
}

func parentDir(dir string) string {
	dir = strings.TrimSuffix(dir, "/")
	idx := strings.LastIndexByte(dir, '/')
	if idx <= 0 {
		return "/"
	}
	return dir[:idx]
}

func baseName(dir string) string {
	dir = strings.TrimSuffix(dir, "/")
	idx := strings.LastIndexByte(dir, '/')
	return dir[idx+1:]
}

func dirOfFileURL(u *url.URL) string {
	if u == nil {
		return "/"
	}
	return parentDir(u.Path)
}
