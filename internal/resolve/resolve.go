package resolve

import (
	"net/url"
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
)

// Result is the public return value of Resolve, mirroring spec.md §6's
// "defaultResolve(specifier, context) -> { url, format? }".
type Result struct {
	URL    string
	Format string
}

// Context mirrors spec.md §6's context argument: parentURL plus the active
// condition set for this particular resolve call.
type Context struct {
	ParentURL  string
	Conditions map[string]bool
	IsMain     bool
}

// Resolve implements C10, ModuleResolve (spec.md §4.10) -- the top-level
// entry point every other component feeds into. Grounded on the teacher's
// Resolver.resolveWithoutSymlinks dispatch spine (internal/resolver/
// resolver.go), generalized from esbuild's bundler-resolve algorithm (which
// also consults tsconfig paths, browser maps, and Yarn PnP) down to exactly
// the dispatch spec.md §4.10 describes.
func (r *Resolver) Resolve(specifier string, ctx Context) (Result, error) {
	// Step 1
	var parent *url.URL
	var parentIsRemote bool
	if ctx.ParentURL != "" {
		u, err := url.Parse(ctx.ParentURL)
		if err != nil {
			return Result{}, newErr(KindInvalidArgType, "parentURL %q is not a valid URL", ctx.ParentURL)
		}
		parent = u
		parentIsRemote = u.Scheme == "http" || u.Scheme == "https"
	}

	// Step 2: policy manifest consultation
	if r.Policy != nil {
		mapper := r.Policy.GetDependencyMapper(parent)
		if mapper != nil {
			if redirect, handled := mapper.Map(specifier); handled {
				if redirect == "" {
					return Result{}, newErr(KindManifestDependencyMissing, "policy manifest denies %q", specifier)
				}
				return Result{URL: redirect, Format: r.probeFormat(redirect, "")}, nil
			}
		}
	}

	// Step 3: direct-URL schemes pass through unchanged (subject to gating).
	if u, err := url.Parse(specifier); err == nil && u.Scheme != "" {
		switch u.Scheme {
		case "data":
			return r.finalizeAndFormat(specifier, ctx.IsMain, "")
		case "http", "https":
			if !r.Options.ExperimentalNetworkImports {
				return Result{}, newErr(KindNetworkImportDisallowed, "network imports are disabled (%q)", specifier)
			}
			return Result{URL: specifier, Format: r.probeFormat(specifier, "")}, nil
		case "node":
			return Result{URL: specifier, Format: "builtin"}, nil
		default:
			// Any other scheme (file:, blob:, ...) the caller supplied directly
			// as an absolute URL still goes through C9, but a remote parent may
			// not reach into file:/data:/blob:/builtins (step 4's gate applies
			// here too, since this branch returns before step 4 runs below).
			if parentIsRemote {
				return Result{}, newErr(KindNetworkImportDisallowed, "a remote module may not import %q", specifier)
			}
			return r.finalizeAndFormat(specifier, ctx.IsMain, "")
		}
	}

	// Step 4: network-import guard -- a remote parent may only reach
	// relative/absolute-path/remote specifiers, never file:/data:/blob:/builtins.
	kind := ClassifySpecifier(specifier, parentIsRemote)
	if parentIsRemote {
		switch kind {
		case KindRelative, KindAbsolute, KindURL:
			// allowed; URL case is further checked by its own scheme above
		default:
			return Result{}, newErr(KindNetworkImportDisallowed, "a remote module may not import %q", specifier)
		}
	}

	if r.Options.InputTypeSet && ctx.ParentURL == "" {
		return Result{}, newErr(KindInputTypeNotAllowed, "inputType is set; file entry points are disallowed")
	}

	var resolvedURL string

	switch kind {
	case KindPrivate:
		ctxT := &targetCtx{
			log:        r.Log,
			conditions: ctx.Conditions,
			resolveBare: func(specifier string, base *url.URL, conditions map[string]bool, depth int) (TargetResult, error) {
				return r.ResolvePackage(specifier, base, conditions, depth)
			},
		}
		result, err := ResolveImports(ctxT, specifier, parent, r.scopeConfigFor)
		if err != nil {
			return Result{}, err
		}
		resolvedURL = result.URL

	case KindRelative, KindAbsolute:
		if parent == nil {
			return Result{}, newErr(KindInvalidModuleSpecifier, "relative specifier %q requires a parent URL", specifier)
		}
		var u *url.URL
		if kind == KindAbsolute {
			abs := *parent
			abs.Path = specifier
			u = &abs
		} else {
			u = joinURL(dirURL(parent), specifier)
		}
		resolvedURL = u.String()

	case KindBareName:
		result, err := r.ResolvePackage(specifier, parent, ctx.Conditions, 0)
		if err != nil {
			return Result{}, err
		}
		if strings.HasPrefix(result.URL, "node:") {
			return Result{URL: result.URL, Format: "builtin"}, nil
		}
		resolvedURL = result.URL

	default:
		return Result{}, newErr(KindInvalidModuleSpecifier, "%q is not a valid specifier", specifier)
	}

	return r.finalizeAndFormat(resolvedURL, ctx.IsMain, "")
}

func (r *Resolver) finalizeAndFormat(resolvedURL string, isMain bool, pkgType string) (Result, error) {
	final, err := r.FinalizeResolution(resolvedURL, isMain)
	if err != nil {
		if r.CJSSuggester != nil && (IsKind(err, KindModuleNotFound) || IsKind(err, KindUnsupportedDirectoryImport)) {
			if e, ok := err.(*Error); ok && e.Suggestion == "" {
				e.Suggestion = r.CJSSuggester(resolvedURL, resolvedURL)
			}
		}
		return Result{}, err
	}
	return Result{URL: final, Format: r.probeFormat(final, pkgType)}, nil
}

func (r *Resolver) probeFormat(resolvedURL, pkgType string) string {
	if r.FormatProbe == nil {
		return ""
	}
	return r.FormatProbe(resolvedURL, pkgType)
}

// scopeConfigFor implements getPackageScopeConfig (spec.md §6): walk up from
// base looking for the nearest package.json and return its "imports" field.
func (r *Resolver) scopeConfigFor(base *url.URL) (*url.URL, Value, bool) {
	if base == nil {
		return nil, Value{}, false
	}
	dir := dirOfFileURL(base)
	for {
		pjsonPath := joinPath(dir, "package.json")
		cfg, err := r.PkgJSON.Read(pjsonPath, pkgjson.ReadOptions{Base: base.String()})
		if err == nil && cfg.Exists {
			return &url.URL{Scheme: "file", Path: pjsonPath}, cfg.Imports, cfg.HasImports
		}
		parent := parentDir(dir)
		if parent == dir || strings.EqualFold(baseName(dir), "node_modules") {
			return nil, Value{}, false
		}
		dir = parent
	}
}
