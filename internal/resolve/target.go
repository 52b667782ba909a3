package resolve

import (
	"net/url"
	"path"
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/logger"
)

// TargetStatus is the tri-state sentinel spec.md §9 calls out as
// load-bearing: "explicitly blocked" must be told apart from "no applicable
// branch" because the List/Map cases of C4 react to them differently.
type TargetStatus uint8

const (
	StatusUndefined TargetStatus = iota
	StatusNull
	StatusURL
)

type TargetResult struct {
	Status TargetStatus
	URL    string
}

// targetCtx threads the handful of things ResolveTarget needs from its
// caller: where to recurse for the isInternal bare-specifier indirection
// (spec.md §4.4 step 2), the diagnostic log, and a recursion-depth guard for
// the self-referential-imports case spec.md §9 flags as worth guarding even
// though the spec does not mandate it.
type targetCtx struct {
	log          *logger.Log
	conditions   map[string]bool
	resolveBare  func(specifier string, base *url.URL, conditions map[string]bool, depth int) (TargetResult, error)
	depth        int
}

const maxRecursionDepth = 32

// ResolveTarget implements C4 (spec.md §4.4).
func ResolveTarget(
	ctx *targetCtx,
	pkgJSONURL *url.URL,
	target Value,
	capture string,
	matchKey string,
	isPattern bool,
	isInternal bool,
	isPathMap bool,
) (TargetResult, error) {
	if ctx.depth > maxRecursionDepth {
		return TargetResult{}, newErr(KindInvalidPackageTarget, "target resolution recursion limit exceeded")
	}

	switch target.Kind {
	case ValString:
		return resolveStringTarget(ctx, pkgJSONURL, target.Str, capture, isPattern, isInternal, isPathMap)

	case ValList:
		if len(target.List) == 0 {
			return TargetResult{Status: StatusNull}, nil
		}
		sawBlocked := false
		var lastInvalid error
		for _, item := range target.List {
			result, err := ResolveTarget(ctx, pkgJSONURL, item, capture, matchKey, isPattern, isInternal, isPathMap)
			if err != nil {
				if IsKind(err, KindInvalidPackageTarget) {
					lastInvalid = err
					continue
				}
				return TargetResult{}, err
			}
			switch result.Status {
			case StatusUndefined:
				continue
			case StatusNull:
				sawBlocked = true
				continue
			default:
				return result, nil
			}
		}
		if sawBlocked {
			return TargetResult{Status: StatusNull}, nil
		}
		if lastInvalid != nil {
			return TargetResult{}, lastInvalid
		}
		return TargetResult{Status: StatusUndefined}, nil

	case ValMap:
		if err := ValidateMapKeys(target); err != nil {
			return TargetResult{}, err
		}
		for _, entry := range target.Map {
			if entry.Key != "default" && !ctx.conditions[entry.Key] {
				continue
			}
			result, err := ResolveTarget(ctx, pkgJSONURL, entry.Value, capture, matchKey, isPattern, isInternal, isPathMap)
			if err != nil {
				return TargetResult{}, err
			}
			if result.Status != StatusUndefined {
				return result, nil
			}
		}
		return TargetResult{Status: StatusUndefined}, nil

	case ValNull:
		return TargetResult{Status: StatusNull}, nil

	default:
		return TargetResult{}, newErr(KindInvalidPackageTarget, "target must be a string, array, object, or null")
	}
}

func resolveStringTarget(
	ctx *targetCtx,
	pkgJSONURL *url.URL,
	t string,
	capture string,
	isPattern bool,
	isInternal bool,
	isPathMap bool,
) (TargetResult, error) {
	// Step 1
	if capture != "" && !isPattern && !strings.HasSuffix(t, "/") {
		return TargetResult{}, newErr(KindInvalidPackageTarget, "target %q does not end in \"/\" but a non-pattern capture was given", t)
	}

	// Step 2
	if !strings.HasPrefix(t, "./") {
		if isInternal && !strings.HasPrefix(t, "../") && !strings.HasPrefix(t, "/") && !isParseableURL(t) {
			bare := t
			if isPattern {
				bare = strings.Replace(t, "*", capture, 1)
			}
			result, err := ctx.resolveBare(bare, pkgJSONURL, ctx.conditions, ctx.depth+1)
			return result, err
		}
		return TargetResult{}, newErr(KindInvalidPackageTarget, "target %q must start with \"./\"", t)
	}

	// Step 3
	if invalid, deprecated := scanInvalidSegment(t[2:]); invalid {
		if deprecated && isPathMap {
			ctx.log.AddDeduped(logger.CodeDeprecatedSubpathForm, pjsonPathFromURL(pkgJSONURL), t,
				logger.Msg{Kind: logger.Warning, Data: logger.MsgData{
					Text: "Use of deprecated folder mapping \"" + t + "\" in \"exports\" (path contains \"node_modules\")",
				}})
		} else {
			return TargetResult{}, newErr(KindInvalidPackageTarget, "target %q contains an invalid segment", t)
		}
	}

	// Step 4
	pkgDirURL := dirURL(pkgJSONURL)
	resolved := joinURL(pkgDirURL, t)
	if !strings.HasPrefix(resolved.Path, pkgDirURL.Path) {
		return TargetResult{}, newErr(KindInvalidPackageTarget, "target %q escapes the package directory", t)
	}

	// Step 5
	if capture == "" {
		return TargetResult{Status: StatusURL, URL: resolved.String()}, nil
	}

	// Step 6
	if invalid, deprecated := scanInvalidSegment("/" + capture); invalid {
		if deprecated {
			ctx.log.AddDeduped(logger.CodeDeprecatedSubpathForm, pjsonPathFromURL(pkgJSONURL), capture,
				logger.Msg{Kind: logger.Warning, Data: logger.MsgData{
					Text: "Use of deprecated subpath capture \"" + capture + "\" (path contains \"node_modules\")",
				}})
		} else {
			return TargetResult{}, newErr(KindInvalidModuleSpecifier, "capture %q contains an invalid segment", capture)
		}
	}

	// Step 7
	if isPattern {
		// Substitute on the decoded path: URL.String() escapes "*" as "%2A".
		substituted := *resolved
		substituted.Path = strings.Replace(resolved.Path, "*", capture, 1)
		return TargetResult{Status: StatusURL, URL: substituted.String()}, nil
	}
	joined := joinURL(resolved, capture)
	return TargetResult{Status: StatusURL, URL: joined.String()}, nil
}

// scanInvalidSegment implements spec.md §4.4 step 3/6 and §3 invariant 4:
// "." / ".." segments are always invalid; a "node_modules" segment (literal
// or percent-encoded) is the deprecated legacy form when it's the only
// issue found, so the caller can decide to downgrade it to a warning when
// isPathMap indicates this came from a legacy trailing-slash folder
// mapping (spec.md §3 invariant 5).
func scanInvalidSegment(s string) (invalid bool, deprecatedOnly bool) {
	segments := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '\\' })
	sawNodeModules := false
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return true, false
		}
		if isNodeModulesSegment(seg) {
			sawNodeModules = true
		}
	}
	return sawNodeModules, sawNodeModules
}

func isNodeModulesSegment(seg string) bool {
	if strings.EqualFold(seg, "node_modules") {
		return true
	}
	decoded, err := url.PathUnescape(seg)
	if err == nil && strings.EqualFold(decoded, "node_modules") {
		return true
	}
	return false
}

func isParseableURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

func dirURL(u *url.URL) *url.URL {
	dir := *u
	dir.Path = path.Dir(u.Path) + "/"
	return &dir
}

func joinURL(base *url.URL, rel string) *url.URL {
	b := *base
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	joined := path.Join(b.Path, rel)
	if strings.HasSuffix(rel, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	b.Path = joined
	b.RawQuery = ""
	b.Fragment = ""
	return &b
}

func pjsonPathFromURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Path
}
