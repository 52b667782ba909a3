package resolve

import (
	"net/url"
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/logger"
)

// NormalizeExportsSugar implements spec.md §4.5 step 1: "conditional main
// sugar" lets a package write `"exports": "./index.js"` (or a condition map
// directly) instead of `"exports": {".": "./index.js"}`.
func NormalizeExportsSugar(exports Value) (Value, error) {
	switch exports.Kind {
	case ValString, ValList:
		return Value{Kind: ValMap, Map: []Entry{{Key: ".", Value: exports}}}, nil
	case ValMap:
		if len(exports.Map) == 0 || exports.IsSubpathMap() {
			if err := ValidateMapKeys(exports); err != nil {
				return Value{}, err
			}
			return exports, nil
		}
		// all-condition-key map: wrap as the "." target
		if err := ValidateMapKeys(exports); err != nil {
			return Value{}, err
		}
		return Value{Kind: ValMap, Map: []Entry{{Key: ".", Value: exports}}}, nil
	case ValNull:
		return Value{Kind: ValMap}, nil
	default:
		return Value{}, newErr(KindInvalidPackageConfig, "\"exports\" must be a string, array, object, or null")
	}
}

// ResolveExports implements C5 (spec.md §4.5).
func ResolveExports(
	ctx *targetCtx,
	pkgJSONURL *url.URL,
	subpath string,
	exportsRaw Value,
) (TargetResult, error) {
	exports, err := NormalizeExportsSugar(exportsRaw)
	if err != nil {
		return TargetResult{}, err
	}

	// Step 2: literal match takes priority
	if target, ok := exports.Get(subpath); ok && !strings.Contains(subpath, "*") && !strings.HasSuffix(subpath, "/") {
		result, err := ResolveTarget(ctx, pkgJSONURL, target, "", subpath, false, false, false)
		if err != nil {
			return TargetResult{}, err
		}
		if result.Status != StatusURL {
			return TargetResult{}, newErr(KindPackageSubpathNotExported, "no \"exports\" entry for subpath %q", subpath)
		}
		return result, nil
	}

	// Step 3: pattern match
	if match, ok := MatchPattern(exports.Keys(), subpath); ok {
		target, _ := exports.Get(match.Key)
		isPathMap := strings.HasSuffix(subpath, "/")
		if isPathMap {
			ctx.log.AddDeduped(logger.CodeDeprecatedTrailingSlash, pjsonPathFromURL(pkgJSONURL), subpath,
				logger.Msg{Kind: logger.Warning, Data: logger.MsgData{
					Text: "Use of deprecated trailing slash pattern mapping for subpath " + subpath,
				}})
		}
		result, err := ResolveTarget(ctx, pkgJSONURL, target, match.Capture, match.Key, true, false, isPathMap)
		if err != nil {
			return TargetResult{}, err
		}
		if result.Status != StatusURL {
			return TargetResult{}, newErr(KindPackageSubpathNotExported, "no \"exports\" entry for subpath %q", subpath)
		}
		return result, nil
	}

	// Step 4
	return TargetResult{}, newErr(KindPackageSubpathNotExported, "package does not define subpath %q in \"exports\"", subpath)
}
