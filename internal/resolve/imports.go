package resolve

import (
	"net/url"
	"strings"
)

// ResolveImports implements C6 (spec.md §4.6). getScopeConfig looks up the
// package.json governing base (the external getPackageScopeConfig
// collaborator from spec.md §6).
func ResolveImports(
	ctx *targetCtx,
	name string,
	base *url.URL,
	getScopeConfig func(*url.URL) (pkgJSONURL *url.URL, imports Value, ok bool),
) (TargetResult, error) {
	if name == "#" || strings.HasPrefix(name, "#/") || strings.HasSuffix(name, "/") {
		return TargetResult{}, newErr(KindInvalidModuleSpecifier, "invalid imports specifier %q", name)
	}

	pkgJSONURL, imports, ok := getScopeConfig(base)
	if !ok || imports.Kind == ValNull || (imports.Kind == ValMap && len(imports.Map) == 0) {
		return TargetResult{}, newErr(KindPackageImportNotDefined, "no \"imports\" entry for %q", name)
	}
	if err := ValidateMapKeys(imports); err != nil {
		return TargetResult{}, err
	}

	if target, ok := imports.Get(name); ok && !strings.Contains(name, "*") {
		result, err := ResolveTarget(ctx, pkgJSONURL, target, "", name, false, true, false)
		if err != nil {
			return TargetResult{}, err
		}
		if result.Status != StatusURL {
			return TargetResult{}, newErr(KindPackageImportNotDefined, "no \"imports\" entry for %q", name)
		}
		return result, nil
	}

	if match, ok := MatchPattern(imports.Keys(), name); ok {
		target, _ := imports.Get(match.Key)
		result, err := ResolveTarget(ctx, pkgJSONURL, target, match.Capture, match.Key, true, true, false)
		if err != nil {
			return TargetResult{}, err
		}
		if result.Status != StatusURL {
			return TargetResult{}, newErr(KindPackageImportNotDefined, "no \"imports\" entry for %q", name)
		}
		return result, nil
	}

	return TargetResult{}, newErr(KindPackageImportNotDefined, "no \"imports\" entry for %q", name)
}
