// Package cjssuggest implements a best-effort "did you mean...?" suggester
// for ModuleNotFound/UnsupportedDirectoryImport failures (spec.md §7's
// propagation policy: "a `Suggestion` field... filled in on a best-effort
// basis; failures to compute one are silently ignored"). Grounded on the
// teacher's suggestion-probing idiom in resolver.go, which tries a short
// list of alternate extensions/index files before giving up and returning
// the original error untouched.
package cjssuggest

import "strings"

// Prober is the minimal filesystem surface this package needs; satisfied by
// *internal/fsprobe.Prober without this package importing it directly, so
// it stays a leaf package with no I/O dependency of its own.
type Prober interface {
	Exists(path string) bool
}

var candidateSuffixes = []string{
	".js", ".mjs", ".cjs", ".json", ".node",
	"/index.js", "/index.mjs", "/index.cjs", "/index.json",
}

// Suggest returns a human-readable hint for a failed specifier, or "" if
// nothing plausible was found. path is the failed on-disk path (for
// UnsupportedDirectoryImport, a directory; for ModuleNotFound, the
// extension-less path that could not be stat'd).
func Suggest(prober Prober, path string) string {
	if prober == nil {
		return ""
	}
	trimmed := strings.TrimSuffix(path, "/")
	for _, suffix := range candidateSuffixes {
		candidate := trimmed + suffix
		if prober.Exists(candidate) {
			return "did you mean \"" + candidate + "\"?"
		}
	}
	return ""
}
