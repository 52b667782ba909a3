// Package formatprobe implements the formatProbe(url, context) external
// collaborator from spec.md §6, and serves as the single source of truth
// spec.md §9's open question asks for: both the final "format" field on a
// successful resolve, and the DEP0151 module-only gate in C8, call Detect
// so the two can never disagree about whether a given URL is an ES module.
package formatprobe

import "strings"

// Detect returns the module format esbuild-style tooling would assign to
// resolvedURL, given the governing package.json's "type" field (pkgType is
// "module", "commonjs", or "" if none applies/was found).
func Detect(resolvedURL string, pkgType string) string {
	ext := extOf(resolvedURL)
	switch ext {
	case ".mjs":
		return "module"
	case ".cjs":
		return "commonjs"
	case ".json":
		return "json"
	case ".node":
		return "addon"
	case ".wasm":
		return "wasm"
	}
	if pkgType == "module" {
		return "module"
	}
	return "commonjs"
}

// IsESMOnly reports whether resolvedURL is unconditionally a module
// regardless of package.json "type" (a ".mjs" file could never have been
// reached via CommonJS "require" in the first place).
func IsESMOnly(resolvedURL string) bool {
	return extOf(resolvedURL) == ".mjs"
}

func extOf(u string) string {
	idx := strings.LastIndexByte(u, '.')
	slash := strings.LastIndexByte(u, '/')
	if idx == -1 || idx < slash {
		return ""
	}
	return u[idx:]
}
