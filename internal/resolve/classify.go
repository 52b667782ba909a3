package resolve

import "net/url"

// SpecifierKind is the variant spec.md §3/§4.1 classifies a specifier into.
type SpecifierKind uint8

const (
	KindInvalid SpecifierKind = iota
	KindRelative
	KindAbsolute
	KindPrivate
	KindBareName
	KindURL
)

// ClassifySpecifier implements C1 (spec.md §4.1). parentIsRemote tells the
// classifier whether the parent URL is a remote (http/https) scheme, since a
// leading "#" is only legal when the parent is not remote.
func ClassifySpecifier(s string, parentIsRemote bool) SpecifierKind {
	if s == "" {
		return KindInvalid
	}

	if s[0] == '/' {
		return KindAbsolute
	}

	if isRelativePrefix(s) {
		return KindRelative
	}

	if s[0] == '#' {
		if parentIsRemote {
			return KindInvalid
		}
		return KindPrivate
	}

	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		return KindURL
	}

	return KindBareName
}

func isRelativePrefix(s string) bool {
	if s[0] != '.' {
		return false
	}
	if len(s) == 1 || s[1] == '/' {
		return true
	}
	if s[1] == '.' && (len(s) == 2 || s[2] == '/') {
		return true
	}
	return false
}

// IsPackagePath reports whether s would classify as KindBareName or
// KindPrivate -- the two kinds the spec routes through package resolution
// (C6/C7) rather than direct URL construction. Named after the teacher's
// own IsPackagePath helper in resolver.go, generalized to also recognize
// private specifiers.
func IsPackagePath(s string) bool {
	switch ClassifySpecifier(s, false) {
	case KindBareName, KindPrivate:
		return true
	default:
		return false
	}
}
