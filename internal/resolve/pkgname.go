package resolve

import "strings"

// ParsePackageName implements C2 (spec.md §4.2), generalizing the teacher's
// esmParsePackageName (package_json.go) which only rejected a leading "."
// and characters in "\\%" via a single ContainsAny call. This version keeps
// the same two-slash scoped-package rule but reports *why* parsing failed
// via the spec's InvalidModuleSpecifier kind instead of a bare bool.
func ParsePackageName(specifier string) (name string, subpath string, scoped bool, err error) {
	if specifier == "" {
		return "", "", false, newErr(KindInvalidModuleSpecifier, "empty specifier")
	}

	scoped = specifier[0] == '@'
	firstSlash := strings.IndexByte(specifier, '/')

	if scoped {
		if firstSlash == -1 {
			return "", "", false, newErr(KindInvalidModuleSpecifier, "invalid scoped package name %q", specifier)
		}
		rest := specifier[firstSlash+1:]
		secondSlash := strings.IndexByte(rest, '/')
		if secondSlash == -1 {
			name = specifier
		} else {
			name = specifier[:firstSlash+1+secondSlash]
		}
	} else {
		if firstSlash == -1 {
			name = specifier
		} else {
			name = specifier[:firstSlash]
		}
	}

	if strings.HasPrefix(name, ".") || strings.Contains(name, "%") || strings.Contains(name, "\\") {
		return "", "", false, newErr(KindInvalidModuleSpecifier, "invalid package name %q", name)
	}

	subpath = "." + specifier[len(name):]
	return name, subpath, scoped, nil
}
