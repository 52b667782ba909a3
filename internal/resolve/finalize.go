package resolve

import (
	"net/url"
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
)

// FinalizeResolution implements C9 (spec.md §4.9). For non-file: URLs it is
// the identity (spec.md §8 universal invariant 5).
func (r *Resolver) FinalizeResolution(resolvedURL string, isMain bool) (string, error) {
	u, err := url.Parse(resolvedURL)
	if err != nil {
		return "", newErr(KindInvalidModuleSpecifier, "malformed resolved URL %q", resolvedURL)
	}
	if u.Scheme != "file" && u.Scheme != "" {
		return resolvedURL, nil
	}

	// Step 1
	if strings.Contains(u.Path, "%2F") || strings.Contains(u.Path, "%2f") ||
		strings.Contains(u.Path, "%5C") || strings.Contains(u.Path, "%5c") ||
		strings.Contains(resolvedURL, "%2F") || strings.Contains(resolvedURL, "%2f") ||
		strings.Contains(resolvedURL, "%5C") || strings.Contains(resolvedURL, "%5c") {
		return "", newErr(KindInvalidModuleSpecifier, "resolved path %q contains an encoded path separator", resolvedURL)
	}

	fsPath := u.Path

	// Step 2
	kind, statErr := r.FS.Stat(fsPath)
	if statErr != nil {
		return "", newErr(KindModuleNotFound, "cannot stat %q: %s", fsPath, statErr.Error())
	}

	// Step 3
	switch kind {
	case fsprobe.Directory:
		return "", newErr(KindUnsupportedDirectoryImport, "directory import not supported: %q", fsPath)
	case fsprobe.Missing:
		if r.Options.WatchReportDependencies && r.WatchSink != nil {
			r.WatchSink(fsPath)
		}
		return "", newErr(KindModuleNotFound, "cannot find module %q", fsPath)
	}

	// Step 4
	preserve := r.Options.PreserveSymlinks
	if isMain {
		preserve = r.Options.PreserveSymlinksMain
	}
	if !preserve && r.Realpath != nil {
		real, err := r.Realpath.Resolve(fsPath)
		if err == nil && real != fsPath {
			rewrapped := *u
			rewrapped.Path = real
			return rewrapped.String(), nil
		}
	}

	return u.String(), nil
}
