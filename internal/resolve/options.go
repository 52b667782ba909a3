package resolve

import (
	"net/url"

	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/logger"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
	"github.com/go-jsresolve/jsresolve/internal/realpath"
)

// Options bundles every environment/option flag from spec.md §6.
type Options struct {
	Conditions                 map[string]bool
	PreserveSymlinks           bool
	PreserveSymlinksMain       bool
	ExperimentalNetworkImports bool
	InputTypeSet               bool
	WatchReportDependencies    bool
}

// PolicyManifest is the optional external collaborator from spec.md §6.
type PolicyManifest interface {
	GetDependencyMapper(parent *url.URL) DependencyMapper
}

// DependencyMapper is queried by C10 step 2.
type DependencyMapper interface {
	// Map returns (redirectURL, handled) -- handled=true short-circuits
	// resolution with redirectURL (which may itself be empty to mean "deny").
	Map(specifier string) (redirect string, handled bool)
	MightAllow(url string, onDeny func())
}

// FormatProbe is the external formatProbe collaborator from spec.md §6: it
// both supplies the final "format" field and gates the DEP0151 warning to
// ES modules (spec.md §4.8, §9's open question).
type FormatProbe func(resolvedURL string, pkgType string) string

// CJSSuggester produces a best-effort "did you mean...?" hint per spec.md
// §7's propagation policy; failures are ignored by the caller.
type CJSSuggester func(specifier string, parentURL string) string

// Resolver is the top-level C10 entry point plus the shared state (caches,
// readers) its subordinate components need.
type Resolver struct {
	Options Options
	Log     *logger.Log

	FS       *fsprobe.Prober
	Realpath *realpath.Cache
	PkgJSON  *pkgjson.Reader

	Builtins func(string) bool

	Policy       PolicyManifest
	FormatProbe  FormatProbe
	CJSSuggester CJSSuggester

	WatchSink func(path string)
}
