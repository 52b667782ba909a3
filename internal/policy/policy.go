// Package policy implements the optional policyManifest external
// collaborator from spec.md §6 ("getDependencyMapper(parent)",
// "mightAllow(url, onDeny)"). The default manifest here is a permissive
// no-op -- grounded on the teacher's own "plugin with no hooks installed is
// a no-op" posture for its plugin system (internal/bundler/bundler.go) --
// so C10 can unconditionally consult a manifest without every caller having
// to special-case "no policy installed".
package policy

import (
	"net/url"

	"github.com/go-jsresolve/jsresolve/internal/resolve"
)

// Manifest is the default PolicyManifest: every dependency mapper it
// produces declines to handle any specifier, so C10's policy-consultation
// step always falls through to normal resolution.
type Manifest struct {
	// Mappers, if set, overrides the per-parent mapper lookup; keyed by the
	// parent URL's string form. Left nil, every parent gets the permissive
	// default mapper.
	Mappers map[string]resolve.DependencyMapper
}

func New() *Manifest {
	return &Manifest{}
}

func (m *Manifest) GetDependencyMapper(parent *url.URL) resolve.DependencyMapper {
	if m.Mappers != nil && parent != nil {
		if mapper, ok := m.Mappers[parent.String()]; ok {
			return mapper
		}
	}
	return permissiveMapper{}
}

type permissiveMapper struct{}

func (permissiveMapper) Map(specifier string) (string, bool) { return "", false }
func (permissiveMapper) MightAllow(url string, onDeny func()) {}
