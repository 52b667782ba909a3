package resolve

import (
	"strings"

	"github.com/go-jsresolve/jsresolve/internal/formatprobe"
	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/logger"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
)

// candidateTemplate describes one rung of the ten-candidate ladder from
// spec.md §4.8, grounded on the teacher's loadAsFile/loadAsIndex ladder in
// resolver.go (generalized from esbuild's configurable ExtensionOrder/
// MainFields to the spec's fixed list, since main-field selection is a
// bundler concern this spec doesn't have).
type candidateTemplate struct {
	suffix        string // appended to "main" ("" for the bare "main" rung)
	usesMain      bool
	isIndexRung   bool
}

var mainLadder = []candidateTemplate{
	{suffix: "", usesMain: true},
	{suffix: ".js", usesMain: true},
	{suffix: ".json", usesMain: true},
	{suffix: ".node", usesMain: true},
	{suffix: "/index.js", usesMain: true},
	{suffix: "/index.json", usesMain: true},
	{suffix: "/index.node", usesMain: true},
}

var indexLadder = []string{"./index.js", "./index.json", "./index.node"}

// ResolveLegacyMain implements C8 (spec.md §4.8). pkgDir is the absolute
// file-system path of the package directory (no trailing slash).
func (r *Resolver) ResolveLegacyMain(pkgDir string, cfg *pkgjson.Config) (string, error) {
	hadExports := cfg.HasExports

	if cfg.Main != "" {
		for _, rung := range mainLadder {
			candidate := joinPath(pkgDir, cfg.Main+rung.suffix)
			if kind, _ := r.FS.Stat(candidate); kind == fsprobe.File {
				if rung.suffix != "" && formatprobe.Detect(candidate, cfg.Type) == "module" {
					// extension/index fallback was needed to find "main"
					r.Log.AddDeduped(logger.CodeDEP0151, cfg.PJSONPath, candidate, logger.Msg{
						Kind: logger.Warning,
						Data: logger.MsgData{Text: "[DEP0151] Use of deprecated extension/index search resolving \"main\": " + cfg.Main},
					})
				}
				return fileURL(candidate), nil
			}
		}
	}

	for _, rel := range indexLadder {
		candidate := joinPath(pkgDir, strings.TrimPrefix(rel, "./"))
		if kind, _ := r.FS.Stat(candidate); kind == fsprobe.File {
			if cfg.Main == "" && !hadExports && formatprobe.Detect(candidate, cfg.Type) == "module" {
				r.Log.AddDeduped(logger.CodeDEP0151, cfg.PJSONPath, candidate, logger.Msg{
					Kind: logger.Warning,
					Data: logger.MsgData{Text: "[DEP0151] Use of deprecated implicit index resolution: " + candidate},
				})
			}
			return fileURL(candidate), nil
		}
	}

	return "", newErr(KindModuleNotFound, "cannot find module in %q (no \"main\" or index file)", pkgDir)
}

func joinPath(dir, rel string) string {
	dir = strings.TrimSuffix(dir, "/")
	rel = strings.TrimPrefix(rel, "./")
	return dir + "/" + rel
}

func fileURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return "file:///" + path
}
