// Package app wires the jsresolve CLI's flags into an internal/resolve
// Resolver and renders its result. Kept apart from main.go the way the
// pack's bennypowers-mappa CLI splits each command's logic into its own
// package under cmd/, so main.go stays a pure flag/wiring surface.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-jsresolve/jsresolve/internal/builtins"
	"github.com/go-jsresolve/jsresolve/internal/cjssuggest"
	"github.com/go-jsresolve/jsresolve/internal/formatprobe"
	"github.com/go-jsresolve/jsresolve/internal/fsprobe"
	"github.com/go-jsresolve/jsresolve/internal/logger"
	"github.com/go-jsresolve/jsresolve/internal/pkgjson"
	"github.com/go-jsresolve/jsresolve/internal/policy"
	"github.com/go-jsresolve/jsresolve/internal/realpath"
	"github.com/go-jsresolve/jsresolve/internal/resolve"
)

// Run is the root command's RunE: build a Resolver from the
// bound viper config and resolve the single positional specifier argument.
func Run(cmd *cobra.Command, args []string) error {
	specifier := args[0]

	out := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()

	level := logger.LevelWarning
	if viper.GetBool("verbose") {
		level = logger.LevelVerbose
	}
	log := logger.NewLog(level)

	prober := fsprobe.NewOS()
	rpCache := realpath.New(filepath.EvalSymlinks)
	pkgReader := pkgjson.NewReader(prober.ReadFile)

	conditionList := viper.GetStringSlice("conditions")
	conditions := make(map[string]bool, len(conditionList))
	for _, c := range conditionList {
		conditions[c] = true
	}

	r := &resolve.Resolver{
		Options: resolve.Options{
			Conditions:                 conditions,
			PreserveSymlinks:           viper.GetBool("preserve-symlinks"),
			PreserveSymlinksMain:       viper.GetBool("preserve-symlinks-main"),
			ExperimentalNetworkImports: viper.GetBool("network-imports"),
			InputTypeSet:               viper.GetString("input-type") != "",
			WatchReportDependencies:    viper.GetBool("watch-report-dependencies"),
		},
		Log:      log,
		FS:       prober,
		Realpath: rpCache,
		PkgJSON:  pkgReader,
		Builtins: builtins.IsBuiltin,
		Policy:   policy.New(),
		FormatProbe: func(resolvedURL, pkgType string) string {
			return formatprobe.Detect(resolvedURL, pkgType)
		},
		CJSSuggester: func(specifier, parentURL string) string {
			return cjssuggest.Suggest(prober, strings.TrimPrefix(specifier, "file://"))
		},
		WatchSink: func(path string) {
			out.Debug().Str("watch:require", path).Msg("dependency to watch")
		},
	}

	parent, err := normalizeParentURL(viper.GetString("parent"))
	if err != nil {
		return err
	}

	result, resolveErr := r.Resolve(specifier, resolve.Context{
		ParentURL:  parent,
		Conditions: conditions,
		IsMain:     viper.GetBool("main"),
	})

	for _, msg := range log.Done() {
		emitDiagnostic(out, msg)
	}

	if resolveErr != nil {
		if e, ok := resolveErr.(*resolve.Error); ok {
			out.Error().Str("kind", e.Kind.String()).Str("suggestion", e.Suggestion).Msg(e.Message)
		}
		return resolveErr
	}

	fmt.Printf("%s\n", result.URL)
	if result.Format != "" {
		out.Info().Str("format", result.Format).Msg("resolved")
	}
	return nil
}

func emitDiagnostic(out zerolog.Logger, msg logger.Msg) {
	event := out.Warn()
	switch msg.Kind {
	case logger.Error:
		event = out.Error()
	case logger.Debug:
		event = out.Debug()
	case logger.Verbose:
		event = out.Trace()
	}
	if msg.Code != "" {
		event = event.Str("code", string(msg.Code))
	}
	event.Msg(msg.Data.Text)
}

// normalizeParentURL accepts either a file:// URL or a bare filesystem path
// (the common case on the command line) and returns a file:// URL, matching
// the convenience the teacher's CLI flags extend over the library's raw
// contract of "parentURL is a URL".
func normalizeParentURL(parent string) (string, error) {
	if parent == "" {
		return "", nil
	}
	if strings.Contains(parent, "://") {
		return parent, nil
	}
	abs, err := filepath.Abs(parent)
	if err != nil {
		return "", fmt.Errorf("invalid --parent path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
