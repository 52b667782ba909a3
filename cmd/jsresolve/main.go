// Command jsresolve resolves an ECMAScript module specifier against a
// parent URL using the Node.js package-resolution algorithm.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-jsresolve/jsresolve/cmd/jsresolve/internal/app"
)

// rootCmd mirrors the thin "options in, library call out" shape of the
// teacher's cmd/esbuild entry point, generalized from esbuild's own
// many-flag build command down to this resolver's smaller option set, and
// enriched with the persistent-flags + viper-binding idiom the pack's
// bennypowers-mappa CLI uses for its own root command.
var rootCmd = &cobra.Command{
	Use:   "jsresolve <specifier>",
	Short: "Resolve an ECMAScript module specifier",
	Long: `jsresolve resolves a module specifier the way Node.js's ESM loader
would: classifying the specifier, walking package.json "exports"/"imports",
falling back to node_modules and legacy "main" resolution, and finalizing
the result against the real file system.`,
	Args: cobra.ExactArgs(1),
	RunE: app.Run,
}

func init() {
	rootCmd.Flags().String("parent", "", "Parent module URL (file:// or bare path) the specifier is resolved against")
	rootCmd.Flags().StringSlice("conditions", []string{"node", "import"}, "Export/import condition names; among matching conditions, package.json key order decides")
	rootCmd.Flags().Bool("preserve-symlinks", false, "Do not canonicalize symlinks for non-main specifiers")
	rootCmd.Flags().Bool("preserve-symlinks-main", false, "Do not canonicalize symlinks for the main entry specifier")
	rootCmd.Flags().Bool("network-imports", false, "Allow http:/https: specifiers as modules")
	rootCmd.Flags().Bool("main", false, "Treat the specifier as the program's main entry point")
	rootCmd.Flags().String("input-type", "", "If set, file entry points are rejected (InputTypeNotAllowed)")
	rootCmd.Flags().String("config", "", "Config file (json/yaml/toml); defaults to ./.jsresolverc.<ext>")
	rootCmd.Flags().Bool("verbose", false, "Emit debug/verbose diagnostics in addition to warnings and errors")

	_ = viper.BindPFlag("parent", rootCmd.Flags().Lookup("parent"))
	_ = viper.BindPFlag("conditions", rootCmd.Flags().Lookup("conditions"))
	_ = viper.BindPFlag("preserve-symlinks", rootCmd.Flags().Lookup("preserve-symlinks"))
	_ = viper.BindPFlag("preserve-symlinks-main", rootCmd.Flags().Lookup("preserve-symlinks-main"))
	_ = viper.BindPFlag("network-imports", rootCmd.Flags().Lookup("network-imports"))
	_ = viper.BindPFlag("main", rootCmd.Flags().Lookup("main"))
	_ = viper.BindPFlag("input-type", rootCmd.Flags().Lookup("input-type"))
	_ = viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("config", rootCmd.Flags().Lookup("config"))

	viper.SetEnvPrefix("JSRESOLVE")
	viper.AutomaticEnv()
	_ = viper.BindEnv("watch-report-dependencies", "WATCH_REPORT_DEPENDENCIES")

	cobra.OnInitialize(func() {
		if cfg := viper.GetString("config"); cfg != "" {
			viper.SetConfigFile(cfg)
		} else {
			viper.SetConfigName(".jsresolverc")
			viper.AddConfigPath(".")
		}
		_ = viper.ReadInConfig()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
