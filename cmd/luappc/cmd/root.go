package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags (-ldflags), in the
// teacher's own cmd/dwscript/cmd/root.go pattern.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	sourceFile  string
	outputFile  string
	includePath string
	moduleMode  bool
)

var rootCmd = &cobra.Command{
	Use:     "luappc",
	Short:   "luapp compiler front end",
	Version: Version,
	Long: `luappc parses, preprocesses, and lowers a luapp source file to the
textual backend IR an external SSA-form compiler consumes.

luappc does not link, optimize, or execute anything itself — it is the
front end of the pipeline only. In module mode ("-m") it also writes a
".lmod" sidecar listing the externally visible struct and function
declarations, for a later "require" of this module to read.`,
	RunE:         runCompile,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVarP(&sourceFile, "source", "s", "", "input .lpp source file (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "a.out", "output file for the emitted backend IR")
	rootCmd.Flags().StringVarP(&includePath, "include-path", "I", "", "fallback search path for include/require")
	rootCmd.Flags().BoolVarP(&moduleMode, "module", "m", false, "module mode: also emit a .lmod definitions sidecar")
	rootCmd.MarkFlagRequired("source")
}
