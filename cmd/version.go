package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/flagquiz/internal/store"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the schema of saved games",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flagquiz", resolveVersion())
		fmt.Println("snapshot layout", store.SnapshotVersion)
	},
}

// resolveVersion prefers the ldflags value, then the module version recorded
// by go install.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
