package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X github.com/abhisek/adaptiq/cmd.version=...".
var (
	version = ""
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the adaptiq version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	v, c := version, commit
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" && info.Main.Version != "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && c == "" && len(s.Value) >= 7 {
				c = s.Value[:7]
			}
		}
	}
	if v == "" {
		v = "(devel)"
	}
	if c != "" {
		return fmt.Sprintf("adaptiq %s (%s)", v, c)
	}
	return "adaptiq " + v
}
