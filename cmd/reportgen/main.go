// Command reportgen serves, fills and compiles weekly reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var cfgPath string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportgen",
		Short:         "Fill in and compile a sectioned weekly report",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", "", "path to a settings file (yaml, json or toml)")
	flags.StringP("language", "l", "", "report language to load (default en)")
	flags.String("configs", "", "directory or http(s) base URL holding the report configurations")
	flags.String("storage", "", "storage driver: memory, file or sqlite (default file)")
	flags.String("data", "", "storage directory, or database file for sqlite")
	flags.String("key", "", "storage key for the in-progress report (default report)")
	flags.Duration("interval", 0, "autosave interval (default 10s)")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newServeCommand(), newFillCommand(), newCompileCommand())
	return root
}
