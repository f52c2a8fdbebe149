package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree.
func newRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pointerd",
		Short:         "Remote pointer interaction server",
		Long:          `pointerd serves a browser client and recognizes clicks, long presses, drags, resizes and other pointer gestures on its elements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var opts serveOptions
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	serveCmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file (default <data_dir>/pointerkit.yaml)")
	serveCmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	serveCmd.Flags().StringVar(&opts.staticDir, "static", "", "Serve client assets from this directory instead of the embedded ones")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pointerd %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}
