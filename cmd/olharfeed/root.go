package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// runOptions are the flags shared by the root and run commands.
type runOptions struct {
	configPath string
	fetcher    string
	logLevel   string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	root := &cobra.Command{
		Use:   "olharfeed",
		Short: "Build an RSS feed from the Olhar Digital news listing",
		Long: `olharfeed renders the Olhar Digital news listing, visits every article to
recover its publication time, and writes the articles to an RSS file, most
recent first.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, opts)
		},
	}
	addRunFlags(root, opts)

	root.AddCommand(newRunCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "olharfeed %s (%s)\n", Version, Commit)
		},
	})

	return root
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file overriding the defaults")
	cmd.Flags().StringVar(&opts.fetcher, "fetcher", "chrome", "page fetcher: chrome (rendered) or http (static)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.output, "output", "", "feed output path")
}
