package main

import (
	"github.com/pevans/olharfeed/config"
	"github.com/pevans/olharfeed/newsfeed"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "verify [feed-file]",
		Short: "Parse a written feed and list its entries in order",
		Long: `Parses a feed file the way a feed reader would and lists its entries in
document order. Without an argument the configured output path is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigFile(configPath)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			path := cfg.OutputPath
			if len(args) == 1 {
				path = args[0]
			}

			feed, err := newsfeed.ParseFile(path)
			if err != nil {
				return err
			}

			printFeedTable(cmd.OutOrStdout(), feed, loc)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	return cmd
}
