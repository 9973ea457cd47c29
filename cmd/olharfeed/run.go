package main

import (
	"fmt"
	"os"

	"github.com/pevans/olharfeed/config"
	"github.com/pevans/olharfeed/discovery"
	"github.com/pevans/olharfeed/fetcher"
	"github.com/pevans/olharfeed/logging"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape the listing and write the feed (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

// loadRunConfig applies the config file and flag overrides to the defaults.
func loadRunConfig(opts *runOptions) (config.Config, error) {
	cfg, err := config.LoadConfigFile(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.output != "" {
		cfg.OutputPath = opts.output
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openerFor maps the --fetcher flag onto a session opener.
func openerFor(name string) (fetcher.Opener, error) {
	switch name {
	case "chrome":
		return fetcher.OpenChrome, nil
	case "http":
		return fetcher.OpenHTTP, nil
	default:
		return nil, fmt.Errorf("unknown fetcher %q (want chrome or http)", name)
	}
}

func runAction(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadRunConfig(opts)
	if err != nil {
		return err
	}

	open, err := openerFor(opts.fetcher)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Logging.Level)

	generator, err := discovery.NewGenerator(cfg, open, logger)
	if err != nil {
		return err
	}

	outcome, err := generator.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("feed generation failed: %w", err)
	}

	// An aborted crawl still wrote a valid (empty) feed, which is what
	// downstream consumers look for, so it does not fail the command.
	fmt.Fprintf(cmd.OutOrStdout(), "Feed written to %s with %d articles\n", cfg.OutputPath, len(outcome.Document.Entries))
	return nil
}
