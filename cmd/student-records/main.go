// Package main is the entry point for the student records desktop application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"student-records/internal/app"
	"student-records/internal/config"
)

type rootOptions struct {
	configPath string
	driver     string
	dsn        string
	logLevel   string
}

// runFunc starts the application with a resolved configuration
type runFunc func(cfg *config.Config) error

func newRootCmd(run runFunc) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "student-records",
		Short:         "Manage student records from a desktop window",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the YAML config file")
	flags.StringVar(&opts.driver, "driver", "", "database driver: sqlite, postgres or mysql")
	flags.StringVar(&opts.dsn, "dsn", "", "database data source name")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// load reads the config file and environment, then applies flag overrides
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.driver != "" {
		cfg.Database.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "student-records %s\n", app.Version)
		},
	}
}

func runApplication(cfg *config.Config) error {
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	return application.Run()
}

func main() {
	if err := newRootCmd(runApplication).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "student-records: %v\n", err)
		os.Exit(1)
	}
}
