// Package cli implements callerctl, a terminal client for the caller-analysis API.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"calldash/internal/client"
	"calldash/internal/config"
	"calldash/internal/logger"
	"calldash/internal/model"
	"calldash/internal/pagination"
)

const defaultServer = "http://localhost:8080"

type rootOptions struct {
	server string
	debug  bool
	log    zerolog.Logger
}

// NewRootCmd builds callerctl with its list and dump subcommands.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "callerctl",
		Short:         "Browse and dump the caller-analysis table",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if opts.debug {
				level = "debug"
			}
			l, err := logger.NewWithWriter(config.LogConfig{
				Level:   level,
				Format:  "console",
				Env:     "prod",
				Service: "callerctl",
				Version: version,
			}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.log = logger.Component(l, "cli")
			return nil
		},
		Example: `  # First page of callers for one organization
  callerctl list --organization acme

  # Third page, 50 per page
  callerctl list --page 3 --page-size 50

  # Every caller tagged vip as CSV
  callerctl dump --tag vip > vip.csv`,
	}

	server := os.Getenv("CALLDASH_SERVER")
	if server == "" {
		server = defaultServer
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env CALLDASH_SERVER)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newListCmd(opts), newDumpCmd(opts))
	return cmd
}

type filterFlags struct {
	pageSize int
	filter   model.CallerFilter
}

func (f *filterFlags) register(cmd *cobra.Command, defaultSize int) {
	cmd.Flags().IntVar(&f.pageSize, "page-size", defaultSize, "records per page (clamped to 10..1000)")
	cmd.Flags().StringVar(&f.filter.Organization, "organization", "", "only callers of this organization")
	cmd.Flags().StringVar(&f.filter.Tag, "tag", "", "only callers carrying this tag")
	cmd.Flags().StringVar(&f.filter.Search, "search", "", "phone number or display name substring")
}

// newPager returns a paginator and the fetch function bound to the requested filter.
func (o *rootOptions) newPager(f *filterFlags) (*pagination.Paginator[model.Caller], pagination.FetchFunc[model.Caller], error) {
	c, err := client.NewCallers(o.server)
	if err != nil {
		return nil, nil, err
	}
	p := pagination.New[model.Caller](
		pagination.WithPageSize(f.pageSize),
		pagination.WithLogger(o.log),
	)
	return p, c.WithFilter(f.filter).FetchPage, nil
}
