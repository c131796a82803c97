package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"calldash/internal/report"
)

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write every matching caller to stdout as CSV",
		Long: `Walks the listing page by page and writes each page as soon as it arrives.
Pages are requested at the maximum page size unless --page-size says otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, fetch, err := opts.newPager(&flags)
			if err != nil {
				return err
			}
			w, err := report.NewCallerCSV(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if err := p.LoadPage(cmd.Context(), 1, fetch); err != nil {
				return fmt.Errorf("load page 1: %w", err)
			}
			for {
				st := p.State()
				if err := w.Write(p.CurrentPageData()); err != nil {
					return err
				}
				if !st.HasNext {
					break
				}
				if err := p.LoadNextPage(cmd.Context(), fetch); err != nil {
					return fmt.Errorf("load page %d: %w", st.CurrentPage+1, err)
				}
				if p.State().CurrentPage == st.CurrentPage {
					break
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			st := p.State()
			opts.log.Info().Int("pages", len(st.LoadedPages)).Int("records", st.TotalRecords).Msg("dump complete")
			return nil
		},
	}

	flags.register(cmd, 1000)
	return cmd
}
